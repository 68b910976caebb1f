package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
)

// loadRecord decodes the record at key into dest.
// found is false when the key is absent; a decode failure is reported as ErrMalformed.
func loadRecord(ctx context.Context, store Store, key string, dest any) (found bool, err error) {
	raw, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := sonic.UnmarshalString(raw, dest); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
	}
	return true, nil
}

func saveRecord(ctx context.Context, store Store, key string, value any) error {
	data, err := sonic.MarshalString(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return store.Set(ctx, key, data)
}

// ErrMalformed marks a persisted record that could not be decoded
var ErrMalformed = errors.New("storage: malformed record")
