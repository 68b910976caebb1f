package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"everywhere_bot/internal/config"
)

// ErrNotFound is returned by Store.Get when the key is absent
var ErrNotFound = errors.New("storage: key not found")

// Store is the opaque string key/value persistence collaborator
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Entity names of the independently keyed records
const (
	EntityProfile    = "profile"
	EntityMemories   = "memories"
	EntityContext    = "context"
	EntityLastVisit  = "last_visit"
	EntityTranscript = "transcript"
)

// Keyspace builds "<prefix>:<user>:<entity>" keys
type Keyspace struct {
	Prefix string
	UserID string
}

// Key returns the key of entity
func (k Keyspace) Key(entity string) string {
	parts := []string{k.Prefix, k.UserID, entity}
	return strings.Join(parts, ":")
}

// Open creates the backend selected by cfg.Backend
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case "memory":
		return NewCacheStore(cfg.TTL), nil
	case "file":
		return NewFileStore(cfg.Dir)
	case "redis":
		return NewRedisStore(ctx, cfg.RedisURL, cfg.TTL)
	case "sqlite":
		return NewSQLiteStore(ctx, cfg.DBPath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
