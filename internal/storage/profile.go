package storage

import (
	"context"
	"errors"
	"time"

	"everywhere_bot/internal/logger"
	"everywhere_bot/pkg"
)

// ProfileRepository persists the single user profile of a keyspace
type ProfileRepository struct {
	store Store
	key   string
	now   func() time.Time
}

// NewProfileRepository creates a profile repository
func NewProfileRepository(store Store, keys Keyspace, now func() time.Time) *ProfileRepository {
	return &ProfileRepository{store: store, key: keys.Key(EntityProfile), now: now}
}

// Load returns the stored profile. Absent or malformed records yield first-load defaults;
// on a backend error the defaults are returned together with the error.
func (r *ProfileRepository) Load(ctx context.Context) (*pkg.UserProfile, error) {
	var profile pkg.UserProfile
	found, err := loadRecord(ctx, r.store, r.key, &profile)
	if err != nil {
		if errors.Is(err, ErrMalformed) {
			logger.Warn().Err(err).Msg("Discarding malformed profile")
			return pkg.NewUserProfile(r.now()), nil
		}
		return pkg.NewUserProfile(r.now()), err
	}
	if !found {
		return pkg.NewUserProfile(r.now()), nil
	}

	if profile.Interests == nil {
		profile.Interests = []string{}
	}
	if profile.FirstVisit.IsZero() {
		profile.FirstVisit = r.now()
	}
	return &profile, nil
}

// Save writes profile
func (r *ProfileRepository) Save(ctx context.Context, profile *pkg.UserProfile) error {
	return saveRecord(ctx, r.store, r.key, profile)
}
