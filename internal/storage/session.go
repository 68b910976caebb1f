package storage

import (
	"context"
	"errors"
	"strconv"
	"time"

	"everywhere_bot/internal/logger"
	"everywhere_bot/pkg"
)

// ContextRepository persists the conversation context and the last-visit marker
type ContextRepository struct {
	store    Store
	key      string
	visitKey string
}

// NewContextRepository creates a context repository
func NewContextRepository(store Store, keys Keyspace) *ContextRepository {
	return &ContextRepository{
		store:    store,
		key:      keys.Key(EntityContext),
		visitKey: keys.Key(EntityLastVisit),
	}
}

// Load returns the stored context, or session-start defaults when absent or malformed.
// On a backend error the defaults are returned together with the error.
func (r *ContextRepository) Load(ctx context.Context) (*pkg.ConversationContext, error) {
	var convCtx pkg.ConversationContext
	found, err := loadRecord(ctx, r.store, r.key, &convCtx)
	if err != nil {
		if errors.Is(err, ErrMalformed) {
			logger.Warn().Err(err).Msg("Discarding malformed conversation context")
			return pkg.NewConversationContext(), nil
		}
		return pkg.NewConversationContext(), err
	}
	if !found {
		return pkg.NewConversationContext(), nil
	}

	if convCtx.RecentTopics == nil {
		convCtx.RecentTopics = []pkg.Topic{}
	}
	if len(convCtx.RecentTopics) > pkg.MaxRecentTopics {
		convCtx.RecentTopics = convCtx.RecentTopics[:pkg.MaxRecentTopics]
	}
	if convCtx.CurrentOnboardingStep < 0 {
		convCtx.CurrentOnboardingStep = 0
	}
	return &convCtx, nil
}

// Save writes the context
func (r *ContextRepository) Save(ctx context.Context, convCtx *pkg.ConversationContext) error {
	return saveRecord(ctx, r.store, r.key, convCtx)
}

// LastVisit returns the previous visit time; ok is false on a first visit or unreadable marker
func (r *ContextRepository) LastVisit(ctx context.Context) (time.Time, bool, error) {
	raw, err := r.store.Get(ctx, r.visitKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		logger.Warn().Str("value", raw).Msg("Ignoring malformed last visit marker")
		return time.Time{}, false, nil
	}
	return time.UnixMilli(millis), true, nil
}

// SetLastVisit stores t as epoch milliseconds
func (r *ContextRepository) SetLastVisit(ctx context.Context, t time.Time) error {
	return r.store.Set(ctx, r.visitKey, strconv.FormatInt(t.UnixMilli(), 10))
}
