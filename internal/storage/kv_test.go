package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"everywhere_bot/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()

	file, err := NewFileStore(filepath.Join(t.TempDir(), "kv"))
	require.NoError(t, err)

	sqlite, err := NewSQLiteStore(ctx, filepath.Join(t.TempDir(), "db", "kv.db"))
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	redisStore, err := NewRedisStore(ctx, "redis://"+mr.Addr(), time.Hour)
	require.NoError(t, err)

	stores := map[string]Store{
		"cache":  NewCacheStore(0),
		"file":   file,
		"sqlite": sqlite,
		"redis":  redisStore,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(ctx, "everywhere:u1:profile")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.Set(ctx, "everywhere:u1:profile", `{"name":"Sam"}`))
			got, err := store.Get(ctx, "everywhere:u1:profile")
			require.NoError(t, err)
			assert.Equal(t, `{"name":"Sam"}`, got)

			require.NoError(t, store.Set(ctx, "everywhere:u1:profile", `{"name":"Alex"}`))
			got, err = store.Get(ctx, "everywhere:u1:profile")
			require.NoError(t, err)
			assert.Equal(t, `{"name":"Alex"}`, got)

			_, err = store.Get(ctx, "everywhere:u2:profile")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestRedisStoreAppliesTTL(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	store, err := NewRedisStore(ctx, "redis://"+mr.Addr(), time.Minute)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(ctx, "k", "v"))
	assert.Equal(t, time.Minute, mr.TTL("k"))

	mr.FastForward(2 * time.Minute)
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreGetRefreshesTTL(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	store, err := NewRedisStore(ctx, "redis://"+mr.Addr(), time.Minute)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(ctx, "k", "v"))
	mr.FastForward(40 * time.Second)

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
	assert.Equal(t, time.Minute, mr.TTL("k"))

	mr.FastForward(40 * time.Second)
	_, err = store.Get(ctx, "k")
	assert.NoError(t, err)
}

func TestNewRedisStoreFailsWithoutServer(t *testing.T) {
	_, err := NewRedisStore(context.Background(), "", 0)
	require.Error(t, err)

	_, err = NewRedisStore(context.Background(), "not a url", 0)
	require.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, config.StorageConfig{Backend: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &CacheStore{}, store)

	store, err = Open(ctx, config.StorageConfig{Backend: "file", Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, store)

	_, err = Open(ctx, config.StorageConfig{Backend: "cassandra"})
	assert.Error(t, err)
}

func TestKeyspace(t *testing.T) {
	keys := Keyspace{Prefix: "everywhere", UserID: "sam"}
	assert.Equal(t, "everywhere:sam:memories", keys.Key(EntityMemories))
}
