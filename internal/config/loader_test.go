package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeConfig(t, `
storage:
  backend: sqlite
  sqlite_path: /tmp/bot.db
typing:
  base_delay: 250ms
  max_delay: 2s
conversation:
  guided_onboarding: false
  seed: 42
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/bot.db", cfg.Storage.DBPath)
	assert.Equal(t, 250*time.Millisecond, cfg.Typing.BaseDelay)
	assert.Equal(t, 2*time.Second, cfg.Typing.MaxDelay)
	assert.Equal(t, 5.0, cfg.Typing.WordsPerSecond)
	assert.False(t, cfg.Conversation.GuidedOnboarding)
	assert.Equal(t, uint64(42), cfg.Conversation.Seed)
	assert.Equal(t, "everywhere", cfg.Storage.KeyPrefix)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("EVERYWHERE_STORAGE_BACKEND", "memory")
	t.Setenv("EVERYWHERE_CONVERSATION_FOLLOW_UP_PROBABILITY", "0.25")

	cfg, err := LoadConfig(writeConfig(t, "storage:\n  backend: redis\n"))
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, 0.25, cfg.Conversation.FollowUpProbability)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "storage:\n  backend: cassandra\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")

	_, err = LoadConfig(writeConfig(t, "conversation:\n  follow_up_probability: 1.5\n"))
	require.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "log: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error parsing YAML")
}

func TestLoadConfigIgnoresUnprefixedEnv(t *testing.T) {
	t.Setenv("SEED", "7")
	t.Setenv("DIR", "/tmp/elsewhere")
	t.Setenv("BACKEND", "cassandra")
	t.Setenv("LEVEL", "trace")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadConfigEnvSplitWords(t *testing.T) {
	t.Setenv("EVERYWHERE_STORAGE_DB_PATH", "/tmp/env.db")
	t.Setenv("EVERYWHERE_STORAGE_KEY_PREFIX", "bot")
	t.Setenv("EVERYWHERE_TYPING_WORDS_PER_SECOND", "2.5")
	t.Setenv("EVERYWHERE_CONVERSATION_SEED", "9")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.db", cfg.Storage.DBPath)
	assert.Equal(t, "bot", cfg.Storage.KeyPrefix)
	assert.Equal(t, 2.5, cfg.Typing.WordsPerSecond)
	assert.Equal(t, uint64(9), cfg.Conversation.Seed)
}
