package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override, e.g. EVERYWHERE_STORAGE_BACKEND.
// Keys are derived from field names only; unprefixed variables are never read.
const EnvPrefix = "EVERYWHERE"

// Config represents the structure of config.yaml
type Config struct {
	Log          LogConfig          `yaml:"log"`
	Storage      StorageConfig      `yaml:"storage"`
	Typing       TypingConfig       `yaml:"typing"`
	Conversation ConversationConfig `yaml:"conversation"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level      string `yaml:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format     string `yaml:"format" validate:"oneof=json console"`
	Output     string `yaml:"output" validate:"oneof=stdout stderr file"`
	TimeFormat string `yaml:"time_format" split_words:"true"`
	FilePath   string `yaml:"file_path" split_words:"true" validate:"required_if=Output file"`
}

// StorageConfig selects and configures the key/value backend
type StorageConfig struct {
	Backend   string        `yaml:"backend" validate:"oneof=memory file redis sqlite"`
	Dir       string        `yaml:"dir" validate:"required_if=Backend file"`
	RedisURL  string        `yaml:"redis_url" split_words:"true" validate:"required_if=Backend redis"`
	DBPath    string        `yaml:"sqlite_path" split_words:"true" validate:"required_if=Backend sqlite"`
	TTL       time.Duration `yaml:"ttl" validate:"gte=0"` // 0 keeps records forever
	KeyPrefix string        `yaml:"key_prefix" split_words:"true" validate:"required"`
}

// TypingConfig is the simulated typing delay model
type TypingConfig struct {
	BaseDelay      time.Duration `yaml:"base_delay" split_words:"true" validate:"gte=0"`
	WordsPerSecond float64       `yaml:"words_per_second" split_words:"true" validate:"gt=0"`
	MaxDelay       time.Duration `yaml:"max_delay" split_words:"true" validate:"gte=0"`
}

// ConversationConfig tunes the conversational policies
type ConversationConfig struct {
	GuidedOnboarding       bool          `yaml:"guided_onboarding" split_words:"true"`
	FollowUpProbability    float64       `yaml:"follow_up_probability" split_words:"true" validate:"gte=0,lte=1"`
	NameRequestProbability float64       `yaml:"name_request_probability" split_words:"true" validate:"gte=0,lte=1"`
	NewSessionAfter        time.Duration `yaml:"new_session_after" split_words:"true" validate:"gt=0"`
	TranscriptTurns        int           `yaml:"transcript_turns" split_words:"true" validate:"gt=0"`
	Seed                   uint64        `yaml:"seed"` // 0 seeds from the clock
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			Output:     "stderr",
			TimeFormat: "rfc3339",
			FilePath:   "logs/everywhere.log",
		},
		Storage: StorageConfig{
			Backend:   "file",
			Dir:       "data/everywhere",
			RedisURL:  "redis://localhost:6379/0",
			DBPath:    "data/everywhere.db",
			KeyPrefix: "everywhere",
		},
		Typing: TypingConfig{
			BaseDelay:      500 * time.Millisecond,
			WordsPerSecond: 5,
			MaxDelay:       3000 * time.Millisecond,
		},
		Conversation: ConversationConfig{
			GuidedOnboarding:       true,
			FollowUpProbability:    0.7,
			NameRequestProbability: 0.3,
			NewSessionAfter:        time.Hour,
			TranscriptTurns:        20,
		},
	}
}

// LoadConfig loads configuration from the YAML file at filepath, then applies .env and
// EVERYWHERE_* environment overrides. A missing file falls back to Default.
func LoadConfig(filepath string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(filepath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing YAML: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// .env is optional
	_ = godotenv.Load()

	if err := envconfig.Process(EnvPrefix, config); err != nil {
		return nil, fmt.Errorf("error processing environment configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
