package session

import (
	"strings"
	"time"

	"everywhere_bot/internal/config"
)

// TypingDelay is min(base + words/wordsPerSecond, max) for text
func TypingDelay(cfg config.TypingConfig, text string) time.Duration {
	words := len(strings.Fields(text))
	delay := cfg.BaseDelay
	if cfg.WordsPerSecond > 0 {
		delay += time.Duration(float64(words) / cfg.WordsPerSecond * float64(time.Second))
	}
	if delay > cfg.MaxDelay {
		return cfg.MaxDelay
	}
	return delay
}
