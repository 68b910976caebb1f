// Package nlu classifies raw user text with fixed, ordered rule tables.
package nlu

import (
	"strings"
	"unicode/utf8"

	"everywhere_bot/pkg"
)

// Analyzer turns a message into a pkg.AnalyzedContext. It holds no mutable state.
type Analyzer struct {
	intents  []IntentRule
	emotions []EmotionRule
	topics   []TopicRule
	stop     map[string]struct{}
}

// NewAnalyzer returns an analyzer over the package rule tables
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		intents:  IntentRules,
		emotions: EmotionRules,
		topics:   TopicRules,
		stop:     StopWords,
	}
}

// Analyze classifies message. prior is attached as provenance and never modified.
func (a *Analyzer) Analyze(message string, prior *pkg.ConversationContext) pkg.AnalyzedContext {
	lower := strings.ToLower(message)

	return pkg.AnalyzedContext{
		Intent:     a.intent(lower),
		Emotion:    a.emotion(lower),
		Topic:      a.topic(lower),
		IsQuestion: strings.Contains(message, "?"),
		Keywords:   a.keywords(message),
		Previous:   prior,
	}
}

func (a *Analyzer) intent(lower string) pkg.Intent {
	for _, rule := range a.intents {
		if ContainsAny(lower, rule.Triggers) {
			return rule.Intent
		}
	}
	return pkg.IntentNone
}

func (a *Analyzer) emotion(lower string) pkg.Emotion {
	for _, rule := range a.emotions {
		if ContainsAny(lower, rule.Triggers) {
			return rule.Emotion
		}
	}
	return pkg.EmotionNone
}

func (a *Analyzer) topic(lower string) pkg.Topic {
	for _, rule := range a.topics {
		if ContainsAny(lower, rule.Keywords) {
			return rule.Topic
		}
	}
	return pkg.TopicNone
}

func (a *Analyzer) keywords(message string) []string {
	keywords := []string{}
	for _, word := range strings.Fields(message) {
		if utf8.RuneCountInString(word) <= minKeywordLength {
			continue
		}
		if _, stop := a.stop[strings.ToLower(word)]; stop {
			continue
		}
		keywords = append(keywords, word)
	}
	return keywords
}

// ContainsAny reports whether s contains any of the needles, ignoring case
func ContainsAny(s string, needles []string) bool {
	lower := strings.ToLower(s)
	for _, needle := range needles {
		if strings.Contains(lower, strings.ToLower(needle)) {
			return true
		}
	}
	return false
}
