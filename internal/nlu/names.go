package nlu

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// NamePattern identifies which name-sharing form matched
type NamePattern int

const (
	NamePatternNone NamePattern = iota
	// "I'm X", "I am X", "name's X", "call me X"
	NamePatternIntroduction
	// "X here"
	NamePatternHere
	// a single-token message
	NamePatternBareWord
)

type namePattern struct {
	kind NamePattern
	re   *regexp.Regexp
}

// namePatterns is evaluated in order; the first match captures the name.
// Only the lead-in words are case-folded: under (?i) the capture class would also
// accept non-ASCII folds such as U+017F and U+212A.
var namePatterns = []namePattern{
	{NamePatternIntroduction, regexp.MustCompile(`(?i:i'?m|i am|name'?s|call me) ([A-Za-z]+)`)},
	{NamePatternHere, regexp.MustCompile(`^([A-Za-z]+)(?i: here)`)},
	{NamePatternBareWord, regexp.MustCompile(`^([A-Za-z]+)$`)},
}

// NameExtractor detects a user volunteering their name in free text
type NameExtractor struct {
	patterns []namePattern
}

// NewNameExtractor returns an extractor over the fixed pattern list
func NewNameExtractor() *NameExtractor {
	return &NameExtractor{patterns: namePatterns}
}

// Detect reports whether any name pattern matches message
func (e *NameExtractor) Detect(message string) bool {
	_, kind := e.Match(message)
	return kind != NamePatternNone
}

// Extract returns the normalized name, or "" when nothing matches
func (e *NameExtractor) Extract(message string) string {
	name, _ := e.Match(message)
	return name
}

// Match returns the normalized name and the pattern that produced it
func (e *NameExtractor) Match(message string) (string, NamePattern) {
	message = strings.TrimSpace(message)
	for _, p := range e.patterns {
		m := p.re.FindStringSubmatch(message)
		if len(m) > 1 && m[1] != "" {
			return normalizeName(m[1]), p.kind
		}
	}
	return "", NamePatternNone
}

// normalizeName capitalizes the first letter and lowercases the rest
func normalizeName(raw string) string {
	lower := strings.ToLower(raw)
	first, size := utf8.DecodeRuneInString(lower)
	return string(unicode.ToUpper(first)) + lower[size:]
}
