package pkg

import (
	"time"
)

// Conversation core types shared by the analyzer, the policies and storage

// Intent is the coarse conversational goal of a user message
type Intent string

const (
	IntentGreeting  Intent = "greeting"
	IntentFarewell  Intent = "farewell"
	IntentHelp      Intent = "help"
	IntentGratitude Intent = "gratitude"
	IntentQuestion  Intent = "question"
	IntentSharing   Intent = "sharing"
	IntentMemory    Intent = "memory"
	IntentNone      Intent = "none"
)

// Emotion is the coarse sentiment of a user message; EmotionNone means no trigger matched
type Emotion string

const (
	EmotionPositive  Emotion = "positive"
	EmotionNegative  Emotion = "negative"
	EmotionNeutral   Emotion = "neutral"
	EmotionUncertain Emotion = "uncertain"
	EmotionNone      Emotion = ""
)

// Topic is the subject-matter tag used for memory and template selection; TopicNone means unclassified
type Topic string

const (
	TopicPersonal      Topic = "personal"
	TopicTech          Topic = "tech"
	TopicEntertainment Topic = "entertainment"
	TopicKnowledge     Topic = "knowledge"
	TopicHelp          Topic = "help"
	TopicTime          Topic = "time"
	TopicWeather       Topic = "weather"
	TopicHealth        Topic = "health"
	TopicWork          Topic = "work"
	TopicFood          Topic = "food"
	TopicFuture        Topic = "future" // never produced by the analyzer tables; kept for the sharing policy
	TopicNone          Topic = ""
)

// MaxRecentTopics bounds ConversationContext.RecentTopics
const MaxRecentTopics = 5

// UserProfile is the single persisted profile record of a user
type UserProfile struct {
	Name           string    `json:"name,omitempty"`
	Interests      []string  `json:"interests"` // mention order
	ChatPreference string    `json:"chatPreference,omitempty"`
	Intention      string    `json:"intention,omitempty"`
	FirstVisit     time.Time `json:"firstVisit"`
	LastMood       Emotion   `json:"lastMood,omitempty"`
}

// NewUserProfile returns the first-load defaults
func NewUserProfile(now time.Time) *UserProfile {
	return &UserProfile{
		Interests:  []string{},
		FirstVisit: now,
	}
}

// HasName reports whether the user has told us their name
func (p *UserProfile) HasName() bool {
	return p.Name != ""
}

// MemoryEntry is one record of the append-only episodic log
type MemoryEntry struct {
	Topic     Topic     `json:"topic"`
	Content   string    `json:"content"`
	Sentiment Emotion   `json:"sentiment,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationContext is the per-session conversational state
type ConversationContext struct {
	CurrentTopic          Topic   `json:"currentTopic,omitempty"`
	LastUserEmotion       Emotion `json:"lastUserEmotion,omitempty"`
	RecentTopics          []Topic `json:"recentTopics"` // most recent first, at most MaxRecentTopics
	OnboardingStarted     bool    `json:"onboardingStarted"`
	OnboardingComplete    bool    `json:"onboardingComplete"`
	CurrentOnboardingStep int     `json:"currentOnboardingStep"`
	NeedsIntroduction     bool    `json:"needsIntroduction"`
	AskedForName          bool    `json:"askedForName"`
}

// NewConversationContext returns the session-start defaults
func NewConversationContext() *ConversationContext {
	return &ConversationContext{RecentTopics: []Topic{}}
}

// PushTopic records topic as the current one and keeps RecentTopics most-recent-first.
// Repeats are kept; only the length is bounded.
func (c *ConversationContext) PushTopic(topic Topic) {
	c.CurrentTopic = topic
	c.RecentTopics = append([]Topic{topic}, c.RecentTopics...)
	if len(c.RecentTopics) > MaxRecentTopics {
		c.RecentTopics = c.RecentTopics[:MaxRecentTopics]
	}
}

// OnboardingActive reports whether the guided flow owns the next message
func (c *ConversationContext) OnboardingActive() bool {
	return c.OnboardingStarted && !c.OnboardingComplete
}

// AnalyzedContext is the per-turn classification of a message
type AnalyzedContext struct {
	Intent     Intent               `json:"intent"`
	Emotion    Emotion              `json:"emotion,omitempty"`
	Topic      Topic                `json:"topic,omitempty"`
	IsQuestion bool                 `json:"is_question"`
	Keywords   []string             `json:"keywords"`
	Previous   *ConversationContext `json:"-"` // provenance only, never mutated
}

// Response is the structured outcome of the response policy
type Response struct {
	Message       string `json:"message"`
	FollowUp      string `json:"follow_up,omitempty"`
	IsSignificant bool   `json:"is_significant"`
	Topic         Topic  `json:"topic,omitempty"`
}

// EmissionKind tags an outgoing bot message
type EmissionKind string

const (
	EmissionPrimary     EmissionKind = "primary"
	EmissionFollowUp    EmissionKind = "follow_up"
	EmissionNameRequest EmissionKind = "name_request"
	EmissionSystem      EmissionKind = "system"
)

// Emission is one bot message of a turn. Delay is relative to the previous emission.
type Emission struct {
	Kind  EmissionKind  `json:"kind"`
	Text  string        `json:"text"`
	Delay time.Duration `json:"delay"`
}
