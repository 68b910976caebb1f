package nlu

import "everywhere_bot/pkg"

// IntentRule maps a trigger set to an intent. Rules are evaluated in slice order.
type IntentRule struct {
	Intent   pkg.Intent
	Triggers []string
}

// EmotionRule maps a trigger set (words and emoji) to an emotion.
type EmotionRule struct {
	Emotion  pkg.Emotion
	Triggers []string
}

// TopicRule maps a keyword set to a topic.
type TopicRule struct {
	Topic    pkg.Topic
	Keywords []string
}

// IntentRules is ordered from highest to lowest precedence.
var IntentRules = []IntentRule{
	{pkg.IntentGreeting, []string{"hi", "hello", "hey", "sup"}},
	{pkg.IntentFarewell, []string{"bye", "goodbye", "see you"}},
	{pkg.IntentHelp, []string{"help", "can you", "how to"}},
	{pkg.IntentGratitude, []string{"thank", "thanks"}},
	{pkg.IntentQuestion, []string{"what", "who", "where", "when", "why", "how"}},
	{pkg.IntentSharing, []string{"feel", "think", "believe", "love", "hate", "miss"}},
	{pkg.IntentMemory, []string{"remember", "recall", "forgot", "mentioned"}},
}

// EmotionRules is ordered from highest to lowest precedence.
var EmotionRules = []EmotionRule{
	{pkg.EmotionPositive, []string{"happy", "great", "awesome", "amazing", "love", "excited", "wonderful", "😊", "😃", "🎉", "❤️"}},
	{pkg.EmotionNegative, []string{"sad", "bad", "terrible", "awful", "hate", "angry", "upset", "worried", "anxious", "😢", "😞", "😠", "😟"}},
	{pkg.EmotionNeutral, []string{"okay", "fine", "alright", "meh", "normal", "usual", "😐"}},
	{pkg.EmotionUncertain, []string{"confused", "unsure", "maybe", "perhaps", "🤔"}},
}

// TopicRules is in declaration order; the first topic with a keyword hit wins.
var TopicRules = []TopicRule{
	{pkg.TopicPersonal, []string{"you", "your", "name", "age", "created"}},
	{pkg.TopicTech, []string{"computer", "code", "programming", "website", "app"}},
	{pkg.TopicEntertainment, []string{"movie", "game", "music", "play", "fun", "joke"}},
	{pkg.TopicKnowledge, []string{"know", "learn", "fact", "tell me about", "what is"}},
	{pkg.TopicHelp, []string{"help", "assist", "support", "guide"}},
	{pkg.TopicTime, []string{"time", "day", "date", "when"}},
	{pkg.TopicWeather, []string{"weather", "temperature", "forecast"}},
	{pkg.TopicHealth, []string{"health", "feel", "sick", "better"}},
	{pkg.TopicWork, []string{"work", "job", "task", "project"}},
	{pkg.TopicFood, []string{"food", "eat", "drink", "hungry", "thirsty"}},
}

// StopWords are dropped from extracted keywords (compared lowercase).
var StopWords = map[string]struct{}{
	"what": {}, "when": {}, "where": {}, "which": {}, "how": {}, "why": {},
	"that": {}, "this": {}, "there": {}, "these": {}, "those": {},
}

// minKeywordLength is exclusive: keywords must be longer than this.
const minKeywordLength = 3
