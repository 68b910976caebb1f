// Package response implements the reply policy of the bot.
//
// Generate evaluates its branches in a fixed precedence order and returns a
// structured pkg.Response. Rendering and scheduling happen elsewhere.
package response

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"everywhere_bot/internal/nlu"
	"everywhere_bot/pkg"
)

// Rand is the subset of *rand.Rand the policy draws from
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Memory is the read side of the episodic log
type Memory interface {
	Recent(n int) []pkg.MemoryEntry
	ByTopic(topic pkg.Topic) (pkg.MemoryEntry, bool)
	Related(topic pkg.Topic, keywords []string) (pkg.MemoryEntry, bool)
}

// Knowledge answers factual questions
type Knowledge interface {
	Arithmetic(message string) (string, bool)
	Fact(message string) (string, bool)
	Explain(message string) (string, bool)
}

// Branch names the policy branch that produced a response
type Branch string

const (
	BranchEmpathy  Branch = "empathy"
	BranchInterest Branch = "interest"
	BranchQuestion Branch = "question"
	BranchSharing  Branch = "sharing"
	BranchDefault  Branch = "default"
)

// Turn is the input of one policy evaluation
type Turn struct {
	Context pkg.AnalyzedContext
	Message string
	Profile *pkg.UserProfile
	Memory  Memory
}

// Generator picks replies. It holds no conversation state of its own.
type Generator struct {
	knowledge Knowledge
	rng       Rand
	now       func() time.Time
}

// NewGenerator creates a generator drawing template choices from rng
func NewGenerator(knowledge Knowledge, rng Rand, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{knowledge: knowledge, rng: rng, now: now}
}

// Generate returns the reply for turn and the branch that produced it.
// FollowUp is a candidate; whether it is emitted is decided by the caller.
func (g *Generator) Generate(turn Turn) (pkg.Response, Branch) {
	analyzed := turn.Context
	resp := pkg.Response{Topic: analyzed.Topic}

	if analyzed.Emotion == pkg.EmotionNegative {
		resp.Message = g.fill(g.pick(empatheticTemplates), turn.Profile)
		resp.IsSignificant = true
		return resp, BranchEmpathy
	}

	var branch Branch
	switch {
	case matchesInterest(turn.Message, turn.Profile.Interests):
		resp.Message = g.pick(interestTemplates)
		resp.IsSignificant = true
		branch = BranchInterest
	case analyzed.Intent == pkg.IntentQuestion:
		resp.Message = g.answerQuestion(turn)
		resp.IsSignificant = true
		branch = BranchQuestion
	case analyzed.Intent == pkg.IntentSharing:
		shared := sharingFor(analyzed)
		resp.Message = g.fill(shared.message, turn.Profile)
		resp.FollowUp = shared.followUp
		resp.IsSignificant = true
		branch = BranchSharing
	default:
		resp.Message = g.defaultReply(turn)
		branch = BranchDefault
	}

	if followUp := g.FollowUp(analyzed.Topic, turn.Profile, turn.Memory); followUp != "" {
		resp.FollowUp = followUp
	}
	return resp, branch
}

// Fallback is the reply used when a turn could not be processed
func (g *Generator) Fallback(profile *pkg.UserProfile) string {
	return g.fill(listeningTemplate, profile)
}

// FollowUp prefers a callback to a memory with the same topic, then a random interest
func (g *Generator) FollowUp(topic pkg.Topic, profile *pkg.UserProfile, memory Memory) string {
	if memory != nil {
		if entry, ok := memory.ByTopic(topic); ok {
			return fmt.Sprintf(memoryCallbackFollow, entry.Topic)
		}
	}
	if len(profile.Interests) > 0 {
		return fmt.Sprintf(interestFollowUp, g.pick(profile.Interests))
	}
	return ""
}

func (g *Generator) answerQuestion(turn Turn) string {
	if answer, ok := g.knowledge.Arithmetic(turn.Message); ok {
		return answer
	}
	if answer, ok := g.knowledge.Fact(turn.Message); ok {
		return answer
	}

	analyzed := turn.Context
	var prefix string
	if turn.Memory != nil {
		if entry, ok := turn.Memory.Related(analyzed.Topic, analyzed.Keywords); ok {
			prefix = fmt.Sprintf(relatedMemoryPrefix, topicLabel(entry.Topic))
		}
	}

	if analyzed.Topic == pkg.TopicPersonal {
		return prefix + g.pick(personalTemplates)
	}
	if explanation, ok := g.knowledge.Explain(turn.Message); ok {
		return prefix + explanation
	}
	if analyzed.Topic == pkg.TopicNone {
		return prefix + questionFallbackBare
	}
	return prefix + fmt.Sprintf(questionFallback, analyzed.Topic)
}

func sharingFor(analyzed pkg.AnalyzedContext) sharingTemplate {
	switch {
	case analyzed.Emotion == pkg.EmotionPositive:
		return sharingPositive
	case analyzed.Emotion == pkg.EmotionNegative:
		return sharingNegative
	case analyzed.Topic == pkg.TopicFuture:
		return sharingFuture
	default:
		return sharingDefault
	}
}

func (g *Generator) defaultReply(turn Turn) string {
	lower := strings.ToLower(turn.Message)

	switch {
	case strings.Contains(lower, capabilitiesTrigger):
		return capabilitiesTemplate
	case strings.Contains(lower, jokeTrigger):
		return g.pick(jokes)
	case nlu.ContainsAny(lower, factTriggers):
		return g.pick(funFacts)
	case turn.Context.Intent == pkg.IntentMemory:
		return recall(turn.Memory)
	}

	if templates, ok := intentTemplates[turn.Context.Intent]; ok {
		return g.fill(g.pick(templates), turn.Profile)
	}
	return g.fill(listeningTemplate, turn.Profile)
}

func recall(memory Memory) string {
	if memory == nil {
		return memoryRecallEmpty
	}
	recent := memory.Recent(memoryRecallLookback)
	if len(recent) == 0 {
		return memoryRecallEmpty
	}

	newestFirst := slices.Clone(recent)
	slices.Reverse(newestFirst)
	topics := distinctTopics(newestFirst)
	if len(topics) == 0 {
		return fmt.Sprintf(memoryRecallUntagged, recent[len(recent)-1].Content)
	}
	return fmt.Sprintf(memoryRecallTemplate, JoinList(topics))
}

// distinctTopics lists the tagged topics of entries once each, in entry order
func distinctTopics(entries []pkg.MemoryEntry) []string {
	topics := make([]string, 0, len(entries))
	seen := make(map[pkg.Topic]bool, len(entries))
	for _, entry := range entries {
		if entry.Topic == pkg.TopicNone || seen[entry.Topic] {
			continue
		}
		seen[entry.Topic] = true
		topics = append(topics, string(entry.Topic))
	}
	return topics
}

func matchesInterest(message string, interests []string) bool {
	lower := strings.ToLower(message)
	for _, interest := range interests {
		if interest != "" && strings.Contains(lower, strings.ToLower(interest)) {
			return true
		}
	}
	return false
}

func (g *Generator) pick(options []string) string {
	return options[g.rng.IntN(len(options))]
}

func (g *Generator) fill(template string, profile *pkg.UserProfile) string {
	return strings.NewReplacer(
		"{name}", DisplayName(profile),
		"{part}", PartOfDay(g.now()),
	).Replace(template)
}

// DisplayName is the name used in templates
func DisplayName(profile *pkg.UserProfile) string {
	if profile == nil || profile.Name == "" {
		return defaultDisplayName
	}
	return profile.Name
}

// PartOfDay maps the hour of t to morning, afternoon or evening
func PartOfDay(t time.Time) string {
	switch hour := t.Hour(); {
	case hour < 12:
		return "morning"
	case hour < 17:
		return "afternoon"
	default:
		return "evening"
	}
}

// JoinList joins items as "a", "a and b" or "a, b and c"
func JoinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

func topicLabel(topic pkg.Topic) string {
	if topic == pkg.TopicNone {
		return "that"
	}
	return string(topic)
}
