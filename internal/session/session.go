// Package session owns the state of one user's conversation and runs its turns.
package session

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"everywhere_bot/internal/config"
	"everywhere_bot/internal/core"
	"everywhere_bot/internal/knowledge"
	"everywhere_bot/internal/logger"
	"everywhere_bot/internal/nlu"
	"everywhere_bot/internal/nodes"
	"everywhere_bot/internal/onboarding"
	"everywhere_bot/internal/response"
	"everywhere_bot/internal/storage"
	"everywhere_bot/pkg"

	"github.com/google/uuid"
)

// Options configure a session
type Options struct {
	UserID       string
	KeyPrefix    string
	Typing       config.TypingConfig
	Conversation config.ConversationConfig
	// Rand overrides the generator seeded from Conversation.Seed
	Rand *rand.Rand
	Now  func() time.Time
}

// Session is one user's conversation. It is not safe for concurrent use;
// turns are processed one at a time.
type Session struct {
	ID string

	userID string
	typing config.TypingConfig
	conv   config.ConversationConfig
	rng    *rand.Rand
	now    func() time.Time

	profile *pkg.UserProfile
	state   *pkg.ConversationContext
	memory  *storage.LongtermMemory

	profiles   *storage.ProfileRepository
	contexts   *storage.ContextRepository
	transcript *storage.TranscriptRepository

	machine   *onboarding.Machine
	generator *response.Generator
	processor core.GraphProcessor
}

// New loads the user's state from store. Unreadable records degrade to defaults;
// only wiring errors are returned.
func New(ctx context.Context, store storage.Store, opts Options) (*Session, error) {
	if opts.UserID == "" {
		return nil, fmt.Errorf("user id cannot be empty")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	rng := opts.Rand
	if rng == nil {
		rng = newRand(opts.Conversation.Seed, now)
	}

	keys := storage.Keyspace{Prefix: opts.KeyPrefix, UserID: opts.UserID}
	s := &Session{
		ID:         uuid.NewString(),
		userID:     opts.UserID,
		typing:     opts.Typing,
		conv:       opts.Conversation,
		rng:        rng,
		now:        now,
		profiles:   storage.NewProfileRepository(store, keys, now),
		contexts:   storage.NewContextRepository(store, keys),
		transcript: storage.NewTranscriptRepository(store, keys, opts.Conversation.TranscriptTurns),
	}

	var err error
	if s.profile, err = s.profiles.Load(ctx); err != nil {
		logger.Warn().Err(err).Str("user_id", s.userID).Msg("Failed to load profile, using defaults")
	}
	if s.state, err = s.contexts.Load(ctx); err != nil {
		logger.Warn().Err(err).Str("user_id", s.userID).Msg("Failed to load conversation context, using defaults")
	}
	if s.memory, err = storage.OpenLongtermMemory(ctx, store, keys, now); err != nil {
		logger.Warn().Err(err).Str("user_id", s.userID).Msg("Failed to load longterm memory, starting empty")
	}

	s.machine = onboarding.NewMachine(s.profiles, s.contexts)
	s.generator = response.NewGenerator(knowledge.NewBase(), rng, now)
	processor, err := nodes.NewProcessor(nodes.Deps{
		Analyzer:   nlu.NewAnalyzer(),
		Names:      nlu.NewNameExtractor(),
		Onboarding: s.machine,
		Generator:  s.generator,
	})
	if err != nil {
		return nil, err
	}
	s.processor = processor

	logger.Info().
		Str("session_id", s.ID).
		Str("user_id", s.userID).
		Bool("known_user", s.profile.HasName()).
		Int("memories", s.memory.Len()).
		Msg("Session opened")
	return s, nil
}

func newRand(seed uint64, now func() time.Time) *rand.Rand {
	if seed == 0 {
		seed = uint64(now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Start returns the session-start greeting and records the visit
func (s *Session) Start(ctx context.Context) []pkg.Emission {
	var text string
	switch {
	case s.machine.Active(s.state):
		text = s.machine.CurrentPrompt(s.state, s.profile)
	case !s.profile.HasName() && s.conv.GuidedOnboarding:
		text = s.machine.Start(s.state)
	case !s.profile.HasName():
		text = response.FirstTimeGreeting
		s.state.NeedsIntroduction = true
	case s.isNewSession(ctx):
		text = s.generator.Greeting(s.profile, s.memory)
	default:
		text = response.ContinuingGreeting
	}

	if err := s.contexts.SetLastVisit(ctx, s.now()); err != nil {
		logger.Warn().Err(err).Str("session_id", s.ID).Msg("Failed to record last visit")
	}
	s.persist(ctx)

	emissions := []pkg.Emission{s.emission(pkg.EmissionSystem, text)}
	s.record(ctx, "", emissions)
	return emissions
}

func (s *Session) isNewSession(ctx context.Context) bool {
	last, ok, err := s.contexts.LastVisit(ctx)
	if err != nil {
		logger.Warn().Err(err).Str("session_id", s.ID).Msg("Failed to read last visit")
	}
	return !ok || s.now().Sub(last) > s.conv.NewSessionAfter
}

// Submit processes one user message and returns the bot messages in emission order:
// the reply, then either a name request or a follow-up. Blank input yields nothing.
func (s *Session) Submit(ctx context.Context, text string) []pkg.Emission {
	message := strings.TrimSpace(text)
	if message == "" {
		return nil
	}

	turn := &core.Turn{
		Message:      message,
		UserID:       s.userID,
		Profile:      s.profile,
		Conversation: s.state,
		Memory:       s.memory,
	}

	out, err := s.processor.Execute(ctx, turn)
	if err != nil {
		logger.Error().Err(err).Str("session_id", s.ID).Msg("Turn failed, falling back to generic reply")
		emissions := []pkg.Emission{s.emission(pkg.EmissionPrimary, s.generator.Fallback(s.profile))}
		s.record(ctx, message, emissions)
		return emissions
	}

	emissions := []pkg.Emission{s.emission(pkg.EmissionPrimary, out.Reply)}
	if out.Route == core.RouteResponse {
		if extra, ok := s.interjection(out.Response); ok {
			emissions = append(emissions, extra)
		}
	}

	s.persist(ctx)
	s.record(ctx, message, emissions)
	s.logTurn(out, len(emissions))
	return emissions
}

// interjection draws the name request first; when it fires the follow-up is dropped
func (s *Session) interjection(resp *pkg.Response) (pkg.Emission, bool) {
	if !s.profile.HasName() && !s.state.AskedForName && s.rng.Float64() < s.conv.NameRequestProbability {
		s.state.AskedForName = true
		return s.emission(pkg.EmissionNameRequest, response.NameRequest), true
	}
	if resp != nil && resp.FollowUp != "" && s.rng.Float64() < s.conv.FollowUpProbability {
		return s.emission(pkg.EmissionFollowUp, resp.FollowUp), true
	}
	return pkg.Emission{}, false
}

func (s *Session) emission(kind pkg.EmissionKind, text string) pkg.Emission {
	return pkg.Emission{Kind: kind, Text: text, Delay: TypingDelay(s.typing, text)}
}

func (s *Session) persist(ctx context.Context) {
	if err := s.profiles.Save(ctx, s.profile); err != nil {
		logger.Warn().Err(err).Str("session_id", s.ID).Msg("Failed to save profile")
	}
	if err := s.contexts.Save(ctx, s.state); err != nil {
		logger.Warn().Err(err).Str("session_id", s.ID).Msg("Failed to save conversation context")
	}
}

func (s *Session) record(ctx context.Context, userText string, emissions []pkg.Emission) {
	if userText != "" {
		if err := s.transcript.AddUserMessage(ctx, userText); err != nil {
			logger.Warn().Err(err).Str("session_id", s.ID).Msg("Failed to record user message")
			return
		}
	}
	texts := make([]string, 0, len(emissions))
	for _, emission := range emissions {
		texts = append(texts, emission.Text)
	}
	if err := s.transcript.AddAssistantMessages(ctx, texts...); err != nil {
		logger.Warn().Err(err).Str("session_id", s.ID).Msg("Failed to record bot messages")
	}
}

func (s *Session) logTurn(out *core.ProcessorOutput, emitted int) {
	event := logger.Debug().
		Str("session_id", s.ID).
		Str("route", out.Route).
		Int("emissions", emitted)
	if out.Analysis != nil {
		event = event.
			Str("intent", string(out.Analysis.Intent)).
			Str("emotion", string(out.Analysis.Emotion)).
			Str("topic", string(out.Analysis.Topic))
	}
	if out.Response != nil {
		event = event.Bool("significant", out.Response.IsSignificant)
	}
	event.Msg("Turn processed")
}

// Profile returns the user's profile
func (s *Session) Profile() *pkg.UserProfile {
	return s.profile
}

// Conversation returns the conversation context
func (s *Session) Conversation() *pkg.ConversationContext {
	return s.state
}

// Memory returns the episodic log
func (s *Session) Memory() *storage.LongtermMemory {
	return s.memory
}
