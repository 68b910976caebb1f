// Package onboarding implements the four-question guided profile collection flow.
package onboarding

import (
	"context"
	"fmt"
	"strings"

	"everywhere_bot/pkg"
)

// Field names the profile field an onboarding answer is stored into
type Field string

const (
	FieldName       Field = "name"
	FieldIntention  Field = "intention"
	FieldInterests  Field = "interests"
	FieldPreference Field = "preference"
)

// Step is one fixed onboarding question. Prompt may contain {name}.
type Step struct {
	Prompt   string
	Expected Field
}

// Steps is the fixed ordered flow
var Steps = []Step{
	{
		Prompt:   "Hey there! I'm Everywhere, and I'd love to get to know you better! What's your name? 😊",
		Expected: FieldName,
	},
	{
		Prompt:   "It's wonderful to meet you, {name}! I'm excited to be your AI companion. What brings you here today? Are you looking for someone to chat with, help with tasks, or maybe both? 🌟",
		Expected: FieldIntention,
	},
	{
		Prompt:   "That's great! I'd love to know more about your interests so I can be a better friend. What are some things you're passionate about? 🎨 🎮 📚",
		Expected: FieldInterests,
	},
	{
		Prompt:   "Thanks for sharing that with me, {name}! One last thing - when would you prefer to chat with me? Are you more of a morning person, night owl, or do you like to check in throughout the day? ⏰",
		Expected: FieldPreference,
	},
}

const completionTemplate = "Thank you so much for sharing all of that with me, %s! I'm really looking forward to our conversations and helping you with whatever you need. I'll remember your interests and preferences to make our chats more meaningful. What would you like to talk about first? 💫"

// ProfileSaver persists the profile after each answer
type ProfileSaver interface {
	Save(ctx context.Context, profile *pkg.UserProfile) error
}

// ContextSaver persists the conversation context on completion
type ContextSaver interface {
	Save(ctx context.Context, convCtx *pkg.ConversationContext) error
}

// Machine advances the flow. Its state lives in pkg.ConversationContext.
type Machine struct {
	steps    []Step
	profiles ProfileSaver
	contexts ContextSaver
}

// NewMachine creates a machine over Steps
func NewMachine(profiles ProfileSaver, contexts ContextSaver) *Machine {
	return &Machine{steps: Steps, profiles: profiles, contexts: contexts}
}

// Start enters step 0 and returns its prompt
func (m *Machine) Start(convCtx *pkg.ConversationContext) string {
	convCtx.OnboardingStarted = true
	convCtx.OnboardingComplete = false
	convCtx.CurrentOnboardingStep = 0
	return m.steps[0].Prompt
}

// Active reports whether the flow owns the next message
func (m *Machine) Active(convCtx *pkg.ConversationContext) bool {
	return convCtx.OnboardingActive() && convCtx.CurrentOnboardingStep < len(m.steps)
}

// CurrentPrompt returns the prompt of the pending step with {name} filled in
func (m *Machine) CurrentPrompt(convCtx *pkg.ConversationContext, profile *pkg.UserProfile) string {
	step := convCtx.CurrentOnboardingStep
	if step < 0 || step >= len(m.steps) {
		return ""
	}
	return fillName(m.steps[step].Prompt, profile.Name)
}

// Advance stores message as the answer of the current step and returns the next prompt,
// or the completion message after the last step. The flow accepts any answer.
// Persistence errors are returned after the state has been advanced.
func (m *Machine) Advance(ctx context.Context, message string, profile *pkg.UserProfile, convCtx *pkg.ConversationContext) (string, error) {
	if !m.Active(convCtx) {
		return "", fmt.Errorf("onboarding is not active")
	}

	apply(m.steps[convCtx.CurrentOnboardingStep].Expected, message, profile)
	saveErr := m.profiles.Save(ctx, profile)

	convCtx.CurrentOnboardingStep++

	if convCtx.CurrentOnboardingStep < len(m.steps) {
		return m.CurrentPrompt(convCtx, profile), saveErr
	}

	convCtx.OnboardingComplete = true
	if err := m.contexts.Save(ctx, convCtx); err != nil && saveErr == nil {
		saveErr = err
	}
	return fmt.Sprintf(completionTemplate, profile.Name), saveErr
}

func apply(field Field, message string, profile *pkg.UserProfile) {
	switch field {
	case FieldName:
		profile.Name = message
	case FieldIntention:
		profile.Intention = message
	case FieldInterests:
		profile.Interests = ParseInterests(message)
	case FieldPreference:
		profile.ChatPreference = message
	}
}

// ParseInterests splits on commas and periods, trims and lowercases each fragment
// and drops empty fragments.
func ParseInterests(message string) []string {
	fragments := strings.FieldsFunc(strings.ToLower(message), func(r rune) bool {
		return r == ',' || r == '.'
	})

	interests := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		if trimmed := strings.TrimSpace(fragment); trimmed != "" {
			interests = append(interests, trimmed)
		}
	}
	return interests
}

func fillName(prompt, name string) string {
	return strings.ReplaceAll(prompt, "{name}", name)
}
