package response

import (
	"fmt"
	"strings"

	"everywhere_bot/pkg"
)

const (
	// FirstTimeGreeting opens a casual session for a user without a name
	FirstTimeGreeting = "Hi! I'm Everywhere, your AI friend and assistant. I can help you with anything from math to science, or we can just chat! What's on your mind?"

	// ContinuingGreeting opens a session shortly after the previous one
	ContinuingGreeting = "I'm all ears! What would you like to discuss?"

	// NameRequest is the interjection asking an unnamed user for their name
	NameRequest = "By the way, I'd love to know your name if you'd like to share it!"
)

const (
	introductionTemplate     = "Nice to meet you, %s! I'll remember that. What would you like to chat about?"
	greetingTopicsTemplate   = "\nBy the way, I remember we had some interesting chats about %s. "
	greetingInterestTemplate = "\nAnything new with your interest in %s?"
	greetingMemoryLookback   = 3
	greetingTopicsChance     = 0.5
	greetingInterestChance   = 0.3
)

var personalGreetings = []string{
	"Good {part}, {name}! ",
	"Hey {name}! Hope you're having a great {part}! ",
	"{name}! Great to see you this {part}! ",
}

// Introduction acknowledges a name shared outside onboarding
func Introduction(name string) string {
	return fmt.Sprintf(introductionTemplate, name)
}

// Greeting builds the greeting of a returning user starting a new session.
// It may mention recent memory topics and a random interest.
func (g *Generator) Greeting(profile *pkg.UserProfile, memory Memory) string {
	var b strings.Builder
	b.WriteString(g.fill(g.pick(personalGreetings), profile))

	if memory != nil {
		if topics := distinctTopics(memory.Recent(greetingMemoryLookback)); len(topics) > 0 && g.rng.Float64() < greetingTopicsChance {
			fmt.Fprintf(&b, greetingTopicsTemplate, strings.Join(topics, ", "))
		}
	}

	if len(profile.Interests) > 0 && g.rng.Float64() < greetingInterestChance {
		fmt.Fprintf(&b, greetingInterestTemplate, g.pick(profile.Interests))
	}
	return b.String()
}
