package onboarding

import (
	"context"
	"errors"
	"testing"
	"time"

	"everywhere_bot/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSaver struct {
	profiles int
	err      error
}

func (r *recordingSaver) Save(ctx context.Context, _ *pkg.UserProfile) error {
	r.profiles++
	return r.err
}

type contextSaver struct {
	saved []pkg.ConversationContext
}

func (c *contextSaver) Save(ctx context.Context, convCtx *pkg.ConversationContext) error {
	c.saved = append(c.saved, *convCtx)
	return nil
}

func TestMachineFullFlow(t *testing.T) {
	ctx := context.Background()
	profiles := &recordingSaver{}
	contexts := &contextSaver{}
	machine := NewMachine(profiles, contexts)

	profile := pkg.NewUserProfile(time.Now())
	convCtx := pkg.NewConversationContext()

	assert.False(t, machine.Active(convCtx))
	prompt := machine.Start(convCtx)
	assert.Contains(t, prompt, "What's your name?")
	require.True(t, machine.Active(convCtx))

	reply, err := machine.Advance(ctx, "Sam", profile, convCtx)
	require.NoError(t, err)
	assert.Contains(t, reply, "It's wonderful to meet you, Sam!")
	assert.NotContains(t, reply, "{name}")

	reply, err = machine.Advance(ctx, "mostly to chat", profile, convCtx)
	require.NoError(t, err)
	assert.Contains(t, reply, "passionate about")

	reply, err = machine.Advance(ctx, " Music, Board Games. hiking,, ", profile, convCtx)
	require.NoError(t, err)
	assert.Contains(t, reply, "Thanks for sharing that with me, Sam!")

	assert.Empty(t, contexts.saved)
	reply, err = machine.Advance(ctx, "night owl", profile, convCtx)
	require.NoError(t, err)
	assert.Contains(t, reply, "Thank you so much for sharing all of that with me, Sam!")

	assert.True(t, convCtx.OnboardingComplete)
	assert.False(t, machine.Active(convCtx))
	assert.Equal(t, 4, convCtx.CurrentOnboardingStep)
	assert.Equal(t, "Sam", profile.Name)
	assert.Equal(t, "mostly to chat", profile.Intention)
	assert.Equal(t, []string{"music", "board games", "hiking"}, profile.Interests)
	assert.Equal(t, "night owl", profile.ChatPreference)
	assert.Equal(t, 4, profiles.profiles)
	require.Len(t, contexts.saved, 1)
	assert.True(t, contexts.saved[0].OnboardingComplete)

	_, err = machine.Advance(ctx, "extra", profile, convCtx)
	assert.Error(t, err)
}

func TestMachineAdvancesDespiteSaveError(t *testing.T) {
	profiles := &recordingSaver{err: errors.New("disk full")}
	machine := NewMachine(profiles, &contextSaver{})
	profile := pkg.NewUserProfile(time.Now())
	convCtx := pkg.NewConversationContext()
	machine.Start(convCtx)

	reply, err := machine.Advance(context.Background(), "Jo", profile, convCtx)
	assert.Error(t, err)
	assert.Contains(t, reply, "Jo")
	assert.Equal(t, 1, convCtx.CurrentOnboardingStep)
}

func TestCurrentPromptResumes(t *testing.T) {
	machine := NewMachine(&recordingSaver{}, &contextSaver{})
	convCtx := &pkg.ConversationContext{OnboardingStarted: true, CurrentOnboardingStep: 3}
	profile := &pkg.UserProfile{Name: "Riley"}

	assert.Contains(t, machine.CurrentPrompt(convCtx, profile), "Thanks for sharing that with me, Riley!")

	convCtx.CurrentOnboardingStep = 9
	assert.Empty(t, machine.CurrentPrompt(convCtx, profile))
}

func TestParseInterests(t *testing.T) {
	assert.Equal(t, []string{"music", "games"}, ParseInterests("Music, games."))
	assert.Equal(t, []string{"reading"}, ParseInterests("  READING  "))
	assert.Empty(t, ParseInterests(" , . "))
}
