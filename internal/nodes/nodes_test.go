package nodes

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"everywhere_bot/internal/core"
	"everywhere_bot/internal/knowledge"
	"everywhere_bot/internal/nlu"
	"everywhere_bot/internal/onboarding"
	"everywhere_bot/internal/response"
	"everywhere_bot/internal/storage"
	"everywhere_bot/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	processor *core.DefaultGraphProcessor
	memory    *storage.LongtermMemory
	profile   *pkg.UserProfile
	state     *pkg.ConversationContext
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := storage.NewCacheStore(0)
	keys := storage.Keyspace{Prefix: "test", UserID: "u1"}
	now := func() time.Time { return time.Date(2026, 2, 3, 14, 0, 0, 0, time.UTC) }

	memory, err := storage.OpenLongtermMemory(ctx, store, keys, now)
	require.NoError(t, err)

	processor, err := NewProcessor(Deps{
		Analyzer:   nlu.NewAnalyzer(),
		Names:      nlu.NewNameExtractor(),
		Onboarding: onboarding.NewMachine(storage.NewProfileRepository(store, keys, now), storage.NewContextRepository(store, keys)),
		Generator:  response.NewGenerator(knowledge.NewBase(), rand.New(rand.NewPCG(7, 7)), now),
	})
	require.NoError(t, err)

	return &fixture{
		processor: processor,
		memory:    memory,
		profile:   pkg.NewUserProfile(now()),
		state:     pkg.NewConversationContext(),
	}
}

func (f *fixture) run(t *testing.T, message string) *core.ProcessorOutput {
	t.Helper()
	out, err := f.processor.Execute(context.Background(), &core.Turn{
		Message:      message,
		UserID:       "u1",
		Profile:      f.profile,
		Conversation: f.state,
		Memory:       f.memory,
	})
	require.NoError(t, err)
	return out
}

func TestRoutingOnboardingFirst(t *testing.T) {
	f := newFixture(t)
	f.state.OnboardingStarted = true
	f.state.NeedsIntroduction = true

	out := f.run(t, "I'm Sam")
	assert.Equal(t, core.RouteOnboarding, out.Route)
	assert.Equal(t, []string{core.NodeNLU, core.NodeRouting, core.NodeOnboarding}, out.ExecutionPath)
	assert.Equal(t, "I'm Sam", f.profile.Name)
	assert.Equal(t, 1, f.state.CurrentOnboardingStep)
	assert.Contains(t, out.Reply, "It's wonderful to meet you, I'm Sam!")
}

func TestRoutingIntroduction(t *testing.T) {
	tests := []struct {
		message   string
		wantRoute string
		wantName  string
	}{
		{"I'm Sam", core.RouteIntroduction, "Sam"},
		{"jo here", core.RouteIntroduction, "Jo"},
		{"Riley", core.RouteIntroduction, "Riley"},
		{"thanks", core.RouteResponse, ""},
		{"hello", core.RouteResponse, ""},
		{"what is 2+2", core.RouteResponse, ""},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			f := newFixture(t)
			f.state.NeedsIntroduction = true

			out := f.run(t, tt.message)
			assert.Equal(t, tt.wantRoute, out.Route)
			assert.Equal(t, tt.wantName, f.profile.Name)
			if tt.wantName != "" {
				assert.False(t, f.state.NeedsIntroduction)
				assert.Equal(t, response.Introduction(tt.wantName), out.Reply)
			}
		})
	}
}

func TestRoutingCapturesNameWithoutGreeting(t *testing.T) {
	f := newFixture(t)

	out := f.run(t, "I'm Sam")
	assert.Equal(t, core.RouteIntroduction, out.Route)
	assert.Equal(t, "Sam", f.profile.Name)
	assert.False(t, f.state.OnboardingStarted)
}

func TestRoutingSkipsCaptureOnceNamed(t *testing.T) {
	f := newFixture(t)
	f.profile.Name = "Sam"

	out := f.run(t, "Riley")
	assert.Equal(t, core.RouteResponse, out.Route)
	assert.Equal(t, "Sam", f.profile.Name)
}

func TestResponseUpdatesConversationAndMemory(t *testing.T) {
	f := newFixture(t)
	f.profile.Name = "Sam"

	out := f.run(t, "I love cooking food, it is great")
	assert.Equal(t, core.RouteResponse, out.Route)
	require.NotNil(t, out.Response)
	assert.True(t, out.Response.IsSignificant)
	assert.Equal(t, "sharing", out.Metadata["response_branch"])
	assert.Equal(t, pkg.TopicFood, f.state.CurrentTopic)
	assert.Equal(t, []pkg.Topic{pkg.TopicFood}, f.state.RecentTopics)
	assert.Equal(t, pkg.EmotionPositive, f.state.LastUserEmotion)
	assert.Equal(t, pkg.EmotionPositive, f.profile.LastMood)
	require.Equal(t, 1, f.memory.Len())
	assert.Equal(t, pkg.TopicFood, f.memory.Entries()[0].Topic)

	out = f.run(t, "the bus was late")
	assert.False(t, out.Response.IsSignificant)
	assert.Equal(t, 1, f.memory.Len())
	assert.Equal(t, pkg.EmotionNone, f.state.LastUserEmotion)
	assert.Equal(t, pkg.EmotionPositive, f.profile.LastMood)
}

func TestRecentTopicsStayBounded(t *testing.T) {
	f := newFixture(t)
	f.profile.Name = "Sam"

	for _, message := range []string{"my computer", "the weather", "my job", "some food", "a movie", "the weather again"} {
		f.run(t, message)
	}

	assert.Len(t, f.state.RecentTopics, pkg.MaxRecentTopics)
	assert.Equal(t, pkg.TopicWeather, f.state.RecentTopics[0])
}

func TestNodesRejectMissingInput(t *testing.T) {
	ctx := context.Background()

	_, err := NewNLUNode(nlu.NewAnalyzer()).Execute(ctx, &core.Turn{Message: "  "})
	assert.Error(t, err)

	_, err = NewIntroductionNode().Execute(ctx, &core.Turn{Metadata: map[string]any{}})
	assert.Error(t, err)

	_, err = NewResponseNode(nil).Execute(ctx, &core.Turn{})
	assert.Error(t, err)
}
