package nodes

import (
	"context"

	"everywhere_bot/internal/core"
	"everywhere_bot/internal/nlu"
	"everywhere_bot/pkg"
)

// KeyName carries a captured name from routing to the introduction node
const KeyName = "name"

// OnboardingState reports whether the guided flow owns the next message
type OnboardingState interface {
	Active(convCtx *pkg.ConversationContext) bool
}

// RoutingNode decides which handler owns the turn:
// explicit onboarding, then opportunistic name capture, then the response policy.
type RoutingNode struct {
	onboarding OnboardingState
	names      *nlu.NameExtractor
}

// NewRoutingNode creates a new routing node
func NewRoutingNode(onboarding OnboardingState, names *nlu.NameExtractor) *RoutingNode {
	return &RoutingNode{onboarding: onboarding, names: names}
}

// Execute picks the route
func (r *RoutingNode) Execute(ctx context.Context, turn *core.Turn) (core.NodeOutput, error) {
	if r.onboarding.Active(turn.Conversation) {
		return routeTo(core.RouteOnboarding), nil
	}

	// Outside the guided flow a nameless user may introduce themselves at any time,
	// including before a session-start greeting was sent
	if !turn.Conversation.OnboardingStarted && !turn.Profile.HasName() {
		if name, ok := r.captureName(turn); ok {
			output := routeTo(core.RouteIntroduction)
			output.Data[KeyName] = name
			return output, nil
		}
	}

	return routeTo(core.RouteResponse), nil
}

// captureName skips a lone word that also classified as an intent, so "hello" or "thanks" is not taken as a name
func (r *RoutingNode) captureName(turn *core.Turn) (string, bool) {
	name, pattern := r.names.Match(turn.Message)
	if pattern == nlu.NamePatternNone {
		return "", false
	}
	if pattern == nlu.NamePatternBareWord && turn.Analysis != nil && turn.Analysis.Intent != pkg.IntentNone {
		return "", false
	}
	return name, true
}

// GetName returns the node name
func (r *RoutingNode) GetName() string {
	return core.NodeRouting
}

// GetType returns the node type
func (r *RoutingNode) GetType() core.NodeType {
	return core.NodeTypeRouting
}

func routeTo(route string) core.NodeOutput {
	return core.NodeOutput{
		Data: map[string]any{core.KeyRoute: route},
	}
}
