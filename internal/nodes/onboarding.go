package nodes

import (
	"context"

	"everywhere_bot/internal/core"
	"everywhere_bot/internal/onboarding"
)

// OnboardingNode feeds the message to the guided profile flow
type OnboardingNode struct {
	machine *onboarding.Machine
}

// NewOnboardingNode creates a new onboarding node
func NewOnboardingNode(machine *onboarding.Machine) *OnboardingNode {
	return &OnboardingNode{machine: machine}
}

// Execute stores the answer and returns the next prompt
func (o *OnboardingNode) Execute(ctx context.Context, turn *core.Turn) (core.NodeOutput, error) {
	reply, err := o.machine.Advance(ctx, turn.Message, turn.Profile, turn.Conversation)

	return core.NodeOutput{
		Data: map[string]any{
			core.KeyReply: reply,
			"step":        turn.Conversation.CurrentOnboardingStep,
			"completed":   turn.Conversation.OnboardingComplete,
		},
		Error:    err,
		Complete: true,
	}, nil
}

// GetName returns the node name
func (o *OnboardingNode) GetName() string {
	return core.NodeOnboarding
}

// GetType returns the node type
func (o *OnboardingNode) GetType() core.NodeType {
	return core.NodeTypeOnboarding
}
