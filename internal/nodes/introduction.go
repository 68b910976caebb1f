package nodes

import (
	"context"
	"errors"

	"everywhere_bot/internal/core"
	"everywhere_bot/internal/response"
)

// IntroductionNode stores a name the user shared outside onboarding
type IntroductionNode struct{}

// NewIntroductionNode creates a new introduction node
func NewIntroductionNode() *IntroductionNode {
	return &IntroductionNode{}
}

// Execute records the name and acknowledges it
func (i *IntroductionNode) Execute(ctx context.Context, turn *core.Turn) (core.NodeOutput, error) {
	name, _ := turn.Metadata[KeyName].(string)
	if name == "" {
		return core.NodeOutput{}, errors.New("no captured name on turn")
	}

	turn.Profile.Name = name
	turn.Conversation.NeedsIntroduction = false

	return core.NodeOutput{
		Data: map[string]any{
			core.KeyReply: response.Introduction(name),
		},
		Complete: true,
	}, nil
}

// GetName returns the node name
func (i *IntroductionNode) GetName() string {
	return core.NodeIntroduction
}

// GetType returns the node type
func (i *IntroductionNode) GetType() core.NodeType {
	return core.NodeTypeIntroduction
}
