package nodes

import (
	"context"
	"errors"
	"strings"

	"everywhere_bot/internal/core"
	"everywhere_bot/internal/nlu"
)

// NLUNode classifies the user message
type NLUNode struct {
	analyzer *nlu.Analyzer
}

// NewNLUNode creates a new NLU processing node
func NewNLUNode(analyzer *nlu.Analyzer) *NLUNode {
	return &NLUNode{analyzer: analyzer}
}

// Execute runs the rule tables over the message
func (n *NLUNode) Execute(ctx context.Context, turn *core.Turn) (core.NodeOutput, error) {
	if strings.TrimSpace(turn.Message) == "" {
		return core.NodeOutput{}, errors.New("user message cannot be empty")
	}

	analysis := n.analyzer.Analyze(turn.Message, turn.Conversation)

	return core.NodeOutput{
		Data: map[string]any{
			core.KeyAnalysis: &analysis,
		},
	}, nil
}

// GetName returns the node name
func (n *NLUNode) GetName() string {
	return core.NodeNLU
}

// GetType returns the node type
func (n *NLUNode) GetType() core.NodeType {
	return core.NodeTypeNLU
}
