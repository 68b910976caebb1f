package nodes

import (
	"context"
	"errors"
	"fmt"

	"everywhere_bot/internal/core"
	"everywhere_bot/internal/response"
	"everywhere_bot/pkg"
)

// ResponseNode runs the reply policy and records significant turns
type ResponseNode struct {
	generator *response.Generator
}

// NewResponseNode creates a new response generation node
func NewResponseNode(generator *response.Generator) *ResponseNode {
	return &ResponseNode{generator: generator}
}

// Execute updates the conversation state, generates the reply and writes memory when significant
func (r *ResponseNode) Execute(ctx context.Context, turn *core.Turn) (core.NodeOutput, error) {
	if turn.Analysis == nil {
		return core.NodeOutput{}, errors.New("no NLU result available")
	}
	analysis := *turn.Analysis

	updateConversation(turn, analysis)

	resp, branch := r.generator.Generate(response.Turn{
		Context: analysis,
		Message: turn.Message,
		Profile: turn.Profile,
		Memory:  turn.Memory,
	})

	output := core.NodeOutput{
		Data: map[string]any{
			core.KeyReply:    resp.Message,
			core.KeyResponse: &resp,
			"branch":         string(branch),
			"significant":    resp.IsSignificant,
		},
		Complete: true,
	}

	if resp.IsSignificant && turn.Memory != nil {
		if _, err := turn.Memory.Add(ctx, resp.Topic, turn.Message, analysis.Emotion); err != nil {
			output.Error = fmt.Errorf("failed to save memory: %w", err)
		}
	}

	return output, nil
}

// GetName returns the node name
func (r *ResponseNode) GetName() string {
	return core.NodeResponse
}

// GetType returns the node type
func (r *ResponseNode) GetType() core.NodeType {
	return core.NodeTypeResponse
}

func updateConversation(turn *core.Turn, analysis pkg.AnalyzedContext) {
	turn.Conversation.LastUserEmotion = analysis.Emotion
	if analysis.Topic != pkg.TopicNone {
		turn.Conversation.PushTopic(analysis.Topic)
	}
	if analysis.Emotion != pkg.EmotionNone {
		turn.Profile.LastMood = analysis.Emotion
	}
}
