package storage

import (
	"context"
	"errors"

	"everywhere_bot/internal/logger"

	"github.com/cloudwego/eino/schema"
)

// ConversationHistory holds transcript messages
type ConversationHistory struct {
	Messages []*schema.Message `json:"messages"`
}

// TranscriptRepository keeps the last maxMessages user/assistant messages
type TranscriptRepository struct {
	store       Store
	key         string
	maxMessages int
}

// NewTranscriptRepository creates a transcript repository
func NewTranscriptRepository(store Store, keys Keyspace, maxMessages int) *TranscriptRepository {
	return &TranscriptRepository{store: store, key: keys.Key(EntityTranscript), maxMessages: maxMessages}
}

// Load returns the stored history; absent or malformed records yield an empty history
func (r *TranscriptRepository) Load(ctx context.Context) (*ConversationHistory, error) {
	var history ConversationHistory
	found, err := loadRecord(ctx, r.store, r.key, &history)
	if err != nil {
		if errors.Is(err, ErrMalformed) {
			logger.Warn().Err(err).Msg("Discarding malformed transcript")
			return &ConversationHistory{Messages: []*schema.Message{}}, nil
		}
		return nil, err
	}
	if !found || history.Messages == nil {
		return &ConversationHistory{Messages: []*schema.Message{}}, nil
	}
	return &history, nil
}

// AddMessages appends messages and trims the history to the configured size
func (r *TranscriptRepository) AddMessages(ctx context.Context, messages ...*schema.Message) error {
	history, err := r.Load(ctx)
	if err != nil {
		return err
	}

	history.Messages = trimTail(append(history.Messages, messages...), r.maxMessages)
	return saveRecord(ctx, r.store, r.key, history)
}

// AddUserMessage records text as a user message
func (r *TranscriptRepository) AddUserMessage(ctx context.Context, text string) error {
	return r.AddMessages(ctx, schema.UserMessage(text))
}

// AddAssistantMessages records each text as an assistant message
func (r *TranscriptRepository) AddAssistantMessages(ctx context.Context, texts ...string) error {
	messages := make([]*schema.Message, 0, len(texts))
	for _, text := range texts {
		messages = append(messages, schema.AssistantMessage(text, nil))
	}
	return r.AddMessages(ctx, messages...)
}

func trimTail(messages []*schema.Message, maxMessages int) []*schema.Message {
	if maxMessages <= 0 || len(messages) <= maxMessages {
		return messages
	}
	return messages[len(messages)-maxMessages:]
}
