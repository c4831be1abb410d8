package llm

import (
	"context"
	"errors"
)

// ErrEmptyAnswer is returned when a provider replies without any text.
var ErrEmptyAnswer = errors.New("llm returned no text")

// ChatModel is a minimal abstraction for chat-based LLMs used by the domain.
// It hides concrete providers to preserve dependency direction.
type ChatModel interface {
	Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	ModelName() string
}
