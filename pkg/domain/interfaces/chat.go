package interfaces

import (
	"context"

	"github.com/secmon-lab/asclepius/pkg/domain/model"
)

// ChatCompleter sends a conversation to an upstream completion service
type ChatCompleter interface {
	// Complete sends messages authenticated with apiKey and returns the text of the first choice
	Complete(ctx context.Context, apiKey string, messages []model.ChatMessage) (string, error)
}
