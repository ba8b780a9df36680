package usecase

import (
	"context"
	_ "embed"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/asclepius/pkg/domain/interfaces"
	"github.com/secmon-lab/asclepius/pkg/domain/model"
	"github.com/secmon-lab/asclepius/pkg/domain/types"
	"github.com/secmon-lab/asclepius/pkg/utils/logging"
)

//go:embed prompt/medical_system.md
var medicalSystemPrompt string

// MedicalSystemPrompt returns the fixed medical-safety instruction
func MedicalSystemPrompt() string {
	return strings.TrimSpace(medicalSystemPrompt)
}

// ChatInput is one relay request
type ChatInput struct {
	APIKey  string `masq:"secret"`
	Message string
	History []model.ChatMessage
}

// ChatOutput is the relayed completion
type ChatOutput struct {
	Response  string
	Timestamp time.Time
}

// ChatUseCase forwards conversations to the upstream completion service
type ChatUseCase struct {
	completer    interfaces.ChatCompleter
	systemPrompt string
	now          func() time.Time
}

// ChatOption is a functional option for ChatUseCase
type ChatOption func(*ChatUseCase)

// WithSystemPrompt prepends a system message ahead of the supplied history
func WithSystemPrompt(prompt string) ChatOption {
	return func(uc *ChatUseCase) {
		uc.systemPrompt = prompt
	}
}

// WithMedicalDisclaimer prepends the medical-safety system prompt
func WithMedicalDisclaimer() ChatOption {
	return WithSystemPrompt(MedicalSystemPrompt())
}

// WithClock replaces the clock used for response timestamps
func WithClock(now func() time.Time) ChatOption {
	return func(uc *ChatUseCase) {
		uc.now = now
	}
}

// NewChatUseCase creates a ChatUseCase
func NewChatUseCase(completer interfaces.ChatCompleter, opts ...ChatOption) *ChatUseCase {
	uc := &ChatUseCase{
		completer: completer,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Chat validates input, relays [system] + history + message upstream and returns the reply.
// Validation failures return ErrAPIKeyRequired or ErrMessageRequired; every other failure
// is an *UpstreamError.
func (uc *ChatUseCase) Chat(ctx context.Context, input ChatInput) (*ChatOutput, error) {
	if input.APIKey == "" {
		return nil, ErrAPIKeyRequired
	}
	if input.Message == "" {
		return nil, ErrMessageRequired
	}

	chatID := uuid.Must(uuid.NewV7()).String()
	logger := logging.From(ctx).With(ChatIDKey, chatID)

	if uc.completer == nil {
		return nil, &UpstreamError{Cause: goerr.New("chat relay is not configured", goerr.V(ChatIDKey, chatID))}
	}

	messages := uc.buildMessages(input)
	for _, msg := range input.History {
		if !msg.Role.IsValid() {
			logger.Warn("relaying message with unknown role", "role", msg.Role)
		}
	}
	logger.Debug("relaying chat", "input", input, "message_count", len(messages))

	text, err := uc.completer.Complete(ctx, input.APIKey, messages)
	if err != nil {
		return nil, &UpstreamError{Cause: err}
	}

	logger.Debug("chat relayed", "response_length", len(text))

	return &ChatOutput{
		Response:  text,
		Timestamp: uc.now(),
	}, nil
}

func (uc *ChatUseCase) buildMessages(input ChatInput) []model.ChatMessage {
	messages := make([]model.ChatMessage, 0, len(input.History)+2)
	if uc.systemPrompt != "" {
		messages = append(messages, model.ChatMessage{
			Role:    types.ChatRoleSystem,
			Content: uc.systemPrompt,
		})
	}
	messages = append(messages, input.History...)
	messages = append(messages, model.ChatMessage{
		Role:    types.ChatRoleUser,
		Content: input.Message,
	})
	return messages
}
