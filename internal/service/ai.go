package service

import (
	"context"
	"strings"

	"github.com/ncobase/voxtask/internal/ai"
	"github.com/ncobase/voxtask/internal/task"
	"github.com/ncobase/voxtask/logging/logger"
)

// AIService exposes intent parsing and chat.
type AIService struct {
	assistant ai.Assistant
	logger    *logger.Logger
}

// NewAIService creates a new AI service.
func NewAIService(assistant ai.Assistant, logger *logger.Logger) *AIService {
	return &AIService{assistant: assistant, logger: logger}
}

// ChatRequest is the body of POST /api/ai/chat.
type ChatRequest struct {
	Message             string           `json:"message"`
	ConversationHistory []ai.ChatMessage `json:"conversationHistory" binding:"omitempty,dive"`
}

// Process parses text into a command.
func (s *AIService) Process(ctx context.Context, text string) (*ai.Command, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &task.ValidationError{Field: "text", Message: "Command text is required"}
	}
	cmd, err := s.assistant.ParseIntent(ctx, text)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "Command parsed", "intent", cmd.Intent, "confidence", cmd.Confidence)
	return cmd, nil
}

// Chat answers a message in the context of the conversation so far.
func (s *AIService) Chat(ctx context.Context, req *ChatRequest) (*ai.ChatReply, error) {
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return nil, &task.ValidationError{Field: "message", Message: "Message is required"}
	}
	return s.assistant.Chat(ctx, msg, req.ConversationHistory)
}
