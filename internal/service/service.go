// Package service holds the business logic between HTTP handlers and the
// task store, AI, voice and automation backends.
package service

import (
	"time"

	"github.com/google/wire"
	"github.com/ncobase/voxtask/concurrency/worker"
	"github.com/ncobase/voxtask/config"
	"github.com/ncobase/voxtask/internal/ai"
	"github.com/ncobase/voxtask/internal/automation"
	"github.com/ncobase/voxtask/internal/data"
	"github.com/ncobase/voxtask/internal/voice"
	"github.com/ncobase/voxtask/logging/logger"
)

// ProviderSet is the wire provider set for the service package.
var ProviderSet = wire.NewSet(wire.Struct(new(Deps), "*"), NewService)

// Deps are the backends services are built on.
type Deps struct {
	Store       data.Store
	Assistant   ai.Assistant
	Transcriber voice.Transcriber
	Speaker     voice.Speaker
	Trigger     automation.Trigger
	Pool        *worker.Pool
	Voice       *config.Voice
	Logger      *logger.Logger
}

// Service aggregates all business logic services.
type Service struct {
	Task    *TaskService
	Voice   *VoiceService
	AI      *AIService
	Command *CommandService
	Webhook *WebhookService
	Agent   *AgentService
}

// NewService creates a new service instance with all sub-services initialized.
func NewService(d *Deps) *Service {
	clock := time.Now
	tasks := NewTaskService(d.Store, d.Logger)
	voiceSvc := NewVoiceService(d.Transcriber, d.Speaker, d.Voice, d.Logger)
	return &Service{
		Task:    tasks,
		Voice:   voiceSvc,
		AI:      NewAIService(d.Assistant, d.Logger),
		Command: NewCommandService(tasks, voiceSvc, d.Assistant, d.Trigger, d.Pool, d.Logger, clock),
		Webhook: NewWebhookService(d.Store, d.Trigger, d.Logger, clock),
		Agent:   NewAgentService(d.Store, voiceSvc, d.Logger, clock),
	}
}
