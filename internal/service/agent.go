package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ncobase/voxtask/internal/agent"
	"github.com/ncobase/voxtask/internal/data"
	"github.com/ncobase/voxtask/internal/task"
	"github.com/ncobase/voxtask/logging/logger"
	"github.com/ncobase/voxtask/validation/validator"
)

// AgentService produces summaries and proactive suggestions.
type AgentService struct {
	store  data.Store
	voice  *VoiceService
	logger *logger.Logger
	now    func() time.Time
}

// NewAgentService creates a new agent service.
func NewAgentService(store data.Store, v *VoiceService, logger *logger.Logger, now func() time.Time) *AgentService {
	return &AgentService{store: store, voice: v, logger: logger, now: now}
}

// Summary is a daily summary plus optional spoken audio.
type Summary struct {
	*task.DailySummary
	AudioURL string `json:"audioUrl,omitempty"`
}

// DailySummary summarises tasks due on date (today when empty). When
// persist is set the summary is stored.
func (s *AgentService) DailySummary(ctx context.Context, date string, persist bool) (*Summary, error) {
	now := s.now()
	today := now.Format(time.DateOnly)
	date = strings.TrimSpace(date)
	if date == "" {
		date = today
	}
	if !validator.IsISODate(date) {
		return nil, invalidDate()
	}

	tasks, err := s.store.GetTasksForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to generate daily summary: %w", err)
	}
	sum := agent.Summarize(date, tasks, date == today, now)
	out := &Summary{DailySummary: sum, AudioURL: s.voice.Feedback(ctx, sum.SummaryText)}
	sum.Delivered = out.AudioURL != ""

	if persist {
		saved, err := s.store.CreateDailySummary(ctx, sum)
		if err != nil {
			return nil, fmt.Errorf("failed to save daily summary: %w", err)
		}
		out.DailySummary = saved
	}
	s.logger.Info(ctx, "Daily summary generated", "date", date, "tasks", sum.TaskCount, "persisted", persist)
	return out, nil
}

// Conflicts finds open tasks booked for the same slot.
func (s *AgentService) Conflicts(ctx context.Context) ([]agent.Conflict, error) {
	tasks, err := s.store.GetTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to detect conflicts: %w", err)
	}
	return agent.FindConflicts(tasks), nil
}

// Reprioritize suggests priority changes for upcoming and overdue tasks.
func (s *AgentService) Reprioritize(ctx context.Context) ([]agent.Suggestion, error) {
	tasks, err := s.store.GetTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate reprioritization suggestions: %w", err)
	}
	return agent.SuggestPriorities(tasks, s.now()), nil
}

// Productivity analyses completion patterns.
func (s *AgentService) Productivity(ctx context.Context) (*agent.Productivity, error) {
	tasks, err := s.store.GetTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze productivity: %w", err)
	}
	return agent.Analyze(tasks, s.now().Location()), nil
}
