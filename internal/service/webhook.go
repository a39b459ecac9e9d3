package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/ncobase/voxtask/internal/automation"
	"github.com/ncobase/voxtask/internal/data"
	"github.com/ncobase/voxtask/internal/task"
	"github.com/ncobase/voxtask/logging/logger"
)

// Webhook events accepted from n8n.
const (
	EventDailySummary         = "daily_summary"
	EventTaskReminder         = "task_reminder"
	EventProductivityInsights = "productivity_insights"
)

// WebhookService handles n8n callbacks and outbound workflow triggers.
type WebhookService struct {
	store   data.Store
	trigger automation.Trigger
	logger  *logger.Logger
	now     func() time.Time
}

// NewWebhookService creates a new webhook service.
func NewWebhookService(store data.Store, trigger automation.Trigger, logger *logger.Logger, now func() time.Time) *WebhookService {
	return &WebhookService{store: store, trigger: trigger, logger: logger, now: now}
}

// WebhookEvent is the body of POST /api/webhooks/n8n.
type WebhookEvent struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data"`
}

// TriggerRequest is the body of POST /api/webhooks/n8n/trigger.
type TriggerRequest struct {
	WorkflowID string         `json:"workflowId"`
	Data       map[string]any `json:"data"`
}

// Handle records an inbound event. daily_summary events that carry a
// summary text also persist a DailySummary.
func (s *WebhookService) Handle(ctx context.Context, ev *WebhookEvent) error {
	event := strings.TrimSpace(ev.Event)
	if event == "" {
		return &task.ValidationError{Field: "event", Message: "Event type is required"}
	}
	switch event {
	case EventDailySummary, EventTaskReminder, EventProductivityInsights:
	default:
		s.logger.Warn(ctx, "Unknown webhook event type", "event", event)
		return &task.ValidationError{Field: "event", Message: "Unknown event type"}
	}
	s.logger.Info(ctx, "Processing webhook event", "event", event)

	details, err := json.Marshal(ev.Data)
	if err != nil {
		return err
	}
	if _, err := s.store.CreateUserActivity(ctx, &task.UserActivity{
		Action:    event + "_received",
		Command:   "system_generated",
		Timestamp: s.now().UTC(),
		Success:   true,
		Details:   string(details),
	}); err != nil {
		return err
	}

	if event == EventDailySummary {
		if sum := summaryFromEvent(ev.Data, s.now()); sum != nil {
			if _, err := s.store.CreateDailySummary(ctx, sum); err != nil {
				return err
			}
		}
	}
	return nil
}

// summaryFromEvent builds a delivered DailySummary from webhook data, or
// nil when the payload has no summary text.
func summaryFromEvent(d map[string]any, now time.Time) *task.DailySummary {
	text, _ := d["summaryText"].(string)
	if text == "" {
		text, _ = d["summary"].(string)
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}
	date, _ := d["date"].(string)
	if date == "" {
		date = now.Format(time.DateOnly)
	}
	count := func(key string) int {
		if v, ok := d[key].(float64); ok {
			return int(v)
		}
		return 0
	}
	return &task.DailySummary{
		Date:              date,
		SummaryText:       text,
		TaskCount:         count("taskCount"),
		HighPriorityCount: count("highPriorityCount"),
		CompletedCount:    count("completedCount"),
		GeneratedAt:       now.UTC(),
		Delivered:         true,
	}
}

// Trigger starts a workflow.
func (s *WebhookService) Trigger(ctx context.Context, req *TriggerRequest) (automation.Result, error) {
	id := strings.TrimSpace(req.WorkflowID)
	if id == "" {
		return nil, &task.ValidationError{Field: "workflowId", Message: "Workflow ID is required"}
	}
	s.logger.Info(ctx, "Triggering n8n workflow", "workflow", id)
	return s.trigger.Trigger(ctx, id, req.Data)
}

// Status reports on a workflow execution.
func (s *WebhookService) Status(ctx context.Context, executionID string) (automation.Result, error) {
	return s.trigger.Status(ctx, executionID)
}

// Templates lists the built-in workflow templates.
func (s *WebhookService) Templates() []automation.Template {
	return automation.Templates()
}
