// Package automation triggers n8n workflows and describes the built-in
// workflow templates.
package automation

import (
	"context"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Well known workflow ids.
const (
	WorkflowDailySummary         = "daily-summary"
	WorkflowVoiceCommand         = "voice-command"
	WorkflowTaskReminder         = "task-reminder"
	WorkflowProductivityAnalysis = "productivity-analysis"
	WorkflowTaskCreation         = "task-creation"
	WorkflowTaskCompletion       = "task-completion"
)

// Result is the JSON document returned by a workflow webhook or the
// executions API. Its shape is owned by the workflow.
type Result map[string]any

// Trigger starts workflows and reports on their executions.
type Trigger interface {
	Trigger(ctx context.Context, workflowID string, data map[string]any) (Result, error)
	Status(ctx context.Context, executionID string) (Result, error)
}

// VoiceCommand is the payload of the voice-command workflow.
type VoiceCommand struct {
	Intent     string         `json:"intent"`
	Entities   map[string]any `json:"entities"`
	Transcript string         `json:"transcript"`
}

// TriggerDailySummary asks n8n to build today's summary.
func TriggerDailySummary(ctx context.Context, t Trigger, now time.Time) (Result, error) {
	return t.Trigger(ctx, WorkflowDailySummary, map[string]any{
		"date":   now.Format(time.DateOnly),
		"manual": true,
	})
}

// TriggerVoiceCommand forwards a processed command.
func TriggerVoiceCommand(ctx context.Context, t Trigger, cmd VoiceCommand) (Result, error) {
	return t.Trigger(ctx, WorkflowVoiceCommand, map[string]any{
		"intent":     cmd.Intent,
		"entities":   cmd.Entities,
		"transcript": cmd.Transcript,
	})
}

// TriggerTaskReminder runs the reminder check now.
func TriggerTaskReminder(ctx context.Context, t Trigger) (Result, error) {
	return t.Trigger(ctx, WorkflowTaskReminder, map[string]any{"manual": true})
}

// TriggerProductivityAnalysis runs the productivity workflow now.
func TriggerProductivityAnalysis(ctx context.Context, t Trigger) (Result, error) {
	return t.Trigger(ctx, WorkflowProductivityAnalysis, map[string]any{"manual": true})
}

// Noop stands in for n8n when no base URL is configured.
type Noop struct {
	now func() time.Time
}

// NewNoop returns a trigger that only fabricates execution records.
func NewNoop() *Noop { return &Noop{now: time.Now} }

// Trigger returns a synthetic successful execution.
func (n *Noop) Trigger(_ context.Context, workflowID string, _ map[string]any) (Result, error) {
	return Result{
		"success":     true,
		"workflowId":  workflowID,
		"executionId": "exec-" + gonanoid.Must(10),
		"triggeredAt": n.now().UTC().Format(time.RFC3339),
	}, nil
}

// Status reports every execution as finished.
func (n *Noop) Status(_ context.Context, executionID string) (Result, error) {
	return Result{
		"id":       executionID,
		"finished": true,
		"status":   "success",
	}, nil
}
