package ai

import (
	"context"
	"strings"
)

// Fixed answers from keyword matched canned responses.
type Fixed struct{}

// NewFixed returns the canned-response assistant.
func NewFixed() *Fixed { return &Fixed{} }

// pick returns the value paired with the first keyword found in text.
// pairs alternate keyword, value.
func pick(text string, fallback string, pairs ...string) string {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.Contains(text, pairs[i]) {
			return pairs[i+1]
		}
	}
	return fallback
}

// ParseIntent classifies text by keyword.
func (f *Fixed) ParseIntent(_ context.Context, text string) (*Command, error) {
	lower := strings.ToLower(text)
	has := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}
	clock := pick(lower, "09:00", "3pm", "15:00", "2pm", "14:00")
	day := "today"
	if has("tomorrow") {
		day = "tomorrow"
	}
	reference := "task"
	if has("meeting") {
		reference = "meeting"
	}

	switch {
	case has("reschedule", "move"):
		return &Command{
			Intent: IntentUpdateTask,
			Entities: map[string]any{
				"task_reference": reference,
				"date":           pick(lower, "friday", "tomorrow", "tomorrow", "wednesday", "wednesday"),
				"time":           clock,
			},
			Confidence: 0.89,
		}, nil
	case has("complete", "done", "finish"):
		return &Command{
			Intent:     IntentCompleteTask,
			Entities:   map[string]any{"task_reference": reference},
			Confidence: 0.95,
		}, nil
	case has("delete", "remove", "cancel"):
		return &Command{
			Intent:     IntentDeleteTask,
			Entities:   map[string]any{"task_reference": reference},
			Confidence: 0.9,
		}, nil
	case has("meeting"):
		project := "General"
		if has("design") {
			project = "Design"
		}
		return &Command{
			Intent: IntentCreateTask,
			Entities: map[string]any{
				"task":     "meeting",
				"date":     day,
				"time":     clock,
				"priority": "medium",
				"project":  project,
			},
			Confidence: 0.92,
		}, nil
	case has("show", "list", "what"):
		timeframe := "today"
		if has("week") {
			timeframe = "week"
		} else if has("tomorrow") {
			timeframe = "tomorrow"
		}
		return &Command{
			Intent:     IntentQueryTasks,
			Entities:   map[string]any{"timeframe": timeframe},
			Confidence: 0.9,
		}, nil
	}
	return unknownCommand(), nil
}

// Chat returns a canned reply chosen by keyword.
func (f *Fixed) Chat(_ context.Context, message string, _ []ChatMessage) (*ChatReply, error) {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "help"):
		return &ChatReply{
			Text: "I can help you manage your tasks. You can ask me to create, update, or complete tasks, or to show you your schedule for today or this week.",
			SuggestedActions: []Action{
				{Type: "show_tasks", Parameters: map[string]any{"timeframe": "today"}, DisplayText: "Show today's tasks"},
				{Type: "create_task", DisplayText: "Create a new task"},
			},
		}, nil
	case strings.Contains(lower, "meeting"), strings.Contains(lower, "schedule"):
		return &ChatReply{
			Text: "Would you like me to schedule a new meeting for you? I can add it to your task list.",
			SuggestedActions: []Action{
				{Type: "create_task", Parameters: map[string]any{"task": "meeting", "date": "tomorrow", "time": "14:00"}, DisplayText: "Schedule for tomorrow at 2pm"},
				{Type: "modify", DisplayText: "Choose a different time"},
			},
		}, nil
	case strings.Contains(lower, "busy"), strings.Contains(lower, "today"):
		return &ChatReply{
			Text: "Let me check today's schedule. Would you like me to read it out?",
			SuggestedActions: []Action{
				{Type: "read_schedule", Parameters: map[string]any{"timeframe": "today"}, DisplayText: "Yes, read my schedule"},
				{Type: "show_tasks", Parameters: map[string]any{"timeframe": "today"}, DisplayText: "Show me visually"},
			},
		}, nil
	}
	return genericReply(), nil
}
