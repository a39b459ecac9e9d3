package ai

func unknownCommand() *Command {
	return &Command{Intent: IntentUnknown, Entities: map[string]any{}, Confidence: 0.5}
}

func genericReply() *ChatReply {
	return &ChatReply{
		Text: "I'm here to help you stay organized. You can ask me about your tasks, schedule meetings, or get help with prioritizing your work.",
		SuggestedActions: []Action{
			{Type: "show_tasks", Parameters: map[string]any{"timeframe": "today"}, DisplayText: "Show today's tasks"},
			{Type: "help", DisplayText: "What can you do?"},
		},
	}
}
