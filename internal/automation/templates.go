package automation

// Template describes a workflow the n8n instance is expected to host.
type Template struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Triggers    []string `json:"triggers"`
	Actions     []string `json:"actions"`
}

// Templates lists the built-in workflow templates.
func Templates() []Template {
	return []Template{
		{
			ID:          WorkflowDailySummary,
			Name:        "Daily Task Summary",
			Description: "Sends a daily summary of tasks at a specified time",
			Triggers:    []string{"Schedule (every morning at 8 AM)"},
			Actions:     []string{"Get tasks for today", "Generate summary", "Send notification"},
		},
		{
			ID:          WorkflowTaskReminder,
			Name:        "Task Reminder",
			Description: "Sends reminders before task deadlines",
			Triggers:    []string{"Schedule (hourly check)", "Task approaching deadline"},
			Actions:     []string{"Check upcoming tasks", "Send reminder notification"},
		},
		{
			ID:          WorkflowTaskCreation,
			Name:        "Task Creation",
			Description: "Creates a new task from voice command",
			Triggers:    []string{"Voice command processed"},
			Actions:     []string{"Extract task details", "Create task in database", "Send confirmation"},
		},
		{
			ID:          WorkflowTaskCompletion,
			Name:        "Task Completion",
			Description: "Marks a task as complete and updates statistics",
			Triggers:    []string{"Task marked as complete"},
			Actions:     []string{"Update task status", "Update user statistics", "Send congratulation"},
		},
	}
}
