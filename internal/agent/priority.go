package agent

import (
	"time"

	"github.com/ncobase/voxtask/internal/task"
)

// Suggestion proposes a new priority for a task.
type Suggestion struct {
	TaskID            string        `json:"taskId"`
	TaskTitle         string        `json:"taskTitle"`
	CurrentPriority   task.Priority `json:"currentPriority"`
	SuggestedPriority task.Priority `json:"suggestedPriority"`
	Reason            string        `json:"reason"`
}

// deadline returns when t is due in now's location. Date-only tasks are
// due at the end of the day.
func deadline(t *task.Task, now time.Time) (time.Time, bool) {
	due, ok := t.Due(now.Location())
	if !ok {
		return time.Time{}, false
	}
	if t.Time == "" {
		due = due.Add(24*time.Hour - time.Minute)
	}
	return due, true
}

// SuggestPriorities raises open tasks due within a day to high and
// overdue low priority tasks to medium.
func SuggestPriorities(tasks []*task.Task, now time.Time) []Suggestion {
	out := []Suggestion{}
	for _, t := range tasks {
		if !t.IsOpen() {
			continue
		}
		due, ok := deadline(t, now)
		if !ok {
			continue
		}
		switch {
		case due.Before(now):
			if t.Priority == task.PriorityLow {
				out = append(out, suggest(t, task.PriorityMedium, "Task is overdue"))
			}
		case due.Sub(now) <= 24*time.Hour:
			if t.Priority != task.PriorityHigh {
				out = append(out, suggest(t, task.PriorityHigh, "Deadline is approaching within 24 hours"))
			}
		}
	}
	return out
}

func suggest(t *task.Task, to task.Priority, reason string) Suggestion {
	return Suggestion{
		TaskID:            t.ID,
		TaskTitle:         t.Title,
		CurrentPriority:   t.Priority,
		SuggestedPriority: to,
		Reason:            reason,
	}
}
