package agent

import (
	"fmt"

	"github.com/ncobase/voxtask/internal/task"
)

// ConflictTimeOverlap marks two tasks booked for the same slot.
const ConflictTimeOverlap = "time_overlap"

// Conflict is a pair of tasks that cannot both happen as scheduled.
type Conflict struct {
	TaskID1      string `json:"taskId1"`
	TaskID2      string `json:"taskId2"`
	TaskTitle1   string `json:"taskTitle1"`
	TaskTitle2   string `json:"taskTitle2"`
	ConflictType string `json:"conflictType"`
	Description  string `json:"description"`
}

// FindConflicts pairs open tasks that share a due date and time.
func FindConflicts(tasks []*task.Task) []Conflict {
	conflicts := []Conflict{}
	for i := 0; i < len(tasks); i++ {
		a := tasks[i]
		if !a.IsOpen() || a.DueDate == "" || a.Time == "" {
			continue
		}
		for _, b := range tasks[i+1:] {
			if !b.IsOpen() || b.DueDate != a.DueDate || b.Time != a.Time {
				continue
			}
			conflicts = append(conflicts, Conflict{
				TaskID1:      a.ID,
				TaskID2:      b.ID,
				TaskTitle1:   a.Title,
				TaskTitle2:   b.Title,
				ConflictType: ConflictTimeOverlap,
				Description: fmt.Sprintf("Tasks %q and %q are scheduled at the same time (%s at %s)",
					a.Title, b.Title, a.DueDate, a.Time),
			})
		}
	}
	return conflicts
}
