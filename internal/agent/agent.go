// Package agent derives proactive insights from a set of tasks: daily
// summaries, scheduling conflicts, priority suggestions and productivity
// statistics. Functions here are pure; callers fetch the tasks.
package agent

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ncobase/voxtask/internal/task"
)

// detailLimit is how many tasks a summary names individually.
const detailLimit = 3

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// byTime orders tasks by time of day; untimed tasks go last.
func byTime(tasks []*task.Task) []*task.Task {
	out := make([]*task.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Time, out[j].Time
		if a == "" || b == "" {
			return a != "" && b == ""
		}
		return a < b
	})
	return out
}

// Summarize builds the digest for date from the tasks due that day.
// today controls the wording.
func Summarize(date string, tasks []*task.Task, today bool, now time.Time) *task.DailySummary {
	sum := &task.DailySummary{
		Date:        date,
		TaskCount:   len(tasks),
		GeneratedAt: now.UTC(),
	}
	for _, t := range tasks {
		if t.Priority == task.PriorityHigh {
			sum.HighPriorityCount++
		}
		if t.Status == task.StatusCompleted {
			sum.CompletedCount++
		}
	}
	sum.SummaryText = summaryText(date, byTime(tasks), sum.HighPriorityCount, today)
	return sum
}

func summaryText(date string, tasks []*task.Task, high int, today bool) string {
	when := "for today"
	if !today {
		when = "for " + date
	}
	if len(tasks) == 0 {
		return fmt.Sprintf("You have no tasks scheduled %s. Would you like to plan your day?", when)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You have %s scheduled %s", plural(len(tasks), "task"), when)
	if high > 0 {
		fmt.Fprintf(&b, ", including %s", plural(high, "high priority task"))
	}
	b.WriteString(". Here are your upcoming tasks: ")

	n := min(len(tasks), detailLimit)
	for i, t := range tasks[:n] {
		b.WriteString(t.Title)
		if t.Time != "" {
			b.WriteString(" at " + t.Time)
		}
		if i < n-1 {
			b.WriteString(", ")
		} else {
			b.WriteString(".")
		}
	}
	if rest := len(tasks) - n; rest > 0 {
		word := "tasks"
		if rest == 1 {
			word = "task"
		}
		fmt.Fprintf(&b, " And %d more %s.", rest, word)
	}
	return b.String()
}
