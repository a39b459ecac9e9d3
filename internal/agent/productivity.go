package agent

import (
	"fmt"
	"math"
	"time"

	"github.com/ncobase/voxtask/internal/task"
)

const notEnoughData = "Not enough data"

// Productivity summarises how tasks get done.
type Productivity struct {
	MostProductiveDay  string   `json:"mostProductiveDay"`
	MostProductiveTime string   `json:"mostProductiveTime"`
	TaskCompletionRate float64  `json:"taskCompletionRate"`
	AverageTasksPerDay float64  `json:"averageTasksPerDay"`
	TotalTasks         int      `json:"totalTasks"`
	CompletedTasks     int      `json:"completedTasks"`
	Insights           []string `json:"insights"`
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func timeOfDay(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "Morning (before 12pm)"
	case h < 17:
		return "Afternoon (12pm-5pm)"
	default:
		return "Evening (after 5pm)"
	}
}

// busiest returns the key with the highest count, breaking ties by the
// order keys were first seen.
func busiest(counts map[string]int, order []string) string {
	best, n := notEnoughData, 0
	for _, k := range order {
		if counts[k] > n {
			best, n = k, counts[k]
		}
	}
	return best
}

type rate struct{ done, total int }

func (r rate) value() float64 {
	if r.total == 0 {
		return 0
	}
	return float64(r.done) / float64(r.total)
}

// Analyze computes productivity statistics in loc.
func Analyze(tasks []*task.Task, loc *time.Location) *Productivity {
	p := &Productivity{Insights: []string{}}

	days := map[string]int{}
	var dayOrder []string
	slots := map[string]int{}
	var slotOrder []string
	dueDays := map[string]struct{}{}
	var timed, untimed rate
	openHigh, withDue := 0, 0

	for _, t := range tasks {
		if t.Archived {
			continue
		}
		p.TotalTasks++
		done := t.Status == task.StatusCompleted
		if done {
			p.CompletedTasks++
		}
		if t.DueDate != "" {
			dueDays[t.DueDate] = struct{}{}
			withDue++
		}
		r := &untimed
		if t.Time != "" {
			r = &timed
		}
		r.total++
		if done {
			r.done++
		}
		if !done && t.Priority == task.PriorityHigh {
			openHigh++
		}
		if done && t.CompletedAt != nil {
			at := t.CompletedAt.In(loc)
			day := at.Weekday().String()
			if _, seen := days[day]; !seen {
				dayOrder = append(dayOrder, day)
			}
			days[day]++
			slot := timeOfDay(at)
			if _, seen := slots[slot]; !seen {
				slotOrder = append(slotOrder, slot)
			}
			slots[slot]++
		}
	}

	p.MostProductiveDay = busiest(days, dayOrder)
	p.MostProductiveTime = busiest(slots, slotOrder)
	if p.TotalTasks == 0 {
		p.Insights = append(p.Insights, "Add tasks with due dates to start tracking your productivity")
		return p
	}

	p.TaskCompletionRate = round(rate{p.CompletedTasks, p.TotalTasks}.value(), 2)
	if len(dueDays) > 0 {
		p.AverageTasksPerDay = round(float64(withDue)/float64(len(dueDays)), 1)
	}

	switch {
	case p.TaskCompletionRate >= 0.75:
		p.Insights = append(p.Insights, fmt.Sprintf("Great work: you complete %.0f%% of your tasks", p.TaskCompletionRate*100))
	case p.TaskCompletionRate < 0.5:
		p.Insights = append(p.Insights, "Less than half of your tasks are completed; consider planning fewer tasks per day")
	}
	if p.MostProductiveDay != notEnoughData {
		p.Insights = append(p.Insights, fmt.Sprintf("You complete the most tasks on %s", p.MostProductiveDay))
	}
	if timed.total > 0 && untimed.total > 0 && timed.value() > untimed.value() {
		p.Insights = append(p.Insights, "Tasks with specific times are more likely to be completed than those without")
	}
	if openHigh > 0 {
		p.Insights = append(p.Insights, fmt.Sprintf("You have %s still open", plural(openHigh, "high priority task")))
	}
	return p
}
