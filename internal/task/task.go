// Package task defines the normalized task model shared by every store
// adapter, together with its enums, partial patches and validation.
package task

import (
	"errors"
	"strings"
	"time"

	"github.com/ncobase/voxtask/ecode"
)

// ErrNotFound is returned by stores when a record does not exist.
var ErrNotFound = errors.New("task not found")

// Priority of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var priorityLabels = map[Priority]string{
	PriorityHigh:   "High",
	PriorityMedium: "Medium",
	PriorityLow:    "Low",
}

// Label returns the display label stored in Airtable and Notion selects.
func (p Priority) Label() string {
	return priorityLabels[p]
}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	_, ok := priorityLabels[p]
	return ok
}

// ParsePriority accepts a normalized value or a display label, case-insensitively.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	return p, p.Valid()
}

// Status of a task. Transitions are unconstrained.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

var statusLabels = map[Status]string{
	StatusNotStarted: "Not Started",
	StatusInProgress: "In Progress",
	StatusCompleted:  "Completed",
}

// Label returns the display label stored in Airtable and Notion selects.
func (s Status) Label() string {
	return statusLabels[s]
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// ParseStatus accepts "in_progress", "In Progress" or "in progress".
func ParseStatus(s string) (Status, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	st := Status(norm)
	return st, st.Valid()
}

// Task is the normalized task shape.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     string     `json:"dueDate,omitempty"`
	Time        string     `json:"time,omitempty"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	Project     string     `json:"project,omitempty"`
	Archived    bool       `json:"archived,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Normalize trims text fields and applies the priority and status defaults.
func (t *Task) Normalize() {
	t.Title = strings.TrimSpace(t.Title)
	t.Description = strings.TrimSpace(t.Description)
	t.DueDate = strings.TrimSpace(t.DueDate)
	t.Time = strings.TrimSpace(t.Time)
	t.Project = strings.TrimSpace(t.Project)
	if t.Priority == "" {
		t.Priority = PriorityMedium
	} else if p, ok := ParsePriority(string(t.Priority)); ok {
		t.Priority = p
	}
	if t.Status == "" {
		t.Status = StatusNotStarted
	} else if s, ok := ParseStatus(string(t.Status)); ok {
		t.Status = s
	}
}

// Validate checks a task about to be created.
func (t *Task) Validate() error {
	if t.Title == "" {
		return &ValidationError{Field: "title", Message: ecode.FieldIsRequired("Task title")}
	}
	return validateFields(&t.DueDate, &t.Time, &t.Priority, &t.Status)
}

// IsOpen reports whether the task still needs doing.
func (t *Task) IsOpen() bool {
	return t.Status != StatusCompleted && !t.Archived
}

// Due returns the due date and time combined in loc. ok is false when
// the task has no due date.
func (t *Task) Due(loc *time.Location) (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	layout, value := time.DateOnly, t.DueDate
	if t.Time != "" {
		layout, value = time.DateOnly+" 15:04", t.DueDate+" "+t.Time
	}
	due, err := time.ParseInLocation(layout, value, loc)
	if err != nil {
		return time.Time{}, false
	}
	return due, true
}

// Removed is the outcome of deleting a task. Archived is true when the
// store keeps the record (soft delete) and false for a hard delete.
type Removed struct {
	ID       string `json:"id"`
	Removed  bool   `json:"removed"`
	Archived bool   `json:"archived"`
}

// Project is a record from the store's Projects table.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

// UserActivity is an entry in the store's activity log.
type UserActivity struct {
	ID          string    `json:"id,omitempty"`
	Action      string    `json:"action"`
	Command     string    `json:"command"`
	Timestamp   time.Time `json:"timestamp"`
	RelatedTask string    `json:"relatedTask,omitempty"`
	Success     bool      `json:"success"`
	Details     string    `json:"details,omitempty"`
}

// DailySummary is a generated digest of one day's tasks.
type DailySummary struct {
	ID                string    `json:"id,omitempty"`
	Date              string    `json:"date"`
	SummaryText       string    `json:"summaryText"`
	TaskCount         int       `json:"taskCount"`
	HighPriorityCount int       `json:"highPriorityCount"`
	CompletedCount    int       `json:"completedCount"`
	GeneratedAt       time.Time `json:"generatedAt"`
	Delivered         bool      `json:"delivered"`
}
