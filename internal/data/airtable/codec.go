package airtable

import (
	"strings"
	"time"

	"github.com/ncobase/voxtask/internal/task"
)

// Task table columns
const (
	fieldTitle       = "Title"
	fieldDescription = "Description"
	fieldDueDate     = "Due Date"
	fieldTime        = "Time"
	fieldPriority    = "Priority"
	fieldStatus      = "Status"
	fieldProject     = "Project"
	fieldCreatedAt   = "Created At"
	fieldUpdatedAt   = "Updated At"
	fieldCompletedAt = "Completed At"
)

// encodeTask maps a normalized task to record fields. Empty optional
// values are omitted so Airtable keeps the cell blank.
func encodeTask(t *task.Task) map[string]any {
	fields := map[string]any{
		fieldTitle:    t.Title,
		fieldPriority: t.Priority.Label(),
		fieldStatus:   t.Status.Label(),
	}
	putString(fields, fieldDescription, t.Description)
	putString(fields, fieldDueDate, t.DueDate)
	putString(fields, fieldTime, t.Time)
	putString(fields, fieldProject, t.Project)
	putTime(fields, fieldCreatedAt, t.CreatedAt)
	putTime(fields, fieldUpdatedAt, t.UpdatedAt)
	putTime(fields, fieldCompletedAt, t.CompletedAt)
	return fields
}

// encodePatch maps only the fields present in p.
func encodePatch(p *task.Patch, now time.Time) map[string]any {
	fields := map[string]any{}
	if p.Title != nil {
		fields[fieldTitle] = *p.Title
	}
	if p.Description != nil {
		fields[fieldDescription] = *p.Description
	}
	if p.DueDate != nil {
		fields[fieldDueDate] = nullable(*p.DueDate)
	}
	if p.Time != nil {
		fields[fieldTime] = *p.Time
	}
	if p.Priority != nil {
		fields[fieldPriority] = p.Priority.Label()
	}
	if p.Status != nil {
		fields[fieldStatus] = p.Status.Label()
	}
	if p.Project != nil {
		fields[fieldProject] = *p.Project
	}
	fields[fieldUpdatedAt] = now.UTC().Format(time.RFC3339)
	if p.Completes() {
		fields[fieldCompletedAt] = now.UTC().Format(time.RFC3339)
	}
	return fields
}

// decodeTask maps a record back to the normalized shape.
func decodeTask(r record) *task.Task {
	t := &task.Task{
		ID:          r.ID,
		Title:       str(r.Fields[fieldTitle]),
		Description: str(r.Fields[fieldDescription]),
		DueDate:     dateOnly(str(r.Fields[fieldDueDate])),
		Time:        str(r.Fields[fieldTime]),
		Project:     str(r.Fields[fieldProject]),
		CreatedAt:   parseTime(str(r.Fields[fieldCreatedAt])),
		UpdatedAt:   parseTime(str(r.Fields[fieldUpdatedAt])),
		CompletedAt: parseTime(str(r.Fields[fieldCompletedAt])),
	}
	if p, ok := task.ParsePriority(str(r.Fields[fieldPriority])); ok {
		t.Priority = p
	}
	if s, ok := task.ParseStatus(str(r.Fields[fieldStatus])); ok {
		t.Status = s
	}
	if t.CreatedAt == nil {
		t.CreatedAt = parseTime(r.CreatedTime)
	}
	t.Normalize()
	return t
}

func encodeActivity(a *task.UserActivity) map[string]any {
	fields := map[string]any{
		"Action":    a.Action,
		"Command":   a.Command,
		"Timestamp": a.Timestamp.UTC().Format(time.RFC3339),
		"Success":   a.Success,
	}
	putString(fields, "Details", a.Details)
	if a.RelatedTask != "" {
		fields["Related Task"] = []string{a.RelatedTask}
	}
	return fields
}

func encodeSummary(s *task.DailySummary) map[string]any {
	return map[string]any{
		"Date":                s.Date,
		"Summary Text":        s.SummaryText,
		"Task Count":          s.TaskCount,
		"High Priority Count": s.HighPriorityCount,
		"Completed Count":     s.CompletedCount,
		"Generated At":        s.GeneratedAt.UTC().Format(time.RFC3339),
		"Delivered":           s.Delivered,
	}
}

func decodeProject(r record) *task.Project {
	return &task.Project{
		ID:          r.ID,
		Name:        str(r.Fields["Name"]),
		Description: str(r.Fields["Description"]),
		Status:      str(r.Fields["Status"]),
	}
}

func putString(fields map[string]any, key, v string) {
	if v != "" {
		fields[key] = v
	}
}

func putTime(fields map[string]any, key string, v *time.Time) {
	if v != nil {
		fields[key] = v.UTC().Format(time.RFC3339)
	}
}

// nullable clears a cell when v is empty.
func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}

// str reads a cell as text. Linked records and multi selects arrive as
// arrays; the first element is used.
func str(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []any:
		if len(x) > 0 {
			return str(x[0])
		}
	case map[string]any:
		// single collaborator or select objects
		if name, ok := x["name"].(string); ok {
			return name
		}
	}
	return ""
}

// dateOnly trims a datetime cell to YYYY-MM-DD.
func dateOnly(s string) string {
	if len(s) > 10 && strings.IndexByte(s, 'T') == 10 {
		return s[:10]
	}
	return s
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	return &t
}
