package task

import (
	"strings"
	"time"

	"github.com/ncobase/voxtask/ecode"
)

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	DueDate     *string   `json:"dueDate,omitempty"`
	Time        *string   `json:"time,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Project     *string   `json:"project,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p *Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil &&
		p.Time == nil && p.Priority == nil && p.Status == nil && p.Project == nil
}

// Completes reports whether the patch sets the status to completed.
func (p *Patch) Completes() bool {
	return p.Status != nil && *p.Status == StatusCompleted
}

// Normalize trims strings and canonicalizes enum labels in place.
func (p *Patch) Normalize() {
	for _, s := range []*string{p.Title, p.Description, p.DueDate, p.Time, p.Project} {
		if s != nil {
			*s = strings.TrimSpace(*s)
		}
	}
	if p.Priority != nil {
		if v, ok := ParsePriority(string(*p.Priority)); ok {
			*p.Priority = v
		}
	}
	if p.Status != nil {
		if v, ok := ParseStatus(string(*p.Status)); ok {
			*p.Status = v
		}
	}
}

// Normalized returns a normalized copy of p, leaving p untouched.
func (p *Patch) Normalized() *Patch {
	cp := &Patch{
		Title:       clonePtr(p.Title),
		Description: clonePtr(p.Description),
		DueDate:     clonePtr(p.DueDate),
		Time:        clonePtr(p.Time),
		Priority:    clonePtr(p.Priority),
		Status:      clonePtr(p.Status),
		Project:     clonePtr(p.Project),
	}
	cp.Normalize()
	return cp
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}

// Validate rejects a blank title and malformed values.
func (p *Patch) Validate() error {
	if p.Title != nil && *p.Title == "" {
		return &ValidationError{Field: "title", Message: ecode.FieldIsRequired("Task title")}
	}
	return validateFields(p.DueDate, p.Time, p.Priority, p.Status)
}

// Apply writes the present fields onto t and stamps UpdatedAt, plus
// CompletedAt when the status becomes completed.
func (p *Patch) Apply(t *Task, now time.Time) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Time != nil {
		t.Time = *p.Time
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Project != nil {
		t.Project = *p.Project
	}
	t.UpdatedAt = &now
	if p.Completes() {
		t.CompletedAt = &now
	}
}

// CompletePatch returns a patch that marks a task completed.
func CompletePatch() *Patch {
	s := StatusCompleted
	return &Patch{Status: &s}
}
