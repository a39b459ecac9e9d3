package notion

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/jomei/notionapi"
	"github.com/ncobase/voxtask/internal/task"
)

// Task database properties
const (
	propTitle       = "Title"
	propDescription = "Description"
	propDueDate     = "Due Date"
	propTime        = "Time"
	propPriority    = "Priority"
	propStatus      = "Status"
	propProject     = "Project"
	propCompletedAt = "Completed At"
)

func title(s string) notionapi.TitleProperty {
	return notionapi.TitleProperty{Title: richText(s)}
}

func text(s string) notionapi.RichTextProperty {
	return notionapi.RichTextProperty{RichText: richText(s)}
}

func richText(s string) []notionapi.RichText {
	if s == "" {
		return []notionapi.RichText{}
	}
	return []notionapi.RichText{{Text: &notionapi.Text{Content: s}}}
}

func selectOf(name string) notionapi.SelectProperty {
	return notionapi.SelectProperty{Select: notionapi.Option{Name: name}}
}

// dateOf builds a date property; an empty value clears the date.
func dateOf(t *time.Time) notionapi.DateProperty {
	if t == nil {
		return notionapi.DateProperty{}
	}
	d := notionapi.Date(*t)
	return notionapi.DateProperty{Date: &notionapi.DateObject{Start: &d}}
}

// dayProperty is a date property holding a calendar day. notionapi.Date
// always encodes a full timestamp, which Notion stores as a timed value.
type dayProperty struct {
	Day string // YYYY-MM-DD, empty clears the date
}

func (p dayProperty) GetID() string { return "" }

func (p dayProperty) GetType() notionapi.PropertyType { return notionapi.PropertyTypeDate }

func (p dayProperty) MarshalJSON() ([]byte, error) {
	if p.Day == "" {
		return []byte(`{"date":null}`), nil
	}
	return json.Marshal(map[string]any{"date": map[string]string{"start": p.Day}})
}

// clearSelect empties a select property.
type clearSelect struct{}

func (clearSelect) GetID() string { return "" }

func (clearSelect) GetType() notionapi.PropertyType { return notionapi.PropertyTypeSelect }

func (clearSelect) MarshalJSON() ([]byte, error) {
	return []byte(`{"select":null}`), nil
}

// dayFilter matches a date property equal to a calendar day.
type dayFilter struct {
	notionapi.PropertyFilter
	Day string
}

func (f dayFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"property": f.Property,
		"date":     map[string]string{"equals": f.Day},
	})
}

// encodeTask maps a normalized task to page properties. Selects are only
// written when set since Notion rejects empty option names.
func encodeTask(t *task.Task) notionapi.Properties {
	props := notionapi.Properties{
		propTitle:       title(t.Title),
		propDescription: text(t.Description),
		propStatus:      selectOf(t.Status.Label()),
		propPriority:    selectOf(t.Priority.Label()),
	}
	if t.DueDate != "" {
		props[propDueDate] = dayProperty{Day: t.DueDate}
	}
	if t.Time != "" {
		props[propTime] = text(t.Time)
	}
	if t.Project != "" {
		props[propProject] = selectOf(t.Project)
	}
	if t.CompletedAt != nil {
		props[propCompletedAt] = dateOf(t.CompletedAt)
	}
	return props
}

// encodePatch maps only the fields present in p.
func encodePatch(p *task.Patch, now time.Time) notionapi.Properties {
	props := notionapi.Properties{}
	if p.Title != nil {
		props[propTitle] = title(*p.Title)
	}
	if p.Description != nil {
		props[propDescription] = text(*p.Description)
	}
	if p.DueDate != nil {
		props[propDueDate] = dayProperty{Day: *p.DueDate}
	}
	if p.Time != nil {
		props[propTime] = text(*p.Time)
	}
	if p.Priority != nil {
		props[propPriority] = selectOf(p.Priority.Label())
	}
	if p.Status != nil {
		props[propStatus] = selectOf(p.Status.Label())
	}
	if p.Project != nil {
		if *p.Project == "" {
			props[propProject] = clearSelect{}
		} else {
			props[propProject] = selectOf(*p.Project)
		}
	}
	if p.Completes() {
		props[propCompletedAt] = dateOf(&now)
	}
	return props
}

// decodeTask maps a page back to the normalized shape. Created and updated
// times come from the page metadata.
func decodeTask(p *notionapi.Page) *task.Task {
	t := &task.Task{
		ID:          string(p.ID),
		Title:       plainText(p.Properties[propTitle]),
		Description: plainText(p.Properties[propDescription]),
		DueDate:     dateString(p.Properties[propDueDate]),
		Time:        plainText(p.Properties[propTime]),
		Project:     selectName(p.Properties[propProject]),
		CompletedAt: dateTime(p.Properties[propCompletedAt]),
		Archived:    p.Archived,
	}
	if v, ok := task.ParsePriority(selectName(p.Properties[propPriority])); ok {
		t.Priority = v
	}
	if v, ok := task.ParseStatus(selectName(p.Properties[propStatus])); ok {
		t.Status = v
	}
	if !p.CreatedTime.IsZero() {
		created := p.CreatedTime
		t.CreatedAt = &created
	}
	if !p.LastEditedTime.IsZero() {
		edited := p.LastEditedTime
		t.UpdatedAt = &edited
	}
	t.Normalize()
	return t
}

func encodeActivity(a *task.UserActivity) notionapi.Properties {
	ts := a.Timestamp.UTC()
	props := notionapi.Properties{
		"Action":    title(a.Action),
		"Command":   text(a.Command),
		"Success":   notionapi.CheckboxProperty{Checkbox: a.Success},
		"Details":   text(a.Details),
		"Timestamp": dateOf(&ts),
	}
	if a.RelatedTask != "" {
		props["Related Task"] = notionapi.RelationProperty{
			Relation: []notionapi.Relation{{ID: notionapi.PageID(a.RelatedTask)}},
		}
	}
	return props
}

func encodeSummary(s *task.DailySummary) notionapi.Properties {
	generated := s.GeneratedAt.UTC()
	return notionapi.Properties{
		"Date":                title(s.Date),
		"Summary Text":        text(s.SummaryText),
		"Task Count":          notionapi.NumberProperty{Number: float64(s.TaskCount)},
		"High Priority Count": notionapi.NumberProperty{Number: float64(s.HighPriorityCount)},
		"Completed Count":     notionapi.NumberProperty{Number: float64(s.CompletedCount)},
		"Delivered":           notionapi.CheckboxProperty{Checkbox: s.Delivered},
		"Generated At":        dateOf(&generated),
	}
}

func decodeProject(p *notionapi.Page) *task.Project {
	return &task.Project{
		ID:          string(p.ID),
		Name:        plainText(p.Properties["Name"]),
		Description: plainText(p.Properties["Description"]),
		Status:      selectName(p.Properties["Status"]),
	}
}

// Property decoders accept both pointer and value forms since pages
// decoded from JSON carry pointers and locally built ones carry values.

func plainText(prop notionapi.Property) string {
	var parts []notionapi.RichText
	switch v := prop.(type) {
	case *notionapi.TitleProperty:
		parts = v.Title
	case notionapi.TitleProperty:
		parts = v.Title
	case *notionapi.RichTextProperty:
		parts = v.RichText
	case notionapi.RichTextProperty:
		parts = v.RichText
	case *notionapi.SelectProperty:
		return v.Select.Name
	case notionapi.SelectProperty:
		return v.Select.Name
	}
	var b strings.Builder
	for _, rt := range parts {
		switch {
		case rt.PlainText != "":
			b.WriteString(rt.PlainText)
		case rt.Text != nil:
			b.WriteString(rt.Text.Content)
		}
	}
	return b.String()
}

func selectName(prop notionapi.Property) string {
	switch v := prop.(type) {
	case *notionapi.SelectProperty:
		return v.Select.Name
	case notionapi.SelectProperty:
		return v.Select.Name
	case *notionapi.RichTextProperty, notionapi.RichTextProperty:
		return plainText(v)
	}
	return ""
}

func dateTime(prop notionapi.Property) *time.Time {
	var obj *notionapi.DateObject
	switch v := prop.(type) {
	case *notionapi.DateProperty:
		obj = v.Date
	case notionapi.DateProperty:
		obj = v.Date
	}
	if obj == nil || obj.Start == nil {
		return nil
	}
	t := time.Time(*obj.Start)
	return &t
}

func dateString(prop notionapi.Property) string {
	switch v := prop.(type) {
	case dayProperty:
		return v.Day
	case *dayProperty:
		return v.Day
	}
	t := dateTime(prop)
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}
