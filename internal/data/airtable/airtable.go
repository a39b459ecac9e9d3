package airtable

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ncobase/voxtask/internal/task"
	"github.com/ncobase/voxtask/validation/validator"
)

// GetTasks lists every task in the configured view.
func (c *Client) GetTasks(ctx context.Context) ([]*task.Task, error) {
	params := url.Values{}
	if c.tables.View != "" {
		params.Set("view", c.tables.View)
	}
	records, err := c.list(ctx, c.tables.TasksTable, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	return decodeTasks(records), nil
}

// GetTaskByID fetches one task.
func (c *Client) GetTaskByID(ctx context.Context, id string) (*task.Task, error) {
	var r record
	if err := c.do(ctx, http.MethodGet, c.tableURL(c.tables.TasksTable, id), nil, &r); err != nil {
		return nil, fmt.Errorf("failed to fetch task: %w", err)
	}
	return decodeTask(r), nil
}

// CreateTask creates a task, stamping Created At.
func (c *Client) CreateTask(ctx context.Context, t *task.Task) (*task.Task, error) {
	in := *t
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := c.now().UTC().Truncate(time.Second)
	in.CreatedAt = &now
	in.UpdatedAt, in.CompletedAt = nil, nil
	if in.Status == task.StatusCompleted {
		in.CompletedAt = &now
	}

	var out record
	if err := c.do(ctx, http.MethodPost, c.tableURL(c.tables.TasksTable), record{Fields: encodeTask(&in)}, &out); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return decodeTask(out), nil
}

// UpdateTask writes only the fields present in p.
func (c *Client) UpdateTask(ctx context.Context, id string, p *task.Patch) (*task.Task, error) {
	p = p.Normalized()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var out record
	body := record{Fields: encodePatch(p, c.now())}
	if err := c.do(ctx, http.MethodPatch, c.tableURL(c.tables.TasksTable, id), body, &out); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return decodeTask(out), nil
}

// DeleteTask removes the record permanently.
func (c *Client) DeleteTask(ctx context.Context, id string) (*task.Removed, error) {
	var out struct {
		ID      string `json:"id"`
		Deleted bool   `json:"deleted"`
	}
	if err := c.do(ctx, http.MethodDelete, c.tableURL(c.tables.TasksTable, id), nil, &out); err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}
	if out.ID == "" {
		out.ID = id
	}
	return &task.Removed{ID: out.ID, Removed: true, Archived: false}, nil
}

// GetTasksForDate lists tasks whose Due Date equals date (YYYY-MM-DD).
func (c *Client) GetTasksForDate(ctx context.Context, date string) ([]*task.Task, error) {
	// the date is interpolated into a formula, so it must be a strict ISO date
	if !validator.IsISODate(date) {
		return nil, &task.ValidationError{Field: "date", Message: "Date must be in YYYY-MM-DD format"}
	}
	params := url.Values{}
	params.Set("filterByFormula", fmt.Sprintf("{%s} = '%s'", fieldDueDate, date))
	records, err := c.list(ctx, c.tables.TasksTable, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks for date: %w", err)
	}
	return decodeTasks(records), nil
}

// CreateUserActivity appends to the activity table.
func (c *Client) CreateUserActivity(ctx context.Context, a *task.UserActivity) (*task.UserActivity, error) {
	if a.Timestamp.IsZero() {
		a.Timestamp = c.now()
	}
	var out record
	if err := c.do(ctx, http.MethodPost, c.tableURL(c.tables.ActivityTable), record{Fields: encodeActivity(a)}, &out); err != nil {
		return nil, fmt.Errorf("failed to create user activity: %w", err)
	}
	created := *a
	created.ID = out.ID
	return &created, nil
}

// GetProjects lists the projects table.
func (c *Client) GetProjects(ctx context.Context) ([]*task.Project, error) {
	params := url.Values{}
	if c.tables.View != "" {
		params.Set("view", c.tables.View)
	}
	records, err := c.list(ctx, c.tables.ProjectsTable, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}
	projects := make([]*task.Project, 0, len(records))
	for _, r := range records {
		projects = append(projects, decodeProject(r))
	}
	return projects, nil
}

// CreateDailySummary persists a generated summary.
func (c *Client) CreateDailySummary(ctx context.Context, s *task.DailySummary) (*task.DailySummary, error) {
	if s.GeneratedAt.IsZero() {
		s.GeneratedAt = c.now()
	}
	var out record
	if err := c.do(ctx, http.MethodPost, c.tableURL(c.tables.SummariesTable), record{Fields: encodeSummary(s)}, &out); err != nil {
		return nil, fmt.Errorf("failed to create daily summary: %w", err)
	}
	created := *s
	created.ID = out.ID
	return &created, nil
}

func decodeTasks(records []record) []*task.Task {
	tasks := make([]*task.Task, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, decodeTask(r))
	}
	return tasks
}
