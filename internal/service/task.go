package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ncobase/voxtask/ctxutil"
	"github.com/ncobase/voxtask/internal/data"
	"github.com/ncobase/voxtask/internal/task"
	"github.com/ncobase/voxtask/logging/logger"
	"github.com/ncobase/voxtask/validation/validator"
)

// TaskService handles task CRUD against the selected store.
type TaskService struct {
	store  data.Store
	logger *logger.Logger
}

// NewTaskService creates a new task service.
func NewTaskService(store data.Store, logger *logger.Logger) *TaskService {
	return &TaskService{store: store, logger: logger}
}

// CreateTaskRequest is the body of POST /api/tasks.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate" binding:"omitempty,isodate"`
	Time        string `json:"time" binding:"omitempty,clock"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	Project     string `json:"project"`
}

func (r *CreateTaskRequest) toTask() *task.Task {
	return &task.Task{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Time:        r.Time,
		Priority:    task.Priority(r.Priority),
		Status:      task.Status(r.Status),
		Project:     r.Project,
	}
}

func invalidDate() error {
	return &task.ValidationError{Field: "date", Message: "Invalid date format. Use YYYY-MM-DD"}
}

// List returns every task.
func (s *TaskService) List(ctx context.Context) ([]*task.Task, error) {
	return s.store.GetTasks(ctx)
}

// ListForDate returns tasks due on date.
func (s *TaskService) ListForDate(ctx context.Context, date string) ([]*task.Task, error) {
	date = strings.TrimSpace(date)
	if !validator.IsISODate(date) {
		return nil, invalidDate()
	}
	return s.store.GetTasksForDate(ctx, date)
}

// Get returns one task.
func (s *TaskService) Get(ctx context.Context, id string) (*task.Task, error) {
	if strings.TrimSpace(id) == "" {
		return nil, task.ErrNotFound
	}
	return s.store.GetTaskByID(ctx, id)
}

// Create validates and stores a new task.
func (s *TaskService) Create(ctx context.Context, req *CreateTaskRequest) (*task.Task, error) {
	t := req.toTask()
	t.Normalize()
	if err := t.Validate(); err != nil {
		return nil, err
	}
	created, err := s.store.CreateTask(ctx, t)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "Task created", "id", created.ID, "title", created.Title)
	return created, nil
}

// Update applies a partial patch.
func (s *TaskService) Update(ctx context.Context, id string, p *task.Patch) (*task.Task, error) {
	if p == nil || p.Empty() {
		return nil, &task.ValidationError{Message: "No fields to update"}
	}
	p = p.Normalized()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.store.UpdateTask(ctx, id, p)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "Task updated", "id", id, "completed", p.Completes())
	return updated, nil
}

// Complete marks a task completed.
func (s *TaskService) Complete(ctx context.Context, id string) (*task.Task, error) {
	return s.Update(ctx, id, task.CompletePatch())
}

// Delete removes or archives a task depending on the store.
func (s *TaskService) Delete(ctx context.Context, id string) (*task.Removed, error) {
	removed, err := s.store.DeleteTask(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "Task deleted", "id", id, "archived", removed.Archived)
	return removed, nil
}

// Projects lists the store's projects.
func (s *TaskService) Projects(ctx context.Context) ([]*task.Project, error) {
	return s.store.GetProjects(ctx)
}

// RecordActivity writes an activity entry. Failures are logged, not returned.
func (s *TaskService) RecordActivity(ctx context.Context, a *task.UserActivity) {
	ctx, cancel := ctxutil.WithAsyncContext(ctx, 0)
	defer cancel()
	if _, err := s.store.CreateUserActivity(ctx, a); err != nil {
		s.logger.Warn(ctx, "failed to record user activity", "action", a.Action, "error", err)
	}
}

// FindOpen returns the first open task whose title contains reference.
func (s *TaskService) FindOpen(ctx context.Context, reference string) (*task.Task, error) {
	reference = strings.ToLower(strings.TrimSpace(reference))
	if reference == "" {
		return nil, task.ErrNotFound
	}
	tasks, err := s.store.GetTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	for _, t := range tasks {
		if t.IsOpen() && strings.Contains(strings.ToLower(t.Title), reference) {
			return t, nil
		}
	}
	return nil, task.ErrNotFound
}
