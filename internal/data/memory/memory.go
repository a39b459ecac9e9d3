// Package memory is a process-local task store for development and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/ncobase/voxtask/internal/task"
	"github.com/ncobase/voxtask/validation/validator"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Store keeps records in maps guarded by a mutex. Deletes are hard deletes.
type Store struct {
	mu         sync.RWMutex
	tasks      map[string]*task.Task
	projects   []*task.Project
	activities []*task.UserActivity
	summaries  []*task.DailySummary
	now        func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{tasks: make(map[string]*task.Task), now: time.Now}
}

// newID mimics Airtable record ids: "rec" followed by 14 characters.
func newID(prefix string) string {
	return prefix + gonanoid.MustGenerate(idAlphabet, 14)
}

func clone(t *task.Task) *task.Task {
	cp := *t
	return &cp
}

// GetTasks returns tasks ordered by due date then creation time.
func (s *Store) GetTasks(_ context.Context) ([]*task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(func(*task.Task) bool { return true }), nil
}

func (s *Store) GetTaskByID(_ context.Context, id string) (*task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, task.ErrNotFound
	}
	return clone(t), nil
}

func (s *Store) CreateTask(_ context.Context, t *task.Task) (*task.Task, error) {
	in := clone(t)
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	in.ID = newID("rec")
	in.CreatedAt, in.UpdatedAt, in.CompletedAt = &now, nil, nil
	in.Archived = false
	if in.Status == task.StatusCompleted {
		in.CompletedAt = &now
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[in.ID] = in
	return clone(in), nil
}

func (s *Store) UpdateTask(_ context.Context, id string, p *task.Patch) (*task.Task, error) {
	p = p.Normalized()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, task.ErrNotFound
	}
	p.Apply(t, s.now().UTC())
	return clone(t), nil
}

func (s *Store) DeleteTask(_ context.Context, id string) (*task.Removed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return nil, task.ErrNotFound
	}
	delete(s.tasks, id)
	return &task.Removed{ID: id, Removed: true, Archived: false}, nil
}

func (s *Store) GetTasksForDate(_ context.Context, date string) ([]*task.Task, error) {
	if !validator.IsISODate(date) {
		return nil, &task.ValidationError{Field: "date", Message: "Date must be in YYYY-MM-DD format"}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(func(t *task.Task) bool { return t.DueDate == date }), nil
}

func (s *Store) CreateUserActivity(_ context.Context, a *task.UserActivity) (*task.UserActivity, error) {
	cp := *a
	cp.ID = newID("act")
	if cp.Timestamp.IsZero() {
		cp.Timestamp = s.now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = append(s.activities, &cp)
	out := cp
	return &out, nil
}

func (s *Store) GetProjects(_ context.Context) ([]*task.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*task.Project, 0, len(s.projects))
	for _, p := range s.projects {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (s *Store) CreateDailySummary(_ context.Context, sum *task.DailySummary) (*task.DailySummary, error) {
	cp := *sum
	cp.ID = newID("sum")
	if cp.GeneratedAt.IsZero() {
		cp.GeneratedAt = s.now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries = append(s.summaries, &cp)
	out := cp
	return &out, nil
}

// AddProject seeds the projects table.
func (s *Store) AddProject(p task.Project) *task.Project {
	if p.ID == "" {
		p.ID = newID("rec")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = append(s.projects, &p)
	cp := p
	return &cp
}

// Activities returns a snapshot of the activity log.
func (s *Store) Activities() []task.UserActivity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]task.UserActivity, len(s.activities))
	for i, a := range s.activities {
		out[i] = *a
	}
	return out
}

// Summaries returns a snapshot of persisted daily summaries.
func (s *Store) Summaries() []task.DailySummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]task.DailySummary, len(s.summaries))
	for i, sum := range s.summaries {
		out[i] = *sum
	}
	return out
}

// sorted must be called with s.mu held.
func (s *Store) sorted(keep func(*task.Task) bool) []*task.Task {
	out := make([]*task.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if keep(t) {
			out = append(out, clone(t))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.DueDate != b.DueDate {
			// undated tasks sort last
			if a.DueDate == "" || b.DueDate == "" {
				return b.DueDate == ""
			}
			return a.DueDate < b.DueDate
		}
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		return a.CreatedAt.Before(*b.CreatedAt) || (a.CreatedAt.Equal(*b.CreatedAt) && a.ID < b.ID)
	})
	return out
}
