// Package data selects the task store for the process and defines the
// operations every store adapter implements.
package data

import (
	"context"
	"fmt"

	"github.com/ncobase/voxtask/config"
	"github.com/ncobase/voxtask/internal/data/airtable"
	"github.com/ncobase/voxtask/internal/data/memory"
	"github.com/ncobase/voxtask/internal/data/notion"
	"github.com/ncobase/voxtask/internal/task"
	"github.com/ncobase/voxtask/logging/logger"
)

// Store is implemented by every record store adapter. Every call is one
// logical round trip to the backing service; no caching or retries.
type Store interface {
	GetTasks(ctx context.Context) ([]*task.Task, error)
	GetTaskByID(ctx context.Context, id string) (*task.Task, error)
	CreateTask(ctx context.Context, t *task.Task) (*task.Task, error)
	UpdateTask(ctx context.Context, id string, p *task.Patch) (*task.Task, error)
	DeleteTask(ctx context.Context, id string) (*task.Removed, error)
	GetTasksForDate(ctx context.Context, date string) ([]*task.Task, error)
	CreateUserActivity(ctx context.Context, a *task.UserActivity) (*task.UserActivity, error)
	GetProjects(ctx context.Context) ([]*task.Project, error)
	CreateDailySummary(ctx context.Context, s *task.DailySummary) (*task.DailySummary, error)
}

var (
	_ Store = (*airtable.Client)(nil)
	_ Store = (*notion.Client)(nil)
	_ Store = (*memory.Store)(nil)
)

// NewStore returns the store named by cfg.Provider.
func NewStore(cfg *config.Data, log *logger.Logger) (Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("data config is required")
	}

	var (
		store Store
		err   error
	)
	switch cfg.Provider {
	case config.ProviderAirtable:
		store, err = airtable.New(cfg.Airtable, cfg.Timeout)
	case config.ProviderNotion:
		store, err = notion.New(cfg.Notion, cfg.Timeout)
	case config.ProviderMemory:
		store = memory.New()
	default:
		return nil, fmt.Errorf("unknown data provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to init %s store: %w", cfg.Provider, err)
	}

	log.Info(context.Background(), "Task store selected", "provider", cfg.Provider)
	return store, nil
}
