package notion

import (
	"context"

	"github.com/jomei/notionapi"
	"github.com/ncobase/voxtask/internal/task"
	"github.com/ncobase/voxtask/validation/validator"
)

// GetTasks lists tasks sorted by due date, skipping archived pages.
func (c *Client) GetTasks(ctx context.Context) ([]*task.Task, error) {
	pages, err := c.query(ctx, c.dbs.TasksDatabaseID, &notionapi.DatabaseQueryRequest{
		Sorts: []notionapi.SortObject{{Property: propDueDate, Direction: notionapi.SortOrderASC}},
	})
	if err != nil {
		return nil, wrap("failed to fetch tasks", err)
	}
	return decodeTasks(pages), nil
}

// GetTaskByID fetches one page, archived or not.
func (c *Client) GetTaskByID(ctx context.Context, id string) (*task.Task, error) {
	page, err := c.pages.Get(ctx, notionapi.PageID(id))
	if err != nil {
		return nil, wrap("failed to fetch task", err)
	}
	return decodeTask(page), nil
}

// CreateTask creates a page in the tasks database.
func (c *Client) CreateTask(ctx context.Context, t *task.Task) (*task.Task, error) {
	in := *t
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in.CompletedAt = nil
	if in.Status == task.StatusCompleted {
		now := c.now().UTC()
		in.CompletedAt = &now
	}

	page, err := c.createPage(ctx, c.dbs.TasksDatabaseID, encodeTask(&in))
	if err != nil {
		return nil, wrap("failed to create task", err)
	}
	return decodeTask(page), nil
}

// UpdateTask writes only the properties present in p. Archived pages are
// reported as missing since any page update would restore them.
func (c *Client) UpdateTask(ctx context.Context, id string, p *task.Patch) (*task.Task, error) {
	p = p.Normalized()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	current, err := c.pages.Get(ctx, notionapi.PageID(id))
	if err != nil {
		return nil, wrap("failed to update task", err)
	}
	if current.Archived {
		return nil, wrap("failed to update task", task.ErrNotFound)
	}
	page, err := c.pages.Update(ctx, notionapi.PageID(id), &notionapi.PageUpdateRequest{
		Properties: encodePatch(p, c.now().UTC()),
	})
	if err != nil {
		return nil, wrap("failed to update task", err)
	}
	return decodeTask(page), nil
}

// DeleteTask archives the page.
func (c *Client) DeleteTask(ctx context.Context, id string) (*task.Removed, error) {
	_, err := c.pages.Update(ctx, notionapi.PageID(id), &notionapi.PageUpdateRequest{
		Properties: notionapi.Properties{},
		Archived:   true,
	})
	if err != nil {
		return nil, wrap("failed to delete task", err)
	}
	return &task.Removed{ID: id, Removed: true, Archived: true}, nil
}

// GetTasksForDate lists tasks whose Due Date equals date (YYYY-MM-DD).
func (c *Client) GetTasksForDate(ctx context.Context, date string) ([]*task.Task, error) {
	if !validator.IsISODate(date) {
		return nil, &task.ValidationError{Field: "date", Message: "Date must be in YYYY-MM-DD format"}
	}
	pages, err := c.query(ctx, c.dbs.TasksDatabaseID, &notionapi.DatabaseQueryRequest{
		Filter: dayFilter{PropertyFilter: notionapi.PropertyFilter{Property: propDueDate}, Day: date},
	})
	if err != nil {
		return nil, wrap("failed to fetch tasks for date", err)
	}
	return decodeTasks(pages), nil
}

// CreateUserActivity appends a page to the activity database.
func (c *Client) CreateUserActivity(ctx context.Context, a *task.UserActivity) (*task.UserActivity, error) {
	if a.Timestamp.IsZero() {
		a.Timestamp = c.now()
	}
	page, err := c.createPage(ctx, c.dbs.ActivityDatabaseID, encodeActivity(a))
	if err != nil {
		return nil, wrap("failed to create user activity", err)
	}
	created := *a
	created.ID = string(page.ID)
	return &created, nil
}

// GetProjects lists the projects database.
func (c *Client) GetProjects(ctx context.Context) ([]*task.Project, error) {
	pages, err := c.query(ctx, c.dbs.ProjectsDatabaseID, nil)
	if err != nil {
		return nil, wrap("failed to fetch projects", err)
	}
	projects := make([]*task.Project, 0, len(pages))
	for i := range pages {
		if pages[i].Archived {
			continue
		}
		projects = append(projects, decodeProject(&pages[i]))
	}
	return projects, nil
}

// CreateDailySummary persists a generated summary.
func (c *Client) CreateDailySummary(ctx context.Context, s *task.DailySummary) (*task.DailySummary, error) {
	if s.GeneratedAt.IsZero() {
		s.GeneratedAt = c.now()
	}
	page, err := c.createPage(ctx, c.dbs.SummariesDatabaseID, encodeSummary(s))
	if err != nil {
		return nil, wrap("failed to create daily summary", err)
	}
	created := *s
	created.ID = string(page.ID)
	return &created, nil
}

func decodeTasks(pages []notionapi.Page) []*task.Task {
	tasks := make([]*task.Task, 0, len(pages))
	for i := range pages {
		if pages[i].Archived {
			continue
		}
		tasks = append(tasks, decodeTask(&pages[i]))
	}
	return tasks
}
