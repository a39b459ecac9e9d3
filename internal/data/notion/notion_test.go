package notion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/jomei/notionapi"
	"github.com/ncobase/voxtask/config"
	"github.com/ncobase/voxtask/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNotion keeps pages in memory and answers the page and database calls.
type fakeNotion struct {
	order   []notionapi.PageID
	pages   map[notionapi.PageID]*notionapi.Page
	maxPage int
	queries int
	clock   time.Time
}

func newFakeNotion() *fakeNotion {
	return &fakeNotion{
		pages:   map[notionapi.PageID]*notionapi.Page{},
		maxPage: 2,
		clock:   time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func notFound() error {
	return &notionapi.Error{Status: http.StatusNotFound, Code: "object_not_found", Message: "Could not find page"}
}

func (f *fakeNotion) Get(_ context.Context, id notionapi.PageID) (*notionapi.Page, error) {
	p, ok := f.pages[id]
	if !ok {
		return nil, notFound()
	}
	cp := *p
	return &cp, nil
}

func (f *fakeNotion) Create(_ context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	id := notionapi.PageID(fmt.Sprintf("page-%d", len(f.order)+1))
	props := notionapi.Properties{}
	for k, v := range req.Properties {
		props[k] = v
	}
	p := &notionapi.Page{
		ID:             notionapi.ObjectID(id),
		CreatedTime:    f.clock,
		LastEditedTime: f.clock,
		Parent:         req.Parent,
		Properties:     props,
	}
	f.pages[id] = p
	f.order = append(f.order, id)
	cp := *p
	return &cp, nil
}

func (f *fakeNotion) Update(_ context.Context, id notionapi.PageID, req *notionapi.PageUpdateRequest) (*notionapi.Page, error) {
	p, ok := f.pages[id]
	if !ok {
		return nil, notFound()
	}
	for k, v := range req.Properties {
		p.Properties[k] = v
	}
	p.Archived = req.Archived
	p.LastEditedTime = f.clock.Add(time.Hour)
	cp := *p
	return &cp, nil
}

func (f *fakeNotion) Query(_ context.Context, db notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	f.queries++
	var matched []notionapi.Page
	for _, id := range f.order {
		p := f.pages[id]
		if p.Parent.DatabaseID != db || p.Archived {
			continue
		}
		if df, ok := req.Filter.(dayFilter); ok && dateString(p.Properties[df.Property]) != df.Day {
			continue
		}
		matched = append(matched, *p)
	}
	if len(req.Sorts) > 0 {
		prop := req.Sorts[0].Property
		sort.SliceStable(matched, func(i, j int) bool {
			return dateString(matched[i].Properties[prop]) < dateString(matched[j].Properties[prop])
		})
	}

	start, _ := strconv.Atoi(string(req.StartCursor))
	end := min(start+f.maxPage, len(matched))
	res := &notionapi.DatabaseQueryResponse{Results: matched[start:end]}
	if end < len(matched) {
		res.HasMore = true
		res.NextCursor = notionapi.Cursor(strconv.Itoa(end))
	}
	return res, nil
}

func newTestClient() (*Client, *fakeNotion) {
	fake := newFakeNotion()
	c := newClient(fake, fake, &config.Notion{
		APIKey:              "secret",
		TasksDatabaseID:     "db-tasks",
		ProjectsDatabaseID:  "db-projects",
		ActivityDatabaseID:  "db-activity",
		SummariesDatabaseID: "db-summaries",
	})
	c.now = func() time.Time { return time.Date(2025, 3, 29, 8, 30, 0, 0, time.UTC) }
	return c, fake
}

func TestCreateTaskEchoesFieldsWithDefaults(t *testing.T) {
	c, _ := newTestClient()

	created, err := c.CreateTask(context.Background(), &task.Task{
		Title: "Team sync", DueDate: "2025-03-29", Time: "14:00", Priority: task.PriorityMedium,
	})
	require.NoError(t, err)

	assert.Equal(t, "page-1", created.ID)
	assert.Equal(t, "Team sync", created.Title)
	assert.Equal(t, "2025-03-29", created.DueDate)
	assert.Equal(t, "14:00", created.Time)
	assert.Equal(t, task.PriorityMedium, created.Priority)
	assert.Equal(t, task.StatusNotStarted, created.Status)
	require.NotNil(t, created.CreatedAt)
}

func TestCreateTaskRequiresTitle(t *testing.T) {
	c, fake := newTestClient()
	_, err := c.CreateTask(context.Background(), &task.Task{})

	var ve *task.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "title")
	assert.Empty(t, fake.pages)
}

func TestUpdateToCompletedStampsCompletedAt(t *testing.T) {
	c, _ := newTestClient()
	ctx := context.Background()
	created, err := c.CreateTask(ctx, &task.Task{Title: "Report", Description: "draft"})
	require.NoError(t, err)

	updated, err := c.UpdateTask(ctx, created.ID, task.CompletePatch())
	require.NoError(t, err)

	assert.Equal(t, task.StatusCompleted, updated.Status)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, time.Date(2025, 3, 29, 8, 30, 0, 0, time.UTC), *updated.CompletedAt)
	assert.Equal(t, "draft", updated.Description)
	assert.True(t, updated.UpdatedAt.After(*updated.CreatedAt))
}

func TestDeleteArchivesAndPageStaysReadable(t *testing.T) {
	c, _ := newTestClient()
	ctx := context.Background()
	a, _ := c.CreateTask(ctx, &task.Task{Title: "A"})
	_, _ = c.CreateTask(ctx, &task.Task{Title: "B"})

	removed, err := c.DeleteTask(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, &task.Removed{ID: a.ID, Removed: true, Archived: true}, removed)

	got, err := c.GetTaskByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, got.Archived)
	assert.Equal(t, "A", got.Title)

	tasks, err := c.GetTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "B", tasks[0].Title)
}

func TestUpdateArchivedPageIsNotFound(t *testing.T) {
	c, fake := newTestClient()
	ctx := context.Background()
	a, _ := c.CreateTask(ctx, &task.Task{Title: "A"})
	_, err := c.DeleteTask(ctx, a.ID)
	require.NoError(t, err)

	title := "revived"
	_, err = c.UpdateTask(ctx, a.ID, &task.Patch{Title: &title})
	assert.True(t, errors.Is(err, task.ErrNotFound))
	_, err = c.UpdateTask(ctx, a.ID, task.CompletePatch())
	assert.True(t, errors.Is(err, task.ErrNotFound))

	assert.True(t, fake.pages[notionapi.PageID(a.ID)].Archived)
	assert.Equal(t, "A", plainText(fake.pages[notionapi.PageID(a.ID)].Properties[propTitle]))
	tasks, err := c.GetTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestUpdateClearsProject(t *testing.T) {
	c, _ := newTestClient()
	ctx := context.Background()
	a, _ := c.CreateTask(ctx, &task.Task{Title: "A", Project: "Work"})
	require.Equal(t, "Work", a.Project)

	empty := ""
	updated, err := c.UpdateTask(ctx, a.ID, &task.Patch{Project: &empty})
	require.NoError(t, err)
	assert.Empty(t, updated.Project)

	raw, err := json.Marshal(encodePatch(&task.Patch{Project: &empty}, time.Now()))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Project":{"select":null}}`, string(raw))
}

func TestDueDateEncodesAsCalendarDay(t *testing.T) {
	completed := time.Date(2025, 3, 29, 8, 30, 0, 0, time.UTC)
	props := encodeTask(&task.Task{Title: "A", DueDate: "2025-03-29", CompletedAt: &completed})

	raw, err := json.Marshal(props[propDueDate])
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":{"start":"2025-03-29"}}`, string(raw))

	raw, err = json.Marshal(props[propCompletedAt])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"start":"2025-03-29T08:30:00Z"`)

	due := "2025-03-30"
	raw, err = json.Marshal(encodePatch(&task.Patch{DueDate: &due}, completed)[propDueDate])
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":{"start":"2025-03-30"}}`, string(raw))

	none := ""
	raw, err = json.Marshal(encodePatch(&task.Patch{DueDate: &none}, completed)[propDueDate])
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":null}`, string(raw))

	req := &notionapi.DatabaseQueryRequest{
		Filter: dayFilter{PropertyFilter: notionapi.PropertyFilter{Property: propDueDate}, Day: "2025-03-29"},
	}
	raw, err = json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"filter":{"property":"Due Date","date":{"equals":"2025-03-29"}}}`, string(raw))
}

func TestMissingPageMapsToNotFound(t *testing.T) {
	c, _ := newTestClient()
	_, err := c.GetTaskByID(context.Background(), "nope")
	assert.True(t, errors.Is(err, task.ErrNotFound))
	assert.Contains(t, err.Error(), "failed to fetch task")

	_, err = c.UpdateTask(context.Background(), "nope", task.CompletePatch())
	assert.True(t, errors.Is(err, task.ErrNotFound))
}

func TestGetTasksSortedAndPaginated(t *testing.T) {
	c, fake := newTestClient()
	ctx := context.Background()
	for _, d := range []string{"2025-04-02", "2025-03-30", "2025-03-31", "2025-03-29", "2025-04-01"} {
		_, err := c.CreateTask(ctx, &task.Task{Title: "t " + d, DueDate: d})
		require.NoError(t, err)
	}

	tasks, err := c.GetTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 5)
	assert.Equal(t, 3, fake.queries)
	for i := 1; i < len(tasks); i++ {
		assert.LessOrEqual(t, tasks[i-1].DueDate, tasks[i].DueDate)
	}
}

func TestGetTasksForDate(t *testing.T) {
	c, _ := newTestClient()
	ctx := context.Background()
	_, _ = c.CreateTask(ctx, &task.Task{Title: "sync", DueDate: "2025-03-29"})
	_, _ = c.CreateTask(ctx, &task.Task{Title: "review", DueDate: "2025-03-29"})
	_, _ = c.CreateTask(ctx, &task.Task{Title: "later", DueDate: "2025-03-30"})
	_, _ = c.CreateTask(ctx, &task.Task{Title: "undated"})

	tasks, err := c.GetTasksForDate(ctx, "2025-03-29")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	for _, tk := range tasks {
		assert.Equal(t, "2025-03-29", tk.DueDate)
	}

	_, err = c.GetTasksForDate(ctx, "tomorrow")
	var ve *task.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestPropertyRoundTrip(t *testing.T) {
	in := &task.Task{
		ID: "page-9", Title: "Team sync", Description: "weekly", DueDate: "2025-03-29", Time: "14:00",
		Priority: task.PriorityHigh, Status: task.StatusInProgress, Project: "Work",
	}
	page := &notionapi.Page{ID: "page-9", Properties: encodeTask(in)}
	assert.Equal(t, in, decodeTask(page))

	// pointer forms, as produced by decoding an API response
	ptr := notionapi.Properties{}
	for k, v := range page.Properties {
		switch p := v.(type) {
		case notionapi.TitleProperty:
			ptr[k] = &p
		case notionapi.RichTextProperty:
			ptr[k] = &p
		case notionapi.SelectProperty:
			ptr[k] = &p
		case notionapi.DateProperty:
			ptr[k] = &p
		default:
			ptr[k] = v
		}
	}
	assert.Equal(t, in, decodeTask(&notionapi.Page{ID: "page-9", Properties: ptr}))
}

func TestActivitySummaryAndProjects(t *testing.T) {
	c, fake := newTestClient()
	ctx := context.Background()

	act, err := c.CreateUserActivity(ctx, &task.UserActivity{Action: "daily_summary_received", Command: "system_generated", RelatedTask: "page-7", Success: true})
	require.NoError(t, err)
	stored := fake.pages[notionapi.PageID(act.ID)]
	assert.Equal(t, notionapi.DatabaseID("db-activity"), stored.Parent.DatabaseID)
	assert.Equal(t, "daily_summary_received", plainText(stored.Properties["Action"]))
	rel := stored.Properties["Related Task"].(notionapi.RelationProperty)
	assert.Equal(t, notionapi.PageID("page-7"), rel.Relation[0].ID)

	sum, err := c.CreateDailySummary(ctx, &task.DailySummary{Date: "2025-03-29", SummaryText: "2 tasks", TaskCount: 2})
	require.NoError(t, err)
	num := fake.pages[notionapi.PageID(sum.ID)].Properties["Task Count"].(notionapi.NumberProperty)
	assert.Equal(t, float64(2), num.Number)

	_, err = c.createPage(ctx, "db-projects", notionapi.Properties{"Name": title("Work"), "Status": selectOf("Active")})
	require.NoError(t, err)
	projects, err := c.GetProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Work", projects[0].Name)
	assert.Equal(t, "Active", projects[0].Status)
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(&config.Notion{APIKey: "k"}, 0)
	assert.Error(t, err)

	c, err := New(&config.Notion{APIKey: "k", TasksDatabaseID: "db"}, time.Second)
	require.NoError(t, err)
	assert.NotNil(t, c.pages)
}
