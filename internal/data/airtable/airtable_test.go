package airtable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ncobase/voxtask/config"
	"github.com/ncobase/voxtask/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAirtable is a minimal in-memory implementation of the Airtable REST API.
type fakeAirtable struct {
	mu       sync.Mutex
	seq      int
	maxPage  int
	tables   map[string]map[string]record
	requests []string
}

var formulaRe = regexp.MustCompile(`^\{(.+)\} = '(.*)'$`)

func newFake() *fakeAirtable {
	return &fakeAirtable{maxPage: 2, tables: map[string]map[string]record{}}
}

func (f *fakeAirtable) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer test-key" {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"type":"AUTHENTICATION_REQUIRED","message":"bad key"}}`))
		return
	}

	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/v0/app1/"), "/")
	table := parts[0]
	f.requests = append(f.requests, r.Method+" "+table)
	rows := f.tables[table]
	if rows == nil {
		rows = map[string]record{}
		f.tables[table] = rows
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			f.list(w, r, rows)
		case http.MethodPost:
			var in record
			_ = json.NewDecoder(r.Body).Decode(&in)
			f.seq++
			in.ID = fmt.Sprintf("rec%03d", f.seq)
			in.CreatedTime = "2025-03-01T10:00:00.000Z"
			rows[in.ID] = in
			writeJSON(w, in)
		}
		return
	}

	id := parts[1]
	rec, ok := rows[id]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"NOT_FOUND"}`))
		return
	}
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, rec)
	case http.MethodPatch:
		var in record
		_ = json.NewDecoder(r.Body).Decode(&in)
		for k, v := range in.Fields {
			rec.Fields[k] = v
		}
		rows[id] = rec
		writeJSON(w, rec)
	case http.MethodDelete:
		delete(rows, id)
		writeJSON(w, map[string]any{"id": id, "deleted": true})
	}
}

func (f *fakeAirtable) list(w http.ResponseWriter, r *http.Request, rows map[string]record) {
	ids := make([]string, 0, len(rows))
	for id, rec := range rows {
		if m := formulaRe.FindStringSubmatch(r.URL.Query().Get("filterByFormula")); m != nil {
			if fmt.Sprint(rec.Fields[m[1]]) != m[2] {
				continue
			}
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	start, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	end := min(start+f.maxPage, len(ids))
	resp := listResponse{}
	for _, id := range ids[start:end] {
		resp.Records = append(resp.Records, rows[id])
	}
	if end < len(ids) {
		resp.Offset = strconv.Itoa(end)
	}
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T) (*Client, *fakeAirtable) {
	t.Helper()
	fake := newFake()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	c, err := New(&config.Airtable{APIKey: "test-key", BaseID: "app1", BaseURL: srv.URL, View: "Grid view"}, time.Second)
	require.NoError(t, err)
	c.now = func() time.Time { return time.Date(2025, 3, 29, 8, 30, 0, 0, time.UTC) }
	return c, fake
}

func TestCreateTaskEchoesFieldsWithDefaults(t *testing.T) {
	c, _ := newTestClient(t)

	created, err := c.CreateTask(context.Background(), &task.Task{
		Title: "Team sync", DueDate: "2025-03-29", Time: "14:00", Priority: task.PriorityMedium, Project: "Work",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Team sync", created.Title)
	assert.Equal(t, "2025-03-29", created.DueDate)
	assert.Equal(t, "14:00", created.Time)
	assert.Equal(t, task.PriorityMedium, created.Priority)
	assert.Equal(t, task.StatusNotStarted, created.Status)
	assert.Equal(t, "Work", created.Project)
	require.NotNil(t, created.CreatedAt)
	assert.Nil(t, created.CompletedAt)
}

func TestCreateTaskRequiresTitle(t *testing.T) {
	c, fake := newTestClient(t)

	_, err := c.CreateTask(context.Background(), &task.Task{Title: "   "})
	var ve *task.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "title")
	assert.Empty(t, fake.requests)
}

func TestUpdateCompletesAndSendsOnlyPatchedFields(t *testing.T) {
	c, fake := newTestClient(t)
	created, err := c.CreateTask(context.Background(), &task.Task{Title: "Report", Priority: task.PriorityLow, Description: "draft"})
	require.NoError(t, err)

	updated, err := c.UpdateTask(context.Background(), created.ID, task.CompletePatch())
	require.NoError(t, err)

	assert.Equal(t, task.StatusCompleted, updated.Status)
	require.NotNil(t, updated.CompletedAt)
	require.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, task.PriorityLow, updated.Priority)
	assert.Equal(t, "draft", updated.Description)
	assert.Equal(t, "Completed", fake.tables["Tasks"][created.ID].Fields[fieldStatus])
}

func TestDeleteIsHardDelete(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()
	a, _ := c.CreateTask(ctx, &task.Task{Title: "A"})
	b, _ := c.CreateTask(ctx, &task.Task{Title: "B"})

	removed, err := c.DeleteTask(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, &task.Removed{ID: a.ID, Removed: true, Archived: false}, removed)

	tasks, err := c.GetTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, b.ID, tasks[0].ID)

	_, err = c.GetTaskByID(ctx, a.ID)
	assert.True(t, errors.Is(err, task.ErrNotFound))
}

func TestGetTasksFollowsOffsetPagination(t *testing.T) {
	c, fake := newTestClient(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := c.CreateTask(ctx, &task.Task{Title: fmt.Sprintf("task %d", i)})
		require.NoError(t, err)
	}
	fake.requests = nil

	tasks, err := c.GetTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 5)
	assert.Len(t, fake.requests, 3)
}

func TestGetTasksForDate(t *testing.T) {
	c, _ := newTestClient(t)
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

	_, err = c.GetTasksForDate(ctx, "2025-03-29' OR TRUE()")
	var ve *task.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestUpstreamErrorsAreWrapped(t *testing.T) {
	c, _ := newTestClient(t)
	// a plain client sends no bearer token
	c.http = &http.Client{Timeout: time.Second}

	_, err := c.GetTasks(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch tasks")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "AUTHENTICATION_REQUIRED", apiErr.Type)
}

func TestActivitySummaryAndProjects(t *testing.T) {
	c, fake := newTestClient(t)
	ctx := context.Background()

	act, err := c.CreateUserActivity(ctx, &task.UserActivity{
		Action: "create_task", Command: "add meeting", RelatedTask: "rec9", Success: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, act.ID)
	stored := fake.tables["User Activity"][act.ID].Fields
	assert.Equal(t, "2025-03-29T08:30:00Z", stored["Timestamp"])
	assert.Equal(t, []any{"rec9"}, stored["Related Task"])

	sum, err := c.CreateDailySummary(ctx, &task.DailySummary{Date: "2025-03-29", SummaryText: "x", TaskCount: 2})
	require.NoError(t, err)
	assert.Equal(t, float64(2), fake.tables["Daily Summaries"][sum.ID].Fields["Task Count"])

	fake.tables["Projects"] = map[string]record{
		"recP1": {ID: "recP1", Fields: map[string]any{"Name": "Work", "Status": "Active"}},
	}
	projects, err := c.GetProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Work", projects[0].Name)
}

func TestTaskFieldRoundTrip(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	in := &task.Task{
		ID: "rec1", Title: "Team sync", Description: "weekly", DueDate: "2025-03-29", Time: "14:00",
		Priority: task.PriorityHigh, Status: task.StatusInProgress, Project: "Work", CreatedAt: &created,
	}

	// through JSON, as it travels over the wire
	raw, err := json.Marshal(record{ID: in.ID, Fields: encodeTask(in)})
	require.NoError(t, err)
	var r record
	require.NoError(t, json.Unmarshal(raw, &r))

	assert.Equal(t, in, decodeTask(r))
	assert.Equal(t, "High", r.Fields[fieldPriority])
	assert.Equal(t, "In Progress", r.Fields[fieldStatus])
}

func TestDecodeAcceptsNormalizedValues(t *testing.T) {
	tk := decodeTask(record{ID: "rec1", Fields: map[string]any{
		fieldTitle: "x", fieldPriority: "low", fieldStatus: "completed",
		fieldDueDate: "2025-03-29T00:00:00.000Z", fieldProject: []any{"Work"},
	}})
	assert.Equal(t, task.PriorityLow, tk.Priority)
	assert.Equal(t, task.StatusCompleted, tk.Status)
	assert.Equal(t, "2025-03-29", tk.DueDate)
	assert.Equal(t, "Work", tk.Project)
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(&config.Airtable{BaseID: "app1"}, 0)
	assert.Error(t, err)
}
