package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/voxtask/concurrency/worker"
	"github.com/ncobase/voxtask/config"
	"github.com/ncobase/voxtask/internal/ai"
	"github.com/ncobase/voxtask/internal/automation"
	"github.com/ncobase/voxtask/internal/data/memory"
	"github.com/ncobase/voxtask/internal/service"
	"github.com/ncobase/voxtask/internal/task"
	"github.com/ncobase/voxtask/internal/voice"
	"github.com/ncobase/voxtask/logging/logger"
	"github.com/ncobase/voxtask/validation/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.RegisterGin()
}

func setupRouter(t *testing.T) (*gin.Engine, *memory.Store) {
	t.Helper()
	log := logger.NewLogger(&bytes.Buffer{})
	store := memory.New()
	pool := worker.NewPool(worker.DefaultConfig(), nil)
	pool.Start()
	t.Cleanup(func() { pool.Stop(context.Background()) })

	svc := service.NewService(&service.Deps{
		Store:       store,
		Assistant:   ai.NewFixed(),
		Transcriber: voice.NewFixed(),
		Speaker:     voice.NewFixed(),
		Trigger:     automation.NewNoop(),
		Pool:        pool,
		Voice:       &config.Voice{DefaultVoice: "alloy"},
		Logger:      log,
	})
	r := gin.New()
	NewHandler(svc, log).RegisterRoutes(r)
	return r, store
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestCreateTask(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/api/tasks", map[string]any{
		"title":    "Team sync",
		"dueDate":  "2025-03-29",
		"time":     "14:00",
		"priority": "medium",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	got := decode[task.Task](t, w)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "Team sync", got.Title)
	assert.Equal(t, task.StatusNotStarted, got.Status)
	assert.Equal(t, "14:00", got.Time)
}

func TestCreateTaskValidation(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/api/tasks", map[string]any{"description": "no title"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, "Task title is required", body["error"])

	w = doJSON(r, http.MethodPost, "/api/tasks", map[string]any{"title": "x", "dueDate": "29/03/2025"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body = decode[map[string]any](t, w)
	assert.Contains(t, body["errors"], "dueDate")

	req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskLifecycle(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(r, http.MethodGet, "/api/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	created := decode[task.Task](t, doJSON(r, http.MethodPost, "/api/tasks", map[string]any{"title": "Report", "dueDate": "2025-03-29"}))
	doJSON(r, http.MethodPost, "/api/tasks", map[string]any{"title": "Other", "dueDate": "2025-03-30"})

	w = doJSON(r, http.MethodGet, "/api/tasks/date/2025-03-29", nil)
	require.Equal(t, http.StatusOK, w.Code)
	onDate := decode[[]task.Task](t, w)
	require.Len(t, onDate, 1)
	assert.Equal(t, created.ID, onDate[0].ID)

	w = doJSON(r, http.MethodGet, "/api/tasks/date/not-a-date", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPut, "/api/tasks/"+created.ID, map[string]any{"priority": "High"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, task.PriorityHigh, decode[task.Task](t, w).Priority)

	w = doJSON(r, http.MethodPost, "/api/tasks/"+created.ID+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)
	done := decode[task.Task](t, w)
	assert.Equal(t, task.StatusCompleted, done.Status)
	assert.NotNil(t, done.CompletedAt)

	w = doJSON(r, http.MethodDelete, "/api/tasks/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	removed := decode[task.Removed](t, w)
	assert.True(t, removed.Removed)
	assert.False(t, removed.Archived)

	w = doJSON(r, http.MethodGet, "/api/tasks/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Task not found", decode[map[string]any](t, w)["error"])

	w = doJSON(r, http.MethodPut, "/api/tasks/"+created.ID, map[string]any{"title": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjects(t *testing.T) {
	r, store := setupRouter(t)
	store.AddProject(task.Project{Name: "Design", Status: "Active"})

	w := doJSON(r, http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	projects := decode[[]task.Project](t, w)
	require.Len(t, projects, 1)
	assert.Equal(t, "Design", projects[0].Name)
}

func TestVoiceEndpoints(t *testing.T) {
	r, _ := setupRouter(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("audio", "clip.webm")
	require.NoError(t, err)
	_, _ = part.Write([]byte("fake audio"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/voice/transcribe", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 0.95, decode[voice.Transcript](t, w).Confidence)

	w = doJSON(r, http.MethodPost, "/api/voice/transcribe", map[string]any{
		"audio": base64.StdEncoding.EncodeToString([]byte("mock audio data")),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(r, http.MethodPost, "/api/voice/transcribe", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/voice/synthesize", map[string]any{"text": "Hello"})
	require.Equal(t, http.StatusOK, w.Code)
	sp := decode[map[string]any](t, w)
	assert.Equal(t, "mp3", sp["format"])
	assert.Equal(t, "Hello", sp["text"])
	assert.NotEmpty(t, sp["audioUrl"])

	w = doJSON(r, http.MethodPost, "/api/voice/synthesize", map[string]any{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Text is required", decode[map[string]any](t, w)["error"])

	req = httptest.NewRequest(http.MethodPost, "/api/voice/command", bytes.NewReader([]byte("raw audio")))
	req.Header.Set("Content-Type", "audio/webm")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[service.CommandResult](t, w)
	require.NotNil(t, res.Transcript)
	assert.Equal(t, ai.IntentCreateTask, res.Command.Intent)
	assert.True(t, res.Result.Success)
}

func TestAIEndpoints(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/api/ai/process", map[string]any{"text": "Show my tasks for this week"})
	require.Equal(t, http.StatusOK, w.Code)
	cmd := decode[ai.Command](t, w)
	assert.Equal(t, ai.IntentQueryTasks, cmd.Intent)
	assert.Equal(t, "week", cmd.Entity("timeframe"))

	w = doJSON(r, http.MethodPost, "/api/ai/process", map[string]any{"text": " "})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Command text is required", decode[map[string]any](t, w)["error"])

	w = doJSON(r, http.MethodPost, "/api/ai/chat", map[string]any{
		"message":             "Can you help me?",
		"conversationHistory": []map[string]string{{"role": "user", "content": "hi"}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	reply := decode[ai.ChatReply](t, w)
	assert.NotEmpty(t, reply.SuggestedActions)

	w = doJSON(r, http.MethodPost, "/api/ai/chat", map[string]any{"message": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/ai/command", map[string]any{"text": "Schedule a meeting tomorrow at 2pm"})
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[service.CommandResult](t, w)
	assert.Nil(t, res.Transcript)
	require.NotNil(t, res.Result.Task)
	assert.Equal(t, "14:00", res.Result.Task.Time)
}

func TestWebhookEndpoints(t *testing.T) {
	r, store := setupRouter(t)

	w := doJSON(r, http.MethodGet, "/api/webhooks/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]any](t, w)["status"])

	w = doJSON(r, http.MethodPost, "/api/webhooks/n8n", map[string]any{"data": map[string]any{}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Event type is required", decode[map[string]any](t, w)["error"])

	w = doJSON(r, http.MethodPost, "/api/webhooks/n8n", map[string]any{"event": "bogus"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Unknown event type", decode[map[string]any](t, w)["error"])

	w = doJSON(r, http.MethodPost, "/api/webhooks/n8n", map[string]any{"event": "productivity_insights", "data": map[string]any{"score": 7}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	require.Len(t, store.Activities(), 1)
	assert.Equal(t, "productivity_insights_received", store.Activities()[0].Action)

	w = doJSON(r, http.MethodPost, "/api/webhooks/n8n/trigger", map[string]any{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Workflow ID is required", decode[map[string]any](t, w)["error"])

	w = doJSON(r, http.MethodPost, "/api/webhooks/n8n/trigger", map[string]any{"workflowId": "daily-summary"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "daily-summary", decode[map[string]any](t, w)["workflowId"])

	w = doJSON(r, http.MethodGet, "/api/webhooks/n8n/executions/exec-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/webhooks/n8n/templates", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]automation.Template](t, w), 4)
}

func TestAgentEndpoints(t *testing.T) {
	r, store := setupRouter(t)
	today := time.Now().Format(time.DateOnly)
	for _, title := range []string{"Standup", "Review"} {
		doJSON(r, http.MethodPost, "/api/tasks", map[string]any{"title": title, "dueDate": today, "time": "09:00"})
	}

	w := doJSON(r, http.MethodGet, "/api/agent/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	sum := decode[map[string]any](t, w)
	assert.EqualValues(t, 2, sum["taskCount"])
	assert.Empty(t, store.Summaries())

	w = doJSON(r, http.MethodGet, "/api/agent/summary?date=bad", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/agent/summary", map[string]any{"date": today})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Len(t, store.Summaries(), 1)

	w = doJSON(r, http.MethodGet, "/api/agent/conflicts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	conflicts := decode[map[string][]map[string]any](t, w)["conflicts"]
	require.Len(t, conflicts, 1)
	assert.Equal(t, "time_overlap", conflicts[0]["conflictType"])

	w = doJSON(r, http.MethodGet, "/api/agent/reprioritize", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode[map[string]any](t, w), "suggestions")

	w = doJSON(r, http.MethodGet, "/api/agent/productivity", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decode[map[string]any](t, w)["totalTasks"])
}
