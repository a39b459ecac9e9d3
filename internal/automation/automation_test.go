package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ncobase/voxtask/config"
	"github.com/ncobase/voxtask/logging/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func n8nServer(t *testing.T) (*N8n, *[]string) {
	t.Helper()
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		assert.Equal(t, "n8n-key", r.Header.Get("X-N8N-API-KEY"))
		switch {
		case r.URL.Path == "/webhook/plain":
			_, _ = w.Write([]byte("Workflow was started"))
		case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/webhook/"):
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			_ = json.NewEncoder(w).Encode(map[string]any{"received": body})
		case r.URL.Path == "/api/v1/executions/42":
			_, _ = w.Write([]byte(`{"id":"42","finished":true}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	n, err := NewN8n(&config.N8n{APIKey: "n8n-key", BaseURL: srv.URL + "/", Timeout: time.Second})
	require.NoError(t, err)
	return n, &calls
}

func TestN8nTriggerAndStatus(t *testing.T) {
	n, calls := n8nServer(t)
	ctx := context.Background()

	res, err := TriggerDailySummary(ctx, n, time.Date(2025, 3, 29, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	received := res["received"].(map[string]any)
	assert.Equal(t, "2025-03-29", received["date"])
	assert.Equal(t, true, received["manual"])

	_, err = TriggerVoiceCommand(ctx, n, VoiceCommand{Intent: "create_task", Transcript: "add a task"})
	require.NoError(t, err)

	st, err := n.Status(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, true, st["finished"])

	assert.Equal(t, []string{
		"POST /webhook/daily-summary",
		"POST /webhook/voice-command",
		"GET /api/v1/executions/42",
	}, *calls)
}

func TestN8nErrors(t *testing.T) {
	n, _ := n8nServer(t)
	ctx := context.Background()

	_, err := n.Trigger(ctx, "", nil)
	assert.ErrorIs(t, err, ErrWorkflowRequired)

	_, err = n.Status(ctx, "missing")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)

	res, err := n.Trigger(ctx, "plain", nil)
	require.NoError(t, err)
	assert.Equal(t, "Workflow was started", res["message"])
}

func TestNoop(t *testing.T) {
	res, err := NewNoop().Trigger(context.Background(), "task-reminder", nil)
	require.NoError(t, err)
	assert.Equal(t, "task-reminder", res["workflowId"])
	assert.True(t, strings.HasPrefix(res["executionId"].(string), "exec-"))
}

func TestTemplates(t *testing.T) {
	ids := make([]string, 0)
	for _, tpl := range Templates() {
		ids = append(ids, tpl.ID)
		assert.NotEmpty(t, tpl.Actions)
	}
	assert.Equal(t, []string{"daily-summary", "task-reminder", "task-creation", "task-completion"}, ids)
}

func TestNewTrigger(t *testing.T) {
	log := logger.NewLogger(&bytes.Buffer{})
	assert.IsType(t, &Noop{}, NewTrigger(&config.Automation{N8n: &config.N8n{}}, log))
	assert.IsType(t, &N8n{}, NewTrigger(&config.Automation{N8n: &config.N8n{BaseURL: "http://localhost:5678"}}, log))
}
