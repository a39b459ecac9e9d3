package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/voxtask/concurrency/worker"
	"github.com/ncobase/voxtask/config"
	"github.com/ncobase/voxtask/internal/ai"
	"github.com/ncobase/voxtask/internal/automation"
	"github.com/ncobase/voxtask/internal/data/memory"
	"github.com/ncobase/voxtask/internal/handler"
	"github.com/ncobase/voxtask/internal/service"
	"github.com/ncobase/voxtask/internal/voice"
	"github.com/ncobase/voxtask/logging/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	log := logger.NewLogger(&logs)
	pool := worker.NewPool(worker.DefaultConfig(), nil)
	pool.Start()
	t.Cleanup(func() { pool.Stop(context.Background()) })

	svc := service.NewService(&service.Deps{
		Store:       memory.New(),
		Assistant:   ai.NewFixed(),
		Transcriber: voice.NewFixed(),
		Speaker:     voice.NewFixed(),
		Trigger:     automation.NewNoop(),
		Pool:        pool,
		Voice:       &config.Voice{},
		Logger:      log,
	})
	cfg := &config.Config{AppName: "voxtask", RunMode: gin.TestMode, Server: &config.Server{Port: 3000}}
	return NewApp(cfg, log, handler.NewHandler(svc, log), svc), &logs
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)
	w := httptest.NewRecorder()
	app.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["timestamp"])
	assert.Equal(t, "idle", body["dispatch"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestTraceIDPropagates(t *testing.T) {
	app, logs := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("X-Request-ID", "trace-123")
	w := httptest.NewRecorder()
	app.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "trace-123", w.Header().Get("X-Request-ID"))
	assert.Contains(t, logs.String(), `"trace_id":"trace-123"`)
	assert.Contains(t, logs.String(), `"path":"/api/tasks"`)
}

func TestNotFoundAndRecovery(t *testing.T) {
	app, logs := newTestApp(t)
	r := app.Router()
	r.GET("/boom", func(*gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
	assert.Contains(t, logs.String(), "panic recovered")
}
