// Package handler provides the HTTP handlers of the voxtask API.
package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/ncobase/voxtask/ecode"
	"github.com/ncobase/voxtask/internal/service"
	"github.com/ncobase/voxtask/internal/task"
	"github.com/ncobase/voxtask/logging/logger"
	"github.com/ncobase/voxtask/net/resp"
	"github.com/ncobase/voxtask/validation/validator"
)

// ProviderSet is the wire provider set for the handler package.
var ProviderSet = wire.NewSet(NewHandler)

// Handler aggregates all HTTP handlers.
type Handler struct {
	Task    *TaskHandler
	Voice   *VoiceHandler
	AI      *AIHandler
	Webhook *WebhookHandler
	Agent   *AgentHandler
	logger  *logger.Logger
}

// NewHandler creates a new handler instance with all sub-handlers initialized.
func NewHandler(svc *service.Service, logger *logger.Logger) *Handler {
	return &Handler{
		Task:    &TaskHandler{svc: svc.Task, logger: logger},
		Voice:   &VoiceHandler{svc: svc.Voice, cmd: svc.Command, logger: logger},
		AI:      &AIHandler{svc: svc.AI, cmd: svc.Command, logger: logger},
		Webhook: &WebhookHandler{svc: svc.Webhook, logger: logger},
		Agent:   &AgentHandler{svc: svc.Agent, logger: logger},
		logger:  logger,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		tasks := api.Group("/tasks")
		{
			tasks.GET("", h.Task.List)
			tasks.POST("", h.Task.Create)
			tasks.GET("/date/:date", h.Task.ListForDate)
			tasks.GET("/:id", h.Task.Get)
			tasks.PUT("/:id", h.Task.Update)
			tasks.POST("/:id/complete", h.Task.Complete)
			tasks.DELETE("/:id", h.Task.Delete)
		}
		api.GET("/projects", h.Task.Projects)

		v := api.Group("/voice")
		{
			v.POST("/transcribe", h.Voice.Transcribe)
			v.POST("/synthesize", h.Voice.Synthesize)
			v.POST("/command", h.Voice.Command)
		}

		a := api.Group("/ai")
		{
			a.POST("/process", h.AI.Process)
			a.POST("/chat", h.AI.Chat)
			a.POST("/command", h.AI.Command)
		}

		wh := api.Group("/webhooks")
		{
			wh.GET("/health", h.Webhook.Health)
			wh.POST("/n8n", h.Webhook.Receive)
			wh.POST("/n8n/trigger", h.Webhook.Trigger)
			wh.GET("/n8n/executions/:id", h.Webhook.Status)
			wh.GET("/n8n/templates", h.Webhook.Templates)
		}

		ag := api.Group("/agent")
		{
			ag.GET("/summary", h.Agent.Summary)
			ag.POST("/summary", h.Agent.SaveSummary)
			ag.GET("/conflicts", h.Agent.Conflicts)
			ag.GET("/reprioritize", h.Agent.Reprioritize)
			ag.GET("/productivity", h.Agent.Productivity)
		}
	}
}

// fail writes the response for err. Validation problems become 400,
// unknown records 404 and everything else a logged 500 naming action.
func fail(c *gin.Context, log *logger.Logger, err error, action string) {
	var ve *task.ValidationError
	switch {
	case errors.As(err, &ve):
		var fields any
		if ve.Field != "" {
			fields = map[string]string{ve.Field: ve.Message}
		}
		resp.Fail(c.Writer, resp.BadRequest(ve.Message, fields))
	case errors.Is(err, task.ErrNotFound):
		resp.Fail(c.Writer, resp.NotFound(ecode.NotExist("Task")))
	default:
		log.Error(c.Request.Context(), "request failed", "action", action, "path", c.FullPath(), "error", err)
		resp.Fail(c.Writer, resp.InternalServer(ecode.Failed(action)))
	}
}

// badBody reports a request body that could not be bound.
func badBody(c *gin.Context, log *logger.Logger, err error) {
	log.Warn(c.Request.Context(), "invalid request", "error", err)
	if fields := validator.Messages(err); len(fields) > 0 {
		resp.Fail(c.Writer, resp.BadRequest(ecode.Text(ecode.ParamErr), fields))
		return
	}
	resp.Fail(c.Writer, resp.BadRequest("Invalid request body"))
}

// list keeps empty results encoding as [] rather than null.
func list[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
