package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ncobase/voxtask/internal/service"
	"github.com/ncobase/voxtask/logging/logger"
	"github.com/ncobase/voxtask/net/resp"
)

// WebhookHandler handles n8n callbacks and workflow triggers.
type WebhookHandler struct {
	svc    *service.WebhookService
	logger *logger.Logger
}

// Health reports that the webhook endpoint is reachable.
func (h *WebhookHandler) Health(c *gin.Context) {
	resp.Success(c.Writer, map[string]string{"status": "ok", "message": "Webhook endpoint is healthy"})
}

// Receive handles an inbound n8n event.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var ev service.WebhookEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		badBody(c, h.logger, err)
		return
	}
	h.logger.Info(c.Request.Context(), "Received webhook from n8n", "event", ev.Event)
	if err := h.svc.Handle(c.Request.Context(), &ev); err != nil {
		fail(c, h.logger, err, "process webhook")
		return
	}
	resp.Success(c.Writer, map[string]bool{"success": true})
}

// Trigger starts an n8n workflow.
func (h *WebhookHandler) Trigger(c *gin.Context) {
	var req service.TriggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, h.logger, err)
		return
	}
	res, err := h.svc.Trigger(c.Request.Context(), &req)
	if err != nil {
		fail(c, h.logger, err, "trigger workflow")
		return
	}
	resp.Success(c.Writer, res)
}

// Status returns an execution record.
func (h *WebhookHandler) Status(c *gin.Context) {
	res, err := h.svc.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.logger, err, "get workflow status")
		return
	}
	resp.Success(c.Writer, res)
}

// Templates lists the built-in workflow templates.
func (h *WebhookHandler) Templates(c *gin.Context) {
	resp.Success(c.Writer, h.svc.Templates())
}
