package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/voxtask/internal/service"
	"github.com/ncobase/voxtask/logging/logger"
	"github.com/ncobase/voxtask/net/resp"
)

// AgentHandler exposes summaries and proactive suggestions.
type AgentHandler struct {
	svc    *service.AgentService
	logger *logger.Logger
}

type summaryRequest struct {
	Date string `json:"date" form:"date" binding:"omitempty,isodate"`
}

// Summary previews the daily summary for ?date= (default today).
func (h *AgentHandler) Summary(c *gin.Context) {
	sum, err := h.svc.DailySummary(c.Request.Context(), c.Query("date"), false)
	if err != nil {
		fail(c, h.logger, err, "generate daily summary")
		return
	}
	resp.Success(c.Writer, sum)
}

// SaveSummary generates and stores the daily summary.
func (h *AgentHandler) SaveSummary(c *gin.Context) {
	var req summaryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badBody(c, h.logger, err)
			return
		}
	}
	if req.Date == "" {
		req.Date = c.Query("date")
	}
	sum, err := h.svc.DailySummary(c.Request.Context(), req.Date, true)
	if err != nil {
		fail(c, h.logger, err, "generate daily summary")
		return
	}
	resp.WithStatusCode(c.Writer, http.StatusCreated, sum)
}

// Conflicts lists scheduling conflicts.
func (h *AgentHandler) Conflicts(c *gin.Context) {
	conflicts, err := h.svc.Conflicts(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err, "detect conflicts")
		return
	}
	resp.Success(c.Writer, map[string]any{"conflicts": list(conflicts)})
}

// Reprioritize lists priority suggestions.
func (h *AgentHandler) Reprioritize(c *gin.Context) {
	suggestions, err := h.svc.Reprioritize(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err, "generate reprioritization suggestions")
		return
	}
	resp.Success(c.Writer, map[string]any{"suggestions": list(suggestions)})
}

// Productivity reports productivity statistics.
func (h *AgentHandler) Productivity(c *gin.Context) {
	p, err := h.svc.Productivity(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err, "analyze productivity")
		return
	}
	resp.Success(c.Writer, p)
}
