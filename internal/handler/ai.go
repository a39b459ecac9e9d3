package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ncobase/voxtask/internal/service"
	"github.com/ncobase/voxtask/logging/logger"
	"github.com/ncobase/voxtask/net/resp"
)

// AIHandler handles intent parsing, chat and text commands.
type AIHandler struct {
	svc    *service.AIService
	cmd    *service.CommandService
	logger *logger.Logger
}

type textRequest struct {
	Text string `json:"text"`
}

// Process parses a command without executing it.
func (h *AIHandler) Process(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, h.logger, err)
		return
	}
	cmd, err := h.svc.Process(c.Request.Context(), req.Text)
	if err != nil {
		fail(c, h.logger, err, "process command")
		return
	}
	resp.Success(c.Writer, cmd)
}

// Chat answers a chat message.
func (h *AIHandler) Chat(c *gin.Context) {
	var req service.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, h.logger, err)
		return
	}
	reply, err := h.svc.Chat(c.Request.Context(), &req)
	if err != nil {
		fail(c, h.logger, err, "get chatbot response")
		return
	}
	resp.Success(c.Writer, reply)
}

// Command parses and executes a text command.
func (h *AIHandler) Command(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, h.logger, err)
		return
	}
	res, err := h.cmd.RunText(c.Request.Context(), req.Text)
	if err != nil {
		fail(c, h.logger, err, "process command")
		return
	}
	resp.Success(c.Writer, res)
}
