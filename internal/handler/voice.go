package handler

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/ncobase/voxtask/internal/service"
	"github.com/ncobase/voxtask/internal/task"
	"github.com/ncobase/voxtask/internal/voice"
	"github.com/ncobase/voxtask/logging/logger"
	"github.com/ncobase/voxtask/net/resp"
	"github.com/ncobase/voxtask/validation/validator"
)

// maxAudioBytes matches the Whisper upload limit.
const maxAudioBytes = 25 << 20

// VoiceHandler handles speech endpoints.
type VoiceHandler struct {
	svc    *service.VoiceService
	cmd    *service.CommandService
	logger *logger.Logger
}

type synthesizeRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

type audioRequest struct {
	Audio       string `json:"audio"`
	ContentType string `json:"contentType"`
}

var errNoAudio = &task.ValidationError{Field: "audio", Message: "Audio data is required"}

// readAudio accepts a multipart "audio" file, a JSON body with base64
// audio, or the raw request body.
func readAudio(c *gin.Context) (*voice.Audio, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAudioBytes)

	switch c.ContentType() {
	case binding.MIMEMultipartPOSTForm:
		fh, err := c.FormFile("audio")
		if err != nil {
			return nil, errNoAudio
		}
		if !validator.IsAudioFile(fh.Filename) && !validator.IsAudioContentType(fh.Header.Get("Content-Type")) {
			return nil, &task.ValidationError{Field: "audio", Message: "Unsupported audio format"}
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}
		return &voice.Audio{Data: data, Filename: fh.Filename, ContentType: fh.Header.Get("Content-Type")}, nil

	case binding.MIMEJSON:
		var req audioRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Audio == "" {
			return nil, errNoAudio
		}
		raw := req.Audio
		if i := strings.Index(raw, ";base64,"); i >= 0 {
			if req.ContentType == "" {
				req.ContentType = strings.TrimPrefix(raw[:i], "data:")
			}
			raw = raw[i+len(";base64,"):]
		}
		data, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, &task.ValidationError{Field: "audio", Message: "Audio must be base64 encoded"}
		}
		return &voice.Audio{Data: data, ContentType: req.ContentType}, nil
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &task.ValidationError{Field: "audio", Message: "Audio file is too large"}
		}
		return nil, err
	}
	if len(data) == 0 {
		return nil, errNoAudio
	}
	return &voice.Audio{Data: data, ContentType: c.GetHeader("Content-Type")}, nil
}

// Transcribe converts uploaded audio to text.
// @Summary Transcribe audio
// @Tags voice
// @Accept multipart/form-data,application/json,audio/webm
// @Success 200 {object} voice.Transcript
// @Router /api/voice/transcribe [post]
func (h *VoiceHandler) Transcribe(c *gin.Context) {
	audio, err := readAudio(c)
	if err != nil {
		fail(c, h.logger, err, "transcribe audio")
		return
	}
	tr, err := h.svc.Transcribe(c.Request.Context(), audio)
	if err != nil {
		fail(c, h.logger, err, "transcribe audio")
		return
	}
	resp.Success(c.Writer, tr)
}

// Synthesize converts text to speech.
func (h *VoiceHandler) Synthesize(c *gin.Context) {
	var req synthesizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, h.logger, err)
		return
	}
	sp, err := h.svc.Synthesize(c.Request.Context(), req.Text, req.Voice)
	if err != nil {
		fail(c, h.logger, err, "synthesize speech")
		return
	}
	resp.Success(c.Writer, sp)
}

// Command transcribes audio and runs it as a command.
func (h *VoiceHandler) Command(c *gin.Context) {
	audio, err := readAudio(c)
	if err != nil {
		fail(c, h.logger, err, "process voice command")
		return
	}
	res, err := h.cmd.RunVoice(c.Request.Context(), audio)
	if err != nil {
		fail(c, h.logger, err, "process voice command")
		return
	}
	resp.Success(c.Writer, res)
}
