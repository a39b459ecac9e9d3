package service

import (
	"context"
	"strings"

	"github.com/ncobase/voxtask/config"
	"github.com/ncobase/voxtask/internal/task"
	"github.com/ncobase/voxtask/internal/voice"
	"github.com/ncobase/voxtask/logging/logger"
)

// VoiceService wraps transcription and speech synthesis.
type VoiceService struct {
	transcriber  voice.Transcriber
	speaker      voice.Speaker
	defaultVoice string
	feedback     bool
	logger       *logger.Logger
}

// NewVoiceService creates a new voice service.
func NewVoiceService(tr voice.Transcriber, sp voice.Speaker, cfg *config.Voice, logger *logger.Logger) *VoiceService {
	s := &VoiceService{transcriber: tr, speaker: sp, logger: logger}
	if cfg != nil {
		s.defaultVoice = cfg.DefaultVoice
		s.feedback = cfg.FeedbackEnabled
	}
	return s
}

// SpeechResult is the response of POST /api/voice/synthesize.
type SpeechResult struct {
	voice.Speech
	Text string `json:"text"`
}

// Transcribe converts audio to text.
func (s *VoiceService) Transcribe(ctx context.Context, audio *voice.Audio) (*voice.Transcript, error) {
	if audio == nil || len(audio.Data) == 0 {
		return nil, &task.ValidationError{Field: "audio", Message: "Audio data is required"}
	}
	s.logger.Info(ctx, "Transcribing audio", "bytes", len(audio.Data), "content_type", audio.ContentType)
	return s.transcriber.Transcribe(ctx, audio)
}

// Synthesize converts text to speech with the given or default voice.
func (s *VoiceService) Synthesize(ctx context.Context, text, name string) (*SpeechResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &task.ValidationError{Field: "text", Message: "Text is required"}
	}
	if name == "" {
		name = s.defaultVoice
	}
	sp, err := s.speaker.Synthesize(ctx, text, name)
	if err != nil {
		return nil, err
	}
	return &SpeechResult{Speech: *sp, Text: text}, nil
}

// Feedback speaks text when voice feedback is enabled and returns the
// audio URL, or "" when disabled or synthesis failed.
func (s *VoiceService) Feedback(ctx context.Context, text string) string {
	if !s.feedback || text == "" {
		return ""
	}
	sp, err := s.Synthesize(ctx, text, "")
	if err != nil {
		s.logger.Warn(ctx, "voice feedback failed", "error", err)
		return ""
	}
	return sp.AudioURL
}
