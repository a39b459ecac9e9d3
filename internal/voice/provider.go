package voice

import (
	"context"

	"github.com/google/wire"
	"github.com/ncobase/voxtask/config"
	"github.com/ncobase/voxtask/logging/logger"
)

// ProviderSet is the wire provider set for the voice package.
var ProviderSet = wire.NewSet(NewTranscriber, NewSpeaker)

func forcedFixed(cfg *config.Voice) bool {
	return cfg == nil || cfg.Provider == config.ProviderFixed
}

// NewTranscriber returns Whisper when a key is configured, otherwise the
// fixed double.
func NewTranscriber(cfg *config.Voice, log *logger.Logger) Transcriber {
	ctx := context.Background()
	if !forcedFixed(cfg) {
		if w, err := NewWhisper(cfg.Whisper, cfg.Timeout); err == nil {
			log.Info(ctx, "Transcriber selected", "provider", "whisper")
			return w
		}
	}
	log.Info(ctx, "Transcriber selected", "provider", config.ProviderFixed)
	return NewFixed()
}

// NewSpeaker returns the HTTP speaker when the TTS endpoint is configured,
// otherwise the fixed double.
func NewSpeaker(cfg *config.Voice, log *logger.Logger) Speaker {
	ctx := context.Background()
	if !forcedFixed(cfg) {
		if s, err := NewHTTPSpeaker(cfg.TTS, cfg.Timeout); err == nil {
			log.Info(ctx, "Speaker selected", "provider", "http")
			return s
		}
	}
	log.Info(ctx, "Speaker selected", "provider", config.ProviderFixed)
	return NewFixed()
}
