package ai

import (
	"context"

	"github.com/google/wire"
	"github.com/ncobase/voxtask/config"
	"github.com/ncobase/voxtask/logging/logger"
)

// ProviderSet is the wire provider set for the ai package.
var ProviderSet = wire.NewSet(NewAssistant)

// NewAssistant returns Gemini when it is selected or a key is configured
// in auto mode, otherwise the fixed double.
func NewAssistant(cfg *config.AI, log *logger.Logger) Assistant {
	ctx := context.Background()
	if cfg == nil || cfg.Provider == config.ProviderFixed {
		log.Info(ctx, "AI assistant selected", "provider", config.ProviderFixed)
		return NewFixed()
	}

	g, err := NewGemini(cfg.Gemini, cfg.Timeout)
	if err != nil {
		if cfg.Provider == config.ProviderGemini {
			log.Warn(ctx, "Gemini unavailable, using fixed responses", "error", err)
		}
		log.Info(ctx, "AI assistant selected", "provider", config.ProviderFixed)
		return NewFixed()
	}
	log.Info(ctx, "AI assistant selected", "provider", config.ProviderGemini, "model", g.model)
	return g
}
