package automation

import (
	"context"

	"github.com/google/wire"
	"github.com/ncobase/voxtask/config"
	"github.com/ncobase/voxtask/logging/logger"
)

// ProviderSet is the wire provider set for the automation package.
var ProviderSet = wire.NewSet(NewTrigger)

// NewTrigger returns the n8n client when a base URL is configured,
// otherwise Noop.
func NewTrigger(cfg *config.Automation, log *logger.Logger) Trigger {
	ctx := context.Background()
	if cfg != nil {
		if n, err := NewN8n(cfg.N8n); err == nil {
			log.Info(ctx, "Automation selected", "provider", "n8n", "base_url", n.baseURL)
			return n
		}
	}
	log.Info(ctx, "Automation selected", "provider", "noop")
	return NewNoop()
}
