//go:build wireinject
// +build wireinject

package server

import (
	"github.com/google/wire"
	"github.com/ncobase/voxtask/concurrency/worker"
	"github.com/ncobase/voxtask/config"
	"github.com/ncobase/voxtask/internal/ai"
	"github.com/ncobase/voxtask/internal/automation"
	"github.com/ncobase/voxtask/internal/data"
	"github.com/ncobase/voxtask/internal/handler"
	"github.com/ncobase/voxtask/internal/service"
	"github.com/ncobase/voxtask/internal/voice"
	"github.com/ncobase/voxtask/logging/logger"
)

// InitializeApp wires up the entire application with all dependencies.
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	panic(wire.Build(
		config.ProviderSet,
		logger.ProviderSet,
		worker.ProviderSet,
		data.ProviderSet,
		ai.ProviderSet,
		voice.ProviderSet,
		automation.ProviderSet,
		service.ProviderSet,
		handler.ProviderSet,
		NewApp,
	))
}
