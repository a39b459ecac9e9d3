package config

import "github.com/google/wire"

// ProviderSet extracts the sub-configurations from an injected *Config.
//
//	wire.Build(
//	    config.ProviderSet,
//	    // ... other providers
//	)
var ProviderSet = wire.NewSet(
	ProvideServerConfig,
	ProvideLoggerConfig,
	ProvideDataConfig,
	ProvideAIConfig,
	ProvideVoiceConfig,
	ProvideAutomationConfig,
	ProvideWorkerConfig,
	ProvideObservesConfig,
)

// ProvideServerConfig provides the HTTP server configuration.
func ProvideServerConfig(cfg *Config) *Server { return cfg.Server }

// ProvideLoggerConfig provides the logger configuration.
func ProvideLoggerConfig(cfg *Config) *Logger { return cfg.Logger }

// ProvideDataConfig provides the store selection.
func ProvideDataConfig(cfg *Config) *Data { return cfg.Data }

// ProvideAIConfig provides the AI capability configuration.
func ProvideAIConfig(cfg *Config) *AI { return cfg.AI }

// ProvideVoiceConfig provides the voice capability configuration.
func ProvideVoiceConfig(cfg *Config) *Voice { return cfg.Voice }

// ProvideAutomationConfig provides the n8n configuration.
func ProvideAutomationConfig(cfg *Config) *Automation { return cfg.Automation }

// ProvideWorkerConfig provides the background pool configuration.
func ProvideWorkerConfig(cfg *Config) *Worker { return cfg.Worker }

// ProvideObservesConfig provides the observability configuration.
func ProvideObservesConfig(cfg *Config) *Observes { return cfg.Observes }
