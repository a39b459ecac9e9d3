package logger

import (
	"github.com/google/wire"
	"github.com/ncobase/voxtask/config"
	"github.com/ncobase/voxtask/logging/observes"
	"github.com/ncobase/voxtask/version"
)

// ProviderSet is the wire provider set for the logger package
var ProviderSet = wire.NewSet(ProvideLogger)

// ProvideLogger initializes the standard logger and attaches the Sentry
// hook when a DSN is configured.
func ProvideLogger(cfg *config.Logger, obs *config.Observes) (*Logger, func(), error) {
	l := StdLogger()
	l.SetVersion(version.Version)

	cleanup, err := l.Init(cfg)
	if err != nil {
		return nil, nil, err
	}

	if obs != nil && obs.Sentry != nil && obs.Sentry.Endpoint != "" {
		flush, err := observes.NewSentry(&observes.SentryOptions{
			Dsn:         obs.Sentry.Endpoint,
			Name:        "voxtask",
			Release:     version.Version,
			Environment: obs.Sentry.Environment,
			SampleRate:  obs.Sentry.SampleRate,
		})
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		l.AddHook(NewSentryHook())
		inner := cleanup
		cleanup = func() {
			flush()
			inner()
		}
	}

	return l, cleanup, nil
}
