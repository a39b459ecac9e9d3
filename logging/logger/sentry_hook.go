package logger

import (
	"errors"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// SentryHook forwards error level entries to Sentry.
type SentryHook struct {
	hub     *sentry.Hub
	timeout time.Duration
}

// NewSentryHook returns a hook bound to the current Sentry hub.
func NewSentryHook() *SentryHook {
	return &SentryHook{hub: sentry.CurrentHub(), timeout: 2 * time.Second}
}

func (h *SentryHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel}
}

func (h *SentryHook) Fire(entry *logrus.Entry) error {
	hub := h.hub.Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentryLevel(entry.Level))
		for k, v := range entry.Data {
			if k == logrus.ErrorKey {
				continue
			}
			scope.SetExtra(k, v)
		}
		if traceID, ok := entry.Data[TraceIDKey].(string); ok {
			scope.SetTag(TraceIDKey, traceID)
		}

		var err error
		if e, ok := entry.Data[logrus.ErrorKey].(error); ok {
			err = e
		}
		if err != nil {
			hub.CaptureException(errors.Join(errors.New(entry.Message), err))
		} else {
			hub.CaptureMessage(entry.Message)
		}
	})
	if entry.Level <= logrus.FatalLevel {
		hub.Flush(h.timeout)
	}
	return nil
}

func sentryLevel(level logrus.Level) sentry.Level {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel:
		return sentry.LevelFatal
	case logrus.ErrorLevel:
		return sentry.LevelError
	case logrus.WarnLevel:
		return sentry.LevelWarning
	default:
		return sentry.LevelInfo
	}
}
