// Package logger wraps logrus with context aware, key/value style methods.
//
//	logger.Info(ctx, "Task created", "task_id", t.ID)
//	logger.Error(ctx, "Failed to fetch tasks", "error", err)
//
// The trace id and build version carried by ctx are added to every entry.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ncobase/voxtask/config"
	"github.com/ncobase/voxtask/ctxutil"
	"github.com/sirupsen/logrus"
)

// Field keys
const (
	TraceIDKey = "trace_id"
	VersionKey = "version"
)

// Logger is a logrus logger with context aware helpers.
type Logger struct {
	*logrus.Logger
	mu      sync.Mutex
	version string
	logFile *os.File
	logPath string
	stop    chan struct{}
}

var (
	stdLogger *Logger
	once      sync.Once
)

// StdLogger returns the process wide logger.
func StdLogger() *Logger {
	once.Do(func() {
		stdLogger = NewLogger(os.Stdout)
	})
	return stdLogger
}

// NewLogger creates a standalone JSON logger writing to out.
func NewLogger(out io.Writer) *Logger {
	l := &Logger{Logger: logrus.New()}
	l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	l.Logger.SetOutput(out)
	l.Logger.AddHook(&desensitizeHook{d: NewDesensitizer()})
	return l
}

// SetVersion sets the version for logging
func (l *Logger) SetVersion(v string) {
	l.version = v
}

// Init applies cfg and returns a cleanup that closes any log file.
func (l *Logger) Init(c *config.Logger) (func(), error) {
	if c == nil {
		return func() {}, nil
	}
	l.SetLevel(logrus.Level(c.Level))

	switch c.Format {
	case "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	}

	switch c.Output {
	case "stderr":
		l.Logger.SetOutput(os.Stderr)
	case "file":
		l.logPath = c.OutputFile
		if l.logPath == "" {
			l.logPath = filepath.Join(c.Path, "voxtask.log")
		}
		if err := l.setupLogFile(); err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l.stop = make(chan struct{})
		go l.periodicLogRotation()
	default:
		l.Logger.SetOutput(os.Stdout)
	}

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.stop != nil {
			close(l.stop)
			l.stop = nil
		}
		if l.logFile != nil {
			_ = l.logFile.Close()
			l.logFile = nil
		}
	}, nil
}

func (l *Logger) setupLogFile() error {
	if err := os.MkdirAll(filepath.Dir(l.logPath), 0o755); err != nil {
		return err
	}
	return l.rotateLog()
}

func (l *Logger) rotateLog() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	logFilePath := fmt.Sprintf("%s.%s.log", strings.TrimSuffix(l.logPath, ".log"), time.Now().Format("2006-01-02"))
	f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}

	if l.logFile != nil {
		_ = l.logFile.Close()
	}
	l.logFile = f
	l.Logger.SetOutput(f)
	return nil
}

func (l *Logger) periodicLogRotation() {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := l.rotateLog(); err != nil {
				l.Logger.Errorf("Error rotating log: %v", err)
			}
		case <-l.stop:
			return
		}
	}
}

// entryFromContext creates a new log entry with fields from context
func (l *Logger) entryFromContext(ctx context.Context) *logrus.Entry {
	fields := logrus.Fields{}
	if ctx != nil {
		if traceID := ctxutil.GetTraceID(ctx); traceID != "" {
			fields[TraceIDKey] = traceID
		}
	}
	if l.version != "" {
		fields[VersionKey] = l.version
	}
	return l.WithFields(fields).WithContext(ctx)
}

// keyvalFields turns alternating key/value arguments into logrus fields.
// An error value under "error" is stored under logrus.ErrorKey.
func keyvalFields(keyvals []any) logrus.Fields {
	fields := make(logrus.Fields, len(keyvals)/2)
	for i := 0; i < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			key = fmt.Sprint(keyvals[i])
		}
		if i+1 >= len(keyvals) {
			fields[key] = "(MISSING)"
			break
		}
		val := keyvals[i+1]
		if err, isErr := val.(error); isErr && key == "error" {
			fields[logrus.ErrorKey] = err
			continue
		}
		fields[key] = val
	}
	return fields
}

func (l *Logger) log(ctx context.Context, level logrus.Level, msg string, keyvals ...any) {
	entry := l.entryFromContext(ctx)
	if len(keyvals) > 0 {
		entry = entry.WithFields(keyvalFields(keyvals))
	}
	entry.Log(level, msg)
}

func (l *Logger) Debug(ctx context.Context, msg string, keyvals ...any) {
	l.log(ctx, logrus.DebugLevel, msg, keyvals...)
}
func (l *Logger) Info(ctx context.Context, msg string, keyvals ...any) {
	l.log(ctx, logrus.InfoLevel, msg, keyvals...)
}
func (l *Logger) Warn(ctx context.Context, msg string, keyvals ...any) {
	l.log(ctx, logrus.WarnLevel, msg, keyvals...)
}
func (l *Logger) Error(ctx context.Context, msg string, keyvals ...any) {
	l.log(ctx, logrus.ErrorLevel, msg, keyvals...)
}

func (l *Logger) Infof(ctx context.Context, format string, args ...any) {
	l.entryFromContext(ctx).Infof(format, args...)
}
func (l *Logger) Errorf(ctx context.Context, format string, args ...any) {
	l.entryFromContext(ctx).Errorf(format, args...)
}

// SetOutput sets the output destination for the logger
func (l *Logger) SetOutput(out io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Logger.SetOutput(out)
}

// Package level helpers delegate to StdLogger.

func SetVersion(v string)                                   { StdLogger().SetVersion(v) }
func New(c *config.Logger) (func(), error)                  { return StdLogger().Init(c) }
func Debug(ctx context.Context, msg string, keyvals ...any) { StdLogger().Debug(ctx, msg, keyvals...) }
func Info(ctx context.Context, msg string, keyvals ...any)  { StdLogger().Info(ctx, msg, keyvals...) }
func Warn(ctx context.Context, msg string, keyvals ...any)  { StdLogger().Warn(ctx, msg, keyvals...) }
func Error(ctx context.Context, msg string, keyvals ...any) { StdLogger().Error(ctx, msg, keyvals...) }
