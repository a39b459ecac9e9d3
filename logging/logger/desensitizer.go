package logger

import (
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

const fixedMask = "********"

// sensitiveFields are masked by key name, matched case-insensitively as substrings.
var sensitiveFields = []string{"api_key", "apikey", "token", "authorization", "secret", "password"}

// bearer tokens and long opaque keys inside free text
var valuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9._\-]+`),
	regexp.MustCompile(`\b(?:key|pat|secret_|ntn_)[A-Za-z0-9._\-]{16,}\b`),
}

// Desensitizer masks credential-looking values in log fields so upstream
// keys never reach log sinks.
type Desensitizer struct {
	fields   []string
	patterns []*regexp.Regexp
}

// NewDesensitizer creates a desensitizer with the default rules plus extra field names.
func NewDesensitizer(extraFields ...string) *Desensitizer {
	return &Desensitizer{
		fields:   append(append([]string{}, sensitiveFields...), extraFields...),
		patterns: valuePatterns,
	}
}

// DesensitizeFields returns a copy of fields with sensitive values masked.
func (d *Desensitizer) DesensitizeFields(fields logrus.Fields) logrus.Fields {
	result := make(logrus.Fields, len(fields))
	for key, value := range fields {
		switch {
		case d.isSensitiveField(key):
			result[key] = fixedMask
		default:
			if s, ok := value.(string); ok {
				result[key] = d.desensitizeString(s)
			} else {
				result[key] = value
			}
		}
	}
	return result
}

func (d *Desensitizer) isSensitiveField(name string) bool {
	lower := strings.ToLower(name)
	for _, f := range d.fields {
		if strings.Contains(lower, f) {
			return true
		}
	}
	return false
}

func (d *Desensitizer) desensitizeString(str string) string {
	for _, pattern := range d.patterns {
		str = pattern.ReplaceAllString(str, fixedMask)
	}
	return str
}

// desensitizeHook applies a Desensitizer to every entry before it is written.
type desensitizeHook struct {
	d *Desensitizer
}

func (h *desensitizeHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *desensitizeHook) Fire(entry *logrus.Entry) error {
	entry.Data = h.d.DesensitizeFields(entry.Data)
	entry.Message = h.d.desensitizeString(entry.Message)
	return nil
}
