package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ncobase/voxtask/ctxutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestKeyValueFieldsAndTraceID(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)
	l.SetVersion("1.0.0")

	ctx := ctxutil.SetTraceID(context.Background(), "trace-1")
	l.Info(ctx, "Task created", "task_id", "rec1", "provider", "airtable")

	m := decodeLine(t, &buf)
	assert.Equal(t, "Task created", m["msg"])
	assert.Equal(t, "rec1", m["task_id"])
	assert.Equal(t, "airtable", m["provider"])
	assert.Equal(t, "trace-1", m[TraceIDKey])
	assert.Equal(t, "1.0.0", m[VersionKey])
}

func TestErrorValueUsesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.Error(context.Background(), "Failed to fetch tasks", "error", errors.New("boom"), "dangling")

	m := decodeLine(t, &buf)
	assert.Equal(t, "boom", m[logrus.ErrorKey])
	assert.Equal(t, "(MISSING)", m["dangling"])
	assert.Equal(t, "error", m["level"])
}

func TestSensitiveFieldsAreMasked(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.Info(context.Background(), "calling upstream",
		"api_key", "keyABCDEF1234567890",
		"header", "Bearer abc.def.ghi",
		"table", "Tasks")

	m := decodeLine(t, &buf)
	assert.Equal(t, fixedMask, m["api_key"])
	assert.NotContains(t, m["header"], "abc.def.ghi")
	assert.Equal(t, "Tasks", m["table"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)
	l.SetLevel(logrus.WarnLevel)

	l.Info(context.Background(), "hidden")
	assert.Zero(t, buf.Len())

	l.Warn(context.Background(), "shown")
	assert.NotZero(t, buf.Len())
}
