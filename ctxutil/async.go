package ctxutil

import (
	"context"
	"time"
)

const (
	// DefaultAsyncTimeout is the default timeout for async operations
	DefaultAsyncTimeout = 5 * time.Second
)

// WithAsyncContext derives a context for work that outlives the request.
// It keeps the parent's values (trace id) but not its cancellation.
func WithAsyncContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout == 0 {
		timeout = DefaultAsyncTimeout
	}
	return context.WithTimeout(context.WithoutCancel(parent), timeout)
}
