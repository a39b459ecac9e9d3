package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/voxtask/ctxutil"
	"github.com/ncobase/voxtask/net/resp"
)

// traceMiddleware assigns every request a trace id, honouring an inbound
// X-Request-ID, and echoes it on the response.
func traceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if id := c.GetHeader(ctxutil.TraceHeader); id != "" {
			ctx = ctxutil.SetTraceID(ctx, id)
		}
		ctx, traceID := ctxutil.EnsureTraceID(ctx)
		ctx = ctxutil.SetClientIP(ctx, c.ClientIP())
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(ctxutil.TraceIDKey), traceID)
		c.Header(ctxutil.TraceHeader, traceID)
		c.Next()
	}
}

// loggerMiddleware logs one line per request.
func (a *App) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		log := a.logger.Info
		if status >= 500 {
			log = a.logger.Error
		}
		log(c.Request.Context(), "HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"duration", time.Since(start).String(),
			"ip", c.ClientIP(),
		)
	}
}

// recovery logs the panic and answers with the canned 500 body.
func (a *App) recovery(c *gin.Context, err any) {
	a.logger.Error(c.Request.Context(), "panic recovered", "panic", err, "path", c.Request.URL.Path)
	resp.Fail(c.Writer, resp.InternalServer("Internal server error"))
	c.Abort()
}
