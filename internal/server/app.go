// Package server assembles the HTTP application.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/voxtask/config"
	"github.com/ncobase/voxtask/ecode"
	"github.com/ncobase/voxtask/internal/handler"
	"github.com/ncobase/voxtask/internal/service"
	"github.com/ncobase/voxtask/logging/logger"
	"github.com/ncobase/voxtask/net/resp"
	"github.com/ncobase/voxtask/validation/validator"
)

// App represents the main application.
type App struct {
	config  *config.Config
	logger  *logger.Logger
	handler *handler.Handler
	svc     *service.Service
	server  *http.Server
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config, logger *logger.Logger, h *handler.Handler, svc *service.Service) *App {
	switch cfg.RunMode {
	case gin.DebugMode, gin.TestMode, gin.ReleaseMode:
		gin.SetMode(cfg.RunMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}
	validator.RegisterGin()

	return &App{
		config:  cfg,
		logger:  logger,
		handler: h,
		svc:     svc,
	}
}

// Services exposes the business services for CLI commands.
func (a *App) Services() *service.Service {
	return a.svc
}

// Router builds the gin engine with middleware and every route.
func (a *App) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.CustomRecovery(a.recovery))
	router.Use(traceMiddleware())
	router.Use(a.loggerMiddleware())

	a.handler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		resp.Success(c.Writer, map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"dispatch":  a.svc.Command.DispatchState(),
		})
	})
	router.NoRoute(func(c *gin.Context) {
		resp.Fail(c.Writer, resp.NotFound(ecode.NotExist("Route")))
	})
	return router
}

// Run starts the application server and blocks until SIGINT or SIGTERM.
func (a *App) Run() error {
	addr := a.config.Server.Addr()
	a.server = &http.Server{
		Addr:         addr,
		Handler:      a.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info(context.Background(), "Starting server", "addr", addr, "app", a.config.AppName)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		a.logger.Error(context.Background(), "Server failed", "error", err)
		return err
	case <-quit:
	}

	a.logger.Info(context.Background(), "Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error(context.Background(), "Server forced to shutdown", "error", err)
		return err
	}

	a.logger.Info(context.Background(), "Server exited")
	return nil
}
