package worker

import (
	"context"
	"time"

	"github.com/google/wire"
	"github.com/ncobase/voxtask/config"
	"github.com/ncobase/voxtask/logging/logger"
)

// ProviderSet is the wire provider set for the worker package.
var ProviderSet = wire.NewSet(ProvidePool)

// ProvidePool starts a pool sized from cfg that logs failed jobs.
// The cleanup drains the queue for up to 30 seconds.
func ProvidePool(cfg *config.Worker, log *logger.Logger) (*Pool, func(), error) {
	pc := DefaultConfig()
	if cfg != nil {
		pc = &Config{MaxWorkers: cfg.MaxWorkers, QueueSize: cfg.QueueSize, TaskTimeout: cfg.TaskTimeout}
	}
	if err := pc.Validate(); err != nil {
		return nil, nil, err
	}

	pool := NewPool(pc, func(ctx context.Context, name string, err error) {
		log.Error(ctx, "Background job failed", "job", name, "error", err)
	})
	pool.Start()

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		pool.Stop(ctx)
	}
	return pool, cleanup, nil
}
