package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Refresher reloads the in-process taxonomy store.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Flusher drops the redis taxonomy levels.
type Flusher interface {
	Flush(ctx context.Context) error
}

// RefreshTaxonomy flushes the redis levels and reloads the store so edits made
// by another instance become visible.
func RefreshTaxonomy(ctx context.Context, store Refresher, cache Flusher, logger *zap.Logger) error {
	if cache != nil {
		if err := cache.Flush(ctx); err != nil {
			logger.Warn("taxonomy cache flush failed", zap.Error(err))
		}
	}
	start := time.Now()
	if err := store.Refresh(ctx); err != nil {
		logger.Error("taxonomy refresh failed", zap.Error(err))
		return err
	}
	logger.Info("taxonomy refreshed", zap.Duration("took", time.Since(start)))
	return nil
}

// StartScheduler runs RefreshTaxonomy on spec (standard cron syntax or
// descriptors such as "@every 15m"). Stop the returned cron on shutdown.
func StartScheduler(spec string, store Refresher, cache Flusher, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		_ = RefreshTaxonomy(ctx, store, cache, logger)
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
