package cron

import (
	"context"
	"fmt"
	"time"

	"marketplace/config"
	"marketplace/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Verifier recomputes a professional's verification status.
type Verifier interface {
	RecomputeVerification(ctx context.Context, professionalID string) (string, error)
}

// RedisOpt is the asynq connection for the queue database.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewMux registers the task handlers.
func NewMux(v Verifier, logger *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeVerificationDecided, handleVerificationDecided(v, logger))
	return mux
}

// StartWorker runs the asynq server in the background, retrying startup with
// a growing delay. The returned server is shut down by the caller.
func StartWorker(v Verifier, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(RedisOpt(), asynq.Config{
		Concurrency: 10,
		Queues:      map[string]int{"default": 1},
		Logger:      logger.Sugar(),
	})
	mux := NewMux(v, logger)

	go func() {
		logger.Info("starting verification worker")
		const maxAttempts = 5
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Error("worker failed to start", zap.Int("attempt", attempt), zap.Error(err))
			if attempt == maxAttempts {
				logger.Error("worker gave up; verification decisions will be recomputed inline")
				return
			}
			time.Sleep(time.Duration(attempt*2) * time.Second)
		}
	}()
	return srv
}

func handleVerificationDecided(v Verifier, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseVerificationDecided(task)
		if err != nil {
			logger.Error("invalid verification task payload", zap.Error(err))
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}
		if p.ProfessionalID == "" {
			return fmt.Errorf("%w: missing professional id", asynq.SkipRetry)
		}
		status, err := v.RecomputeVerification(ctx, p.ProfessionalID)
		if err != nil {
			logger.Warn("verification recompute failed",
				zap.String("professionalID", p.ProfessionalID), zap.Error(err))
			return err
		}
		logger.Debug("verification task done",
			zap.String("documentID", p.DocumentID), zap.String("status", status))
		return nil
	}
}
