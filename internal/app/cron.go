package app

import (
	"context"
	"time"

	"github.com/postwave/composer-core/internal/modules/generation"
	"github.com/postwave/composer-core/internal/modules/publish"
	pkgcron "github.com/postwave/composer-core/internal/pkg/cron"
	"github.com/postwave/composer-core/internal/pkg/taskqueue"
	"go.uber.org/zap"
)

// registerCronJobs registers all scheduled background jobs.
func (a *App) registerCronJobs(genSvc *generation.Service, pubSvc *publish.Service, taskSvc *taskqueue.Service) {
	cronLogger := a.logger.Named("CronService")

	dispatchEvery := time.Duration(a.cfg.LinkedIn.DispatchIntervalSec) * time.Second
	if dispatchEvery <= 0 {
		dispatchEvery = time.Minute
	}

	a.sched.Register(pkgcron.Job{
		Name:        "dispatch_scheduled_posts",
		Description: "publish scheduled posts whose time has come",
		Interval:    dispatchEvery,
		Fn: func(ctx context.Context) error {
			n, err := pubSvc.DispatchDue(ctx)
			if err != nil {
				cronLogger.Warn("scheduled dispatch failed", zap.Error(err))
				return err
			}
			if n > 0 {
				cronLogger.Info("dispatched scheduled posts", zap.Int("count", n))
			}
			return nil
		},
	})

	a.sched.Register(pkgcron.Job{
		Name:        "suggestions_worker",
		Description: "drain pending suggestion generation tasks",
		Interval:    5 * time.Second,
		Fn: func(ctx context.Context) error {
			for {
				processed, err := genSvc.ProcessNextSuggestions(ctx)
				if err != nil {
					return err
				}
				if !processed {
					return nil
				}
			}
		},
	})

	a.sched.Register(pkgcron.Job{
		Name:        "cleanup_tasks",
		Description: "delete finished queue tasks older than a day",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			cutoff := time.Now().Add(-24 * time.Hour).UnixMilli()
			return taskSvc.DeleteCompleted(ctx, cutoff)
		},
	})
}
