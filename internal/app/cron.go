package app

import (
	"context"
	"time"

	pkgcron "github.com/folio-space/core/internal/pkg/cron"
	sessionpkg "github.com/folio-space/core/internal/pkg/session"
	"go.uber.org/zap"
)

func (a *App) registerCronJobs() {
	a.sched.Register(pkgcron.Job{
		Name:        "purge_stale_sessions",
		Description: "delete expired and revoked login sessions",
		Interval:    6 * time.Hour,
		Fn: func(ctx context.Context) error {
			n, err := sessionpkg.PurgeStale(a.db.WithContext(ctx), time.Now().Add(-24*time.Hour))
			if err != nil {
				return err
			}
			if n > 0 {
				a.logger.Info("purged stale sessions", zap.Int64("count", n))
			}
			return nil
		},
	})

	a.sched.Register(pkgcron.Job{
		Name:        "sweep_orphan_uploads",
		Description: "remove uploads that were never bound to an entity",
		Interval:    time.Hour,
		Fn: func(ctx context.Context) error {
			n, err := a.files.SweepOrphans(ctx, time.Now().Add(-time.Hour))
			if err != nil {
				return err
			}
			if n > 0 {
				a.logger.Info("swept orphan uploads", zap.Int("count", n))
			}
			return nil
		},
	})
}
