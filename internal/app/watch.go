package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"hargaemas/internal/logger"
)

// RunWatch runs both acquisition paths on their cron schedules until ctx
// is cancelled. Jobs are serialized with a mutex so a slow browser
// session never overlaps a UBS fetch writing to the same process logs.
func (a *App) RunWatch(ctx context.Context) error {
	watch := a.cfg.Watch
	if !watch.Pegadaian.Enabled && !watch.UBS.Enabled {
		return fmt.Errorf("watch mode needs at least one schedule enabled")
	}

	// pick up proxy list edits while the daemon is running
	a.registry.Watch()

	var mu sync.Mutex
	c := cron.New(cron.WithLocation(a.loc))

	if watch.Pegadaian.Enabled {
		if _, err := c.AddFunc(watch.Pegadaian.Cron, func() {
			mu.Lock()
			defer mu.Unlock()
			if err := a.RunPegadaian(ctx); err != nil {
				logger.Errorf("scheduled pegadaian run failed: %v", err)
				a.notify(fmt.Sprintf("*Harga emas pegadaian gagal*\n%v", err))
			}
		}); err != nil {
			return fmt.Errorf("register pegadaian schedule %q: %w", watch.Pegadaian.Cron, err)
		}
		logger.Infof("pegadaian scheduled: %s", watch.Pegadaian.Cron)
	}

	if watch.UBS.Enabled {
		if _, err := c.AddFunc(watch.UBS.Cron, func() {
			mu.Lock()
			defer mu.Unlock()
			if err := a.RunUBSToday(ctx); err != nil {
				logger.Errorf("scheduled ubs run failed: %v", err)
				a.notify(fmt.Sprintf("*Harga emas ubs gagal*\n%v", err))
			}
		}); err != nil {
			return fmt.Errorf("register ubs schedule %q: %w", watch.UBS.Cron, err)
		}
		logger.Infof("ubs scheduled: %s", watch.UBS.Cron)
	}

	c.Start()
	logger.Infof("watch mode started, timezone %s", a.loc)
	<-ctx.Done()

	// Stop only closes the returned context once running jobs finish,
	// so an in-flight browser session gets to save its artifact.
	stopCtx := c.Stop()
	<-stopCtx.Done()
	logger.Infof("watch mode stopped")
	return nil
}
