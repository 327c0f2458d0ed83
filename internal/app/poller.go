package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/aurastudio/aura/internal/aura"
	"github.com/aurastudio/aura/internal/state"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
)

// StartPoller launches a background goroutine that refreshes the store at a
// fixed cadence, backing off while the backend is unreachable. It returns
// immediately.
func StartPoller(ctx context.Context, store *state.Store, client aura.Fetcher, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		for {
			refresh(ctx, store, client, logger)

			wait := calculateBackoff(store.Snapshot().ConsecutiveFailures, interval)
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

// calculateBackoff doubles the poll interval per consecutive failure, capped
// at maxBackoff, so a down backend is not hammered every tick.
func calculateBackoff(failures int, baseInterval time.Duration) time.Duration {
	if failures <= 0 {
		return baseInterval
	}
	wait := baseInterval
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}

func refresh(ctx context.Context, store *state.Store, client aura.Fetcher, logger *slog.Logger) {
	status, err := client.FetchStatus(ctx)
	if err != nil {
		store.Update(nil, nil, nil, err)
		logger.Warn("status poll failed", slog.Any("error", err))
		return
	}
	projects, err := client.FetchProjects(ctx)
	if err != nil {
		store.Update(nil, nil, nil, err)
		logger.Warn("project poll failed", slog.Any("error", err))
		return
	}
	jobs, err := client.FetchJobs(ctx)
	if err != nil {
		store.Update(nil, nil, nil, err)
		logger.Warn("job poll failed", slog.Any("error", err))
		return
	}
	store.Update(status, projects, jobs, nil)
}
