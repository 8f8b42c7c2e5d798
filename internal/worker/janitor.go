package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper evicts idle workspaces.
type Sweeper interface {
	Sweep(now time.Time) int
}

// StartWorkspaceJanitor sweeps on every tick until ctx is cancelled. The returned channel
// closes once the loop has stopped.
func StartWorkspaceJanitor(ctx context.Context, sweeper Sweeper, interval time.Duration, logger *zap.Logger) <-chan struct{} {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = time.Minute
	}
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Info("workspace janitor stopped")
				return
			case now := <-ticker.C:
				if removed := sweeper.Sweep(now); removed > 0 {
					logger.Debug("janitor sweep", zap.Int("removed", removed))
				}
			}
		}
	}()
	return done
}
