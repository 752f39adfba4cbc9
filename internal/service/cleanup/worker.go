package cleanup

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// IdleReaper is implemented by the game session manager.
type IdleReaper interface {
	CleanupIdleSessions(maxIdle time.Duration) int
}

type Worker struct {
	reaper   IdleReaper
	interval time.Duration
	maxIdle  time.Duration
	log      zerolog.Logger
}

// DefaultInterval replaces a non-positive sweep interval.
const DefaultInterval = 5 * time.Minute

func NewWorker(reaper IdleReaper, interval, maxIdle time.Duration, logger zerolog.Logger) *Worker {
	w := &Worker{
		reaper:   reaper,
		interval: interval,
		maxIdle:  maxIdle,
		log:      logger.With().Str("component", "cleanup").Logger(),
	}
	if w.interval <= 0 {
		w.log.Warn().Dur("interval", interval).Dur("default", DefaultInterval).Msg("non-positive interval, using default")
		w.interval = DefaultInterval
	}
	return w
}

// Run sweeps once immediately, then on every tick until ctx is done.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info().Dur("interval", w.interval).Dur("max_idle", w.maxIdle).Msg("background worker started")
	w.runCleanup()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("background worker stopped")
			return
		case <-ticker.C:
			w.runCleanup()
		}
	}
}

func (w *Worker) runCleanup() {
	if removed := w.reaper.CleanupIdleSessions(w.maxIdle); removed > 0 {
		w.log.Info().Int("removed", removed).Msg("removed idle sessions")
	}
}
