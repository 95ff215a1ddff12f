package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/quill/internal/logger"
	"github.com/MrSnakeDoc/quill/internal/workspace"
)

// DefaultSweepInterval is how often the trash is checked for expired entries.
const DefaultSweepInterval = 24 * time.Hour

// Purger erases trash entries older than a cutoff.
type Purger interface {
	PurgeExpired(ctx context.Context, cutoff time.Time) (workspace.Purged, error)
}

// TrashCollector periodically erases trash entries older than the retention window.
type TrashCollector struct {
	purger    Purger
	logger    logger.Logger
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
	stopCh    chan struct{}
	stopOnce  sync.Once
}

// NewTrashCollector creates a collector. A zero interval uses DefaultSweepInterval.
func NewTrashCollector(p Purger, log logger.Logger, interval, retention time.Duration) *TrashCollector {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &TrashCollector{
		purger:    p,
		logger:    log,
		interval:  interval,
		retention: retention,
		now:       time.Now,
		stopCh:    make(chan struct{}),
	}
}

// Start runs one collection immediately, then one per interval until Stop
// is called or ctx is done.
func (tc *TrashCollector) Start(ctx context.Context) error {
	if _, err := tc.Collect(ctx); err != nil {
		tc.logger.Warn("initial trash collection failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(tc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := tc.Collect(ctx); err != nil {
					tc.logger.Error("trash collection failed",
						logger.Error(err))
				}
			case <-tc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the periodic collection. It is safe to call more than once.
func (tc *TrashCollector) Stop() {
	tc.stopOnce.Do(func() { close(tc.stopCh) })
}

// Collect erases trash entries trashed more than retention ago.
func (tc *TrashCollector) Collect(ctx context.Context) (workspace.Purged, error) {
	cutoff := tc.now().Add(-tc.retention)
	tc.logger.Debug("running trash collection", logger.Time("cutoff", cutoff))

	purged, err := tc.purger.PurgeExpired(ctx, cutoff)
	if err != nil {
		return purged, err
	}

	if purged.Folders+purged.Notes > 0 {
		tc.logger.Info("trash collection completed",
			logger.Int("folders_deleted", purged.Folders),
			logger.Int("notes_deleted", purged.Notes),
			logger.Duration("retention", tc.retention))
	} else {
		tc.logger.Debug("no trash to collect")
	}
	return purged, nil
}
