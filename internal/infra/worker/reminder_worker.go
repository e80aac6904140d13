package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ReminderScanner publishes the reminders falling due in (from, until].
type ReminderScanner interface {
	Scan(ctx context.Context, from, until time.Time) (int, error)
}

// ReminderWorker scans one interval ahead on every tick. Each window starts
// where the last successful one ended, so a late tick or a failed scan
// widens the next window instead of skipping reminders.
type ReminderWorker struct {
	scanner      ReminderScanner
	tickInterval time.Duration
	logger       *zap.Logger
	now          func() time.Time

	covered time.Time
}

func NewReminderWorker(scanner ReminderScanner, interval time.Duration, logger *zap.Logger) *ReminderWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &ReminderWorker{
		scanner:      scanner,
		tickInterval: interval,
		logger:       logger,
		now:          time.Now,
	}
}

// Start blocks until ctx is cancelled.
func (w *ReminderWorker) Start(ctx context.Context) {
	w.logger.Info("🕒 reminder worker started", zap.Duration("interval", w.tickInterval))

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.scan(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("⚠️ reminder worker stopped")
			return
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

func (w *ReminderWorker) scan(ctx context.Context) {
	now := w.now()
	if w.covered.IsZero() {
		w.covered = now
	}
	until := now.Add(w.tickInterval)
	if until.Before(w.covered) {
		until = w.covered
	}

	published, err := w.scanner.Scan(ctx, w.covered, until)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Error("❌ reminder scan failed", zap.Error(err))
		}
		return
	}
	w.covered = until
	if published > 0 {
		w.logger.Info("✅ reminders announced", zap.Int("count", published))
	}
}
