package reminder

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ClaimSource yields due reminders, already claimed.
type ClaimSource interface {
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]Reminder, error)
}

// Deliverer hands a claimed reminder to whatever transport the platform
// uses. Delivery is at-most-once: a failure after the claim is logged
// and the reminder is not retried.
type Deliverer interface {
	Deliver(ctx context.Context, r Reminder) error
}

// LogDeliverer is the default delivery sink.
type LogDeliverer struct {
	Log *zap.SugaredLogger
}

func (d *LogDeliverer) Deliver(_ context.Context, r Reminder) error {
	d.Log.Infow("reminder due",
		"reminder_id", r.ID,
		"event_id", r.EventID,
		"user_id", r.UserID,
		"trigger_at", r.TriggerAt,
	)
	return nil
}

// Scanner drives periodic due-reminder scans. A manual scan over HTTP
// shares ScanOnce, so an overlapping tick and manual trigger contend on
// the claim, never on delivery.
type Scanner struct {
	Source    ClaimSource
	Deliverer Deliverer
	Interval  time.Duration
	BatchSize int
	Log       *zap.SugaredLogger
}

func (s *Scanner) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.ScanOnce(ctx, time.Now()); err != nil {
				s.Log.Errorw("scan failed", "err", err)
			}
		}
	}
}

// ScanOnce claims everything due at now and delivers it oldest-first.
// An empty due-set is normal. Returns the claimed reminders.
func (s *Scanner) ScanOnce(ctx context.Context, now time.Time) ([]Reminder, error) {
	claimed, err := s.Source.ClaimDue(ctx, now, s.BatchSize)
	if err != nil {
		return nil, err
	}

	for _, r := range claimed {
		if err := s.Deliverer.Deliver(ctx, r); err != nil {
			// the claim is not released on delivery failure
			s.Log.Warnw("delivery failed, not retrying",
				"reminder_id", r.ID, "err", err)
		}
	}
	return claimed, nil
}
