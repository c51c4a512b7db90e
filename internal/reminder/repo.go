package reminder

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"
)

type Repo struct {
	DB *gorm.DB

	// Grace is how far past a computed trigger may be at attach time
	// before the reminder is flagged stale instead of firing late.
	Grace time.Duration
}

// Attach creates a reminder for an event that starts at start. When the
// computed trigger is already past the grace window the reminder is
// persisted with Stale=true and ErrReminderAlreadyPast is returned
// alongside it; callers treat that as a flag, not a failure.
func (r *Repo) Attach(ctx context.Context, userID, eventID uint64, start time.Time, p Policy, now time.Time) (*Reminder, error) {
	return r.AttachTx(r.DB.WithContext(ctx), userID, eventID, start, p, now)
}

// AttachTx is Attach running inside a caller-owned transaction, used
// when reminders are created together with their event.
func (r *Repo) AttachTx(tx *gorm.DB, userID, eventID uint64, start time.Time, p Policy, now time.Time) (*Reminder, error) {
	at, err := TriggerAt(start, p)
	if err != nil {
		return nil, err
	}
	rem := Reminder{
		EventID:       eventID,
		UserID:        userID,
		Kind:          p.Kind,
		CustomHours:   p.CustomHours,
		CustomMinutes: p.CustomMinutes,
		TriggerAt:     at,
		Stale:         at.Before(now.Add(-r.Grace)),
	}
	if err := tx.Create(&rem).Error; err != nil {
		return nil, err
	}
	if rem.Stale {
		return &rem, ErrReminderAlreadyPast
	}
	return &rem, nil
}

// RecomputeForEvent rewrites trigger times for every unsent reminder of
// an event after its start time moved. Must run in the same transaction
// as the event update so no scan tick observes a stale trigger.
func (r *Repo) RecomputeForEvent(tx *gorm.DB, eventID uint64, newStart, now time.Time) error {
	var rems []Reminder
	if err := tx.Where("event_id = ? AND sent = false", eventID).Find(&rems).Error; err != nil {
		return err
	}
	for _, rem := range rems {
		at, err := TriggerAt(newStart, rem.Policy())
		if err != nil {
			// persisted policies were validated at attach time
			return err
		}
		stale := at.Before(now.Add(-r.Grace))
		if err := tx.Model(&Reminder{}).
			Where("id = ? AND sent = false", rem.ID).
			Updates(map[string]any{"trigger_at": at, "stale": stale}).Error; err != nil {
			return err
		}
	}
	return nil
}

// ClaimDue atomically claims due, unsent reminders. The claim (read
// unsent + mark sent) is a single statement; FOR UPDATE SKIP LOCKED
// keeps two overlapping scans from claiming the same row. Claimed rows
// stay sent regardless of what delivery does afterwards.
func (r *Repo) ClaimDue(ctx context.Context, now time.Time, limit int) ([]Reminder, error) {
	var claimed []Reminder
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Raw(`
with cte as (
  select id
  from reminders
  where sent = false and stale = false and trigger_at <= ?
  order by trigger_at asc
  for update skip locked
  limit ?
)
update reminders
set sent = true, sent_at = now()
where id in (select id from cte)
returning *;
`, now, limit)
		return q.Scan(&claimed).Error
	})
	if err != nil {
		return nil, err
	}

	// UPDATE .. RETURNING has no ordering guarantee
	sort.Slice(claimed, func(i, j int) bool {
		return claimed[i].TriggerAt.Before(claimed[j].TriggerAt)
	})
	return claimed, nil
}

// ListForEvent returns an event's reminders, soonest trigger first.
func (r *Repo) ListForEvent(ctx context.Context, userID, eventID uint64) ([]Reminder, error) {
	var rems []Reminder
	err := r.DB.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Order("trigger_at asc").
		Find(&rems).Error
	if err != nil {
		return nil, err
	}
	return rems, nil
}

// EventStart reads the owning event's start time without importing the
// event package.
func (r *Repo) EventStart(ctx context.Context, userID, eventID uint64) (time.Time, error) {
	var row struct {
		StartAt time.Time
	}
	err := r.DB.WithContext(ctx).
		Table("events").
		Select("start_at").
		Where("id = ? AND user_id = ?", eventID, userID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, gorm.ErrRecordNotFound
	}
	return row.StartAt, err
}
