package reminder

import (
	"errors"
	"time"
)

var ErrInvalidPolicy = errors.New("invalid reminder policy")

// ErrReminderAlreadyPast is non-fatal: the reminder is still created,
// flagged stale, and excluded from scanning.
var ErrReminderAlreadyPast = errors.New("reminder trigger already past")

// Offset returns how long before the event start the reminder fires.
func (p Policy) Offset() (time.Duration, error) {
	switch p.Kind {
	case KindFixed15:
		return 15 * time.Minute, nil
	case KindFixed30:
		return 30 * time.Minute, nil
	case KindOneDayBefore:
		return 24 * time.Hour, nil
	case KindCustom:
		if p.CustomHours == nil && p.CustomMinutes == nil {
			return 0, ErrInvalidPolicy
		}
		var d time.Duration
		if p.CustomHours != nil {
			if *p.CustomHours < 0 {
				return 0, ErrInvalidPolicy
			}
			d += time.Duration(*p.CustomHours) * time.Hour
		}
		if p.CustomMinutes != nil {
			if *p.CustomMinutes < 0 {
				return 0, ErrInvalidPolicy
			}
			d += time.Duration(*p.CustomMinutes) * time.Minute
		}
		if d == 0 {
			return 0, ErrInvalidPolicy
		}
		return d, nil
	default:
		return 0, ErrInvalidPolicy
	}
}

// TriggerAt derives the absolute fire time for a policy attached to an
// event starting at start.
func TriggerAt(start time.Time, p Policy) (time.Time, error) {
	off, err := p.Offset()
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(-off), nil
}
