package reminder

import "time"

type PolicyKind string

const (
	KindFixed15      PolicyKind = "FIXED_15"
	KindFixed30      PolicyKind = "FIXED_30"
	KindOneDayBefore PolicyKind = "ONE_DAY_BEFORE"
	KindCustom       PolicyKind = "CUSTOM"
)

// Policy describes when, relative to its event's start, a reminder fires.
// Immutable once attached.
type Policy struct {
	Kind          PolicyKind
	CustomHours   *int
	CustomMinutes *int
}

// Reminder is a concrete fire time derived from a policy. TriggerAt is
// never user-supplied; it is recomputed whenever the event is rescheduled.
// Sent transitions false->true exactly once and never reverts.
type Reminder struct {
	ID      uint64 `gorm:"primaryKey"`
	EventID uint64 `gorm:"index;not null"`
	UserID  uint64 `gorm:"index;not null"`

	Kind          PolicyKind `gorm:"type:text;not null"`
	CustomHours   *int
	CustomMinutes *int

	TriggerAt time.Time `gorm:"index;not null"`

	Sent   bool       `gorm:"not null;default:false"`
	SentAt *time.Time `gorm:"type:timestamptz"`

	// Stale marks a reminder whose trigger was already past the grace
	// window when it was attached. Stale reminders persist but are
	// never scanned.
	Stale bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (r Reminder) Policy() Policy {
	return Policy{Kind: r.Kind, CustomHours: r.CustomHours, CustomMinutes: r.CustomMinutes}
}
