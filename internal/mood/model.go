package mood

import "time"

// Entry is one mood rating per user per calendar day. Writes are
// upserts on (user_id, day), never appends.
type Entry struct {
	ID     uint64    `gorm:"primaryKey"`
	UserID uint64    `gorm:"not null;uniqueIndex:uq_mood_user_day"`
	Day    time.Time `gorm:"type:date;not null;uniqueIndex:uq_mood_user_day"`

	// Rating is 1 (worst) to 5 (best).
	Rating int    `gorm:"not null"`
	Notes  string `gorm:"type:text;not null;default:''"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Entry) TableName() string { return "mood_entries" }
