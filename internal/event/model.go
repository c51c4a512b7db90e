package event

import (
	"time"

	"github.com/lib/pq"
)

// Category groups events per user; (user_id, name) is unique.
type Category struct {
	ID        uint64    `gorm:"primaryKey"`
	UserID    uint64    `gorm:"index;not null"`
	Name      string    `gorm:"index;not null"`
	Color     string    `gorm:"type:text;not null;default:''"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
}

// Event is a scheduled planner entry. Tags are extracted from the notes
// text on every write.
type Event struct {
	ID         uint64  `gorm:"primaryKey"`
	UserID     uint64  `gorm:"index;not null"`
	CategoryID *uint64 `gorm:"index"`

	Title string `gorm:"type:text;not null"`
	Notes string `gorm:"type:text;not null;default:''"`

	StartAt time.Time `gorm:"index;not null"`
	EndAt   time.Time `gorm:"not null"`

	Tags pq.StringArray `gorm:"type:text[];not null;default:'{}'"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}
