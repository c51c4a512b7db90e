package history

import "time"

// Action is the closed set of things a user can do with a suggestion.
type Action string

const (
	ActionScheduled    Action = "SCHEDULED"
	ActionCompletedNow Action = "COMPLETED_NOW"
	ActionDismissed    Action = "DISMISSED"
	ActionIgnored      Action = "IGNORED"
)

func (a Action) Valid() bool {
	switch a {
	case ActionScheduled, ActionCompletedNow, ActionDismissed, ActionIgnored:
		return true
	}
	return false
}

// Feedback is an append-only ledger row tying a user action back to an
// issued recommendation. The same recommendation may accrue several
// rows; aggregation keeps only the latest per recommendation id.
type Feedback struct {
	ID     uint64 `gorm:"primaryKey"`
	UserID uint64 `gorm:"index;not null"`

	RecommendationID string `gorm:"type:text;index;not null"`
	SuggestionType   string `gorm:"type:text;not null"`

	Action Action `gorm:"type:text;not null"`

	// MoodAfter is the 1..5 self-report attached to completion, when given.
	MoodAfter *int
	Notes     string `gorm:"type:text;not null;default:''"`

	CreatedAt time.Time `gorm:"index;not null;default:now()"`
}

func (Feedback) TableName() string { return "recommendation_feedbacks" }
