package validate

import (
	"time"

	"gorm.io/datatypes"
)

type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

func ParseSeverity(s string) (Severity, bool) {
	switch Severity(s) {
	case SeverityInfo, SeverityWarning, SeverityError:
		return Severity(s), true
	}
	return "", false
}

// rank orders severities so advice can only move the verdict up.
func (s Severity) rank() int {
	switch s {
	case SeverityWarning:
		return 1
	case SeverityError:
		return 2
	default:
		return 0
	}
}

// Verdict is what Validate always returns, judge or no judge.
type Verdict struct {
	IsApproved            bool     `json:"is_approved"`
	RecommendationMessage string   `json:"recommendation_message"`
	Severity              Severity `json:"severity"`
	Suggestions           []string `json:"suggestions"`
	UsedAI                bool     `json:"used_ai"`
}

// Record is the audit row appended per validation. JudgeRaw keeps the
// undecoded external response when one arrived.
type Record struct {
	ID     uint64 `gorm:"primaryKey"`
	UserID uint64 `gorm:"index;not null"`

	ProposedStart time.Time `gorm:"not null"`
	ProposedEnd   time.Time `gorm:"not null"`

	Approved bool     `gorm:"not null"`
	Severity Severity `gorm:"type:text;not null"`
	UsedAI   bool     `gorm:"not null"`

	JudgeRaw datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"index;not null;default:now()"`
}

func (Record) TableName() string { return "validation_records" }
