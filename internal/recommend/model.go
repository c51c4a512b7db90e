package recommend

import "time"

type SuggestionType string

const (
	TypePhysical SuggestionType = "PHYSICAL"
	TypeMental   SuggestionType = "MENTAL"
	TypeSocial   SuggestionType = "SOCIAL"
	TypeCreative SuggestionType = "CREATIVE"
	TypeRest     SuggestionType = "REST"
)

// Recommendation is the scorer's read-only output. IDs are stable per
// (user, candidate, day bucket) so feedback submitted later the same
// day correlates back.
type Recommendation struct {
	ID              string         `json:"id"`
	Type            SuggestionType `json:"type"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	DurationMinutes int            `json:"duration_minutes"`

	PersonalizedReason string `json:"personalized_reason"`
	ConfidenceScore    int    `json:"confidence_score"`

	HistoricalMoodImpact *int `json:"historical_mood_impact,omitempty"`
	CompletionRate       *int `json:"completion_rate,omitempty"`

	SuggestedDateTime *time.Time `json:"suggested_date_time,omitempty"`
}
