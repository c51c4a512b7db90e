package recommend

import (
	"context"
	"errors"
	"time"

	"tend/internal/history"
)

// ErrUnknownRecommendation rejects feedback whose id the scorer could
// not have produced recently.
var ErrUnknownRecommendation = errors.New("unknown recommendation id")

var ErrInvalidFeedback = errors.New("invalid feedback")

// Ledger appends behavior rows; implemented by history.Store.
type Ledger interface {
	Append(ctx context.Context, f history.Feedback) error
}

type FeedbackInput struct {
	RecommendationID string
	Action           history.Action
	MoodAfter        *int
	Notes            string
}

// SubmitFeedback validates the id against the candidates the scorer
// could have issued for today's and yesterday's day buckets, then
// appends to the ledger. An unknown id writes nothing.
func (s *Scorer) SubmitFeedback(ctx context.Context, ledger Ledger, userID uint64, in FeedbackInput, now time.Time) error {
	if !in.Action.Valid() {
		return ErrInvalidFeedback
	}
	if in.MoodAfter != nil && (*in.MoodAfter < 1 || *in.MoodAfter > 5) {
		return ErrInvalidFeedback
	}

	item, ok := s.correlate(userID, in.RecommendationID, now)
	if !ok {
		return ErrUnknownRecommendation
	}

	return ledger.Append(ctx, history.Feedback{
		UserID:           userID,
		RecommendationID: in.RecommendationID,
		SuggestionType:   string(item.Type),
		Action:           in.Action,
		MoodAfter:        in.MoodAfter,
		Notes:            in.Notes,
		CreatedAt:        now,
	})
}

// correlate searches the catalog's id space over the current and
// previous day buckets, covering feedback sent just after midnight.
func (s *Scorer) correlate(userID uint64, recID string, now time.Time) (Item, bool) {
	buckets := []string{DayBucket(now), DayBucket(now.AddDate(0, 0, -1))}
	for _, day := range buckets {
		for _, item := range s.Catalog.Items {
			if RecommendationID(userID, item, day) == recID {
				return item, true
			}
		}
	}
	return Item{}, false
}
