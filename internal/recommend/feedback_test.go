package recommend

import (
	"context"
	"testing"

	"tend/internal/history"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitFeedbackKnownID(t *testing.T) {
	s := newTestScorer(&fakeSource{})
	ledger := &fakeLedger{}

	item := s.Catalog.Items[0]
	recID := RecommendationID(1, item, DayBucket(testNow))

	err := s.SubmitFeedback(context.Background(), ledger, 1, FeedbackInput{
		RecommendationID: recID,
		Action:           history.ActionCompletedNow,
		MoodAfter:        intp(4),
	}, testNow)
	require.NoError(t, err)

	require.Len(t, ledger.rows, 1)
	row := ledger.rows[0]
	assert.Equal(t, recID, row.RecommendationID)
	assert.Equal(t, string(item.Type), row.SuggestionType)
	assert.Equal(t, history.ActionCompletedNow, row.Action)
}

func TestSubmitFeedbackYesterdaysID(t *testing.T) {
	s := newTestScorer(&fakeSource{})
	ledger := &fakeLedger{}

	item := s.Catalog.Items[0]
	recID := RecommendationID(1, item, DayBucket(testNow.AddDate(0, 0, -1)))

	err := s.SubmitFeedback(context.Background(), ledger, 1, FeedbackInput{
		RecommendationID: recID,
		Action:           history.ActionScheduled,
	}, testNow)
	require.NoError(t, err)
	assert.Len(t, ledger.rows, 1)
}

func TestSubmitFeedbackUnknownID(t *testing.T) {
	s := newTestScorer(&fakeSource{})
	ledger := &fakeLedger{}

	err := s.SubmitFeedback(context.Background(), ledger, 1, FeedbackInput{
		RecommendationID: "b2cf0908-0000-0000-0000-000000000000",
		Action:           history.ActionDismissed,
	}, testNow)

	assert.ErrorIs(t, err, ErrUnknownRecommendation)
	assert.Empty(t, ledger.rows, "rejected feedback must not touch the ledger")
}

func TestSubmitFeedbackWrongUser(t *testing.T) {
	s := newTestScorer(&fakeSource{})
	ledger := &fakeLedger{}

	item := s.Catalog.Items[0]
	otherUsersID := RecommendationID(2, item, DayBucket(testNow))

	err := s.SubmitFeedback(context.Background(), ledger, 1, FeedbackInput{
		RecommendationID: otherUsersID,
		Action:           history.ActionDismissed,
	}, testNow)

	assert.ErrorIs(t, err, ErrUnknownRecommendation)
}

func TestSubmitFeedbackInvalidAction(t *testing.T) {
	s := newTestScorer(&fakeSource{})
	ledger := &fakeLedger{}

	err := s.SubmitFeedback(context.Background(), ledger, 1, FeedbackInput{
		RecommendationID: "anything",
		Action:           history.Action("SNOOZED"),
	}, testNow)

	assert.ErrorIs(t, err, ErrInvalidFeedback)
	assert.Empty(t, ledger.rows)
}

func TestSubmitFeedbackInvalidMood(t *testing.T) {
	s := newTestScorer(&fakeSource{})

	err := s.SubmitFeedback(context.Background(), &fakeLedger{}, 1, FeedbackInput{
		RecommendationID: "anything",
		Action:           history.ActionCompletedNow,
		MoodAfter:        intp(9),
	}, testNow)

	assert.ErrorIs(t, err, ErrInvalidFeedback)
}
