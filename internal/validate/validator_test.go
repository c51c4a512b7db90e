package validate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJudge struct {
	advice *Advice
	err    error
	calls  int
}

func (f *fakeJudge) Judge(context.Context, Window, string) (*Advice, error) {
	f.calls++
	return f.advice, f.err
}

func sevp(s Severity) *Severity { return &s }

func window(hour int) (time.Time, time.Time) {
	start := time.Date(2026, 6, 2, hour, 0, 0, 0, time.UTC)
	return start, start.Add(time.Hour)
}

func TestValidateAfternoonApproved(t *testing.T) {
	v := &Validator{EarlyHour: 6}
	start, end := window(14)

	verdict := v.Validate(context.Background(), 1, start, end, "")

	assert.True(t, verdict.IsApproved)
	assert.Equal(t, SeverityInfo, verdict.Severity)
	assert.False(t, verdict.UsedAI)
}

func TestValidateEarlyStartWarns(t *testing.T) {
	v := &Validator{EarlyHour: 6}
	start, end := window(3)

	verdict := v.Validate(context.Background(), 1, start, end, "")

	assert.False(t, verdict.IsApproved)
	assert.Equal(t, SeverityWarning, verdict.Severity)
	assert.NotEmpty(t, verdict.Suggestions)
}

func TestValidateInvertedWindowErrors(t *testing.T) {
	v := &Validator{EarlyHour: 6}
	start, _ := window(14)

	verdict := v.Validate(context.Background(), 1, start, start.Add(-time.Hour), "")

	assert.False(t, verdict.IsApproved)
	assert.Equal(t, SeverityError, verdict.Severity)
}

func TestValidateJudgeFailureFallsBack(t *testing.T) {
	j := &fakeJudge{err: errors.New("boom")}
	v := &Validator{EarlyHour: 6, Judge: j}
	start, end := window(3)

	verdict := v.Validate(context.Background(), 1, start, end, "early workout")

	require.Equal(t, 1, j.calls)
	assert.False(t, verdict.IsApproved)
	assert.Equal(t, SeverityWarning, verdict.Severity)
	assert.False(t, verdict.UsedAI, "a failed judge call must report usedAi=false")
}

func TestValidateJudgeMayRaiseSeverity(t *testing.T) {
	j := &fakeJudge{advice: &Advice{
		VerdictText:       "You already have a long day; this looks like overload.",
		SuggestedSeverity: sevp(SeverityWarning),
		Suggestions:       []string{"Leave the evening free."},
	}}
	v := &Validator{EarlyHour: 6, Judge: j}
	start, end := window(14)

	verdict := v.Validate(context.Background(), 1, start, end, "third meeting today")

	assert.True(t, verdict.UsedAI)
	assert.Equal(t, SeverityWarning, verdict.Severity)
	assert.False(t, verdict.IsApproved)
	assert.Contains(t, verdict.Suggestions, "Leave the evening free.")
	assert.Equal(t, "You already have a long day; this looks like overload.", verdict.RecommendationMessage)
}

func TestValidateJudgeCannotLowerSeverity(t *testing.T) {
	j := &fakeJudge{advice: &Advice{
		VerdictText:       "Looks fine to me.",
		SuggestedSeverity: sevp(SeverityInfo),
	}}
	v := &Validator{EarlyHour: 6, Judge: j}
	start, end := window(3)

	verdict := v.Validate(context.Background(), 1, start, end, "")

	assert.True(t, verdict.UsedAI)
	assert.Equal(t, SeverityWarning, verdict.Severity, "advice never downgrades the deterministic floor")
	assert.False(t, verdict.IsApproved)
}

func TestValidateNilJudgeSkipsAI(t *testing.T) {
	v := &Validator{EarlyHour: 6}
	start, end := window(10)

	verdict := v.Validate(context.Background(), 1, start, end, "")

	assert.True(t, verdict.IsApproved)
	assert.False(t, verdict.UsedAI)
}
