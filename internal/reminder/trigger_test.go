package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(n int) *int { return &n }

func TestTriggerAtOffsets(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		policy Policy
		want   time.Time
	}{
		{"fixed 15", Policy{Kind: KindFixed15}, start.Add(-15 * time.Minute)},
		{"fixed 30", Policy{Kind: KindFixed30}, start.Add(-30 * time.Minute)},
		{"one day before", Policy{Kind: KindOneDayBefore}, start.Add(-24 * time.Hour)},
		{"custom h+m", Policy{Kind: KindCustom, CustomHours: intp(2), CustomMinutes: intp(30)}, start.Add(-150 * time.Minute)},
		{"custom minutes only", Policy{Kind: KindCustom, CustomMinutes: intp(45)}, start.Add(-45 * time.Minute)},
		{"custom hours only", Policy{Kind: KindCustom, CustomHours: intp(1)}, start.Add(-time.Hour)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := TriggerAt(start, tc.policy)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.True(t, got.Before(start), "trigger must be strictly before start")
		})
	}
}

func TestTriggerAtInvalidPolicies(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		policy Policy
	}{
		{"custom with nothing set", Policy{Kind: KindCustom}},
		{"custom zero offset", Policy{Kind: KindCustom, CustomHours: intp(0), CustomMinutes: intp(0)}},
		{"custom negative hours", Policy{Kind: KindCustom, CustomHours: intp(-1)}},
		{"custom negative minutes", Policy{Kind: KindCustom, CustomMinutes: intp(-5)}},
		{"unknown kind", Policy{Kind: PolicyKind("WHENEVER")}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := TriggerAt(start, tc.policy)
			assert.ErrorIs(t, err, ErrInvalidPolicy)
		})
	}
}
