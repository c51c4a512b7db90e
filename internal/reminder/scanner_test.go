package reminder

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSource mimics the repo's claim semantics in memory: due unsent
// reminders are returned once, marked sent, ordered by trigger time.
type fakeSource struct {
	reminders []Reminder
}

func (f *fakeSource) ClaimDue(_ context.Context, now time.Time, limit int) ([]Reminder, error) {
	var due []*Reminder
	for i := range f.reminders {
		r := &f.reminders[i]
		if r.Sent || r.Stale || r.TriggerAt.After(now) {
			continue
		}
		due = append(due, r)
	}
	sort.Slice(due, func(i, j int) bool { return due[i].TriggerAt.Before(due[j].TriggerAt) })
	if len(due) > limit {
		due = due[:limit]
	}

	out := make([]Reminder, 0, len(due))
	for _, r := range due {
		r.Sent = true
		out = append(out, *r)
	}
	return out, nil
}

type recordingDeliverer struct {
	delivered []uint64
	fail      bool
}

func (d *recordingDeliverer) Deliver(_ context.Context, r Reminder) error {
	if d.fail {
		return errors.New("transport down")
	}
	d.delivered = append(d.delivered, r.ID)
	return nil
}

func newTestScanner(src ClaimSource, d Deliverer) *Scanner {
	return &Scanner{
		Source:    src,
		Deliverer: d,
		Interval:  time.Minute,
		BatchSize: 10,
		Log:       zap.NewNop().Sugar(),
	}
}

func TestScanOnceClaimsDueOldestFirst(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	src := &fakeSource{reminders: []Reminder{
		{ID: 1, TriggerAt: now.Add(-time.Minute)},
		{ID: 2, TriggerAt: now.Add(-time.Hour)},
		{ID: 3, TriggerAt: now.Add(time.Minute)}, // not due
		{ID: 4, TriggerAt: now.Add(-30 * time.Minute), Stale: true},
	}}
	d := &recordingDeliverer{}

	claimed, err := newTestScanner(src, d).ScanOnce(context.Background(), now)
	require.NoError(t, err)

	require.Len(t, claimed, 2)
	assert.Equal(t, uint64(2), claimed[0].ID)
	assert.Equal(t, uint64(1), claimed[1].ID)
	assert.Equal(t, []uint64{2, 1}, d.delivered)
}

func TestScanOnceIsAtMostOnce(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	src := &fakeSource{reminders: []Reminder{
		{ID: 1, TriggerAt: now.Add(-time.Minute)},
	}}
	d := &recordingDeliverer{}
	s := newTestScanner(src, d)

	first, err := s.ScanOnce(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := s.ScanOnce(context.Background(), now)
	require.NoError(t, err)
	assert.Empty(t, second, "a claimed reminder must never be returned again")
}

func TestScanOnceKeepsClaimOnDeliveryFailure(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	src := &fakeSource{reminders: []Reminder{
		{ID: 1, TriggerAt: now.Add(-time.Minute)},
	}}
	s := newTestScanner(src, &recordingDeliverer{fail: true})

	claimed, err := s.ScanOnce(context.Background(), now)
	require.NoError(t, err, "delivery failure is absorbed, not surfaced")
	require.Len(t, claimed, 1)

	again, err := s.ScanOnce(context.Background(), now)
	require.NoError(t, err)
	assert.Empty(t, again, "failed delivery must not release the claim")
}

func TestScanOnceEmptyDueSet(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	src := &fakeSource{}
	d := &recordingDeliverer{}

	claimed, err := newTestScanner(src, d).ScanOnce(context.Background(), now)
	require.NoError(t, err)
	assert.Empty(t, claimed)
	assert.Empty(t, d.delivered)
}

func TestScanOnceHonorsBatchSize(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	src := &fakeSource{reminders: []Reminder{
		{ID: 1, TriggerAt: now.Add(-3 * time.Minute)},
		{ID: 2, TriggerAt: now.Add(-2 * time.Minute)},
		{ID: 3, TriggerAt: now.Add(-time.Minute)},
	}}
	s := newTestScanner(src, &recordingDeliverer{})
	s.BatchSize = 2

	claimed, err := s.ScanOnce(context.Background(), now)
	require.NoError(t, err)
	assert.Len(t, claimed, 2)
}
