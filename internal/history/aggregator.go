package history

import (
	"context"
	"time"

	"tend/internal/mood"

	"gorm.io/gorm"
)

// DefaultWindow is the lookback for behavior summaries.
const DefaultWindow = 90 * 24 * time.Hour

// minMoodSamples is the confidence floor below which no mood impact is
// reported for a suggestion type.
const minMoodSamples = 3

// neutralMood stands in for the baseline when the user has no mood
// entries in the window.
const neutralMood = 3.0

// TypeStats summarizes feedback for one suggestion type. Percentage
// fields are nil when undefined, never zero-by-accident.
type TypeStats struct {
	Completed int
	Scheduled int
	Dismissed int
	Ignored   int

	// CompletionRate is completed/(completed+dismissed+ignored) in
	// 0..100, nil on a zero denominator.
	CompletionRate *float64

	// MoodImpact maps the average post-activity mood delta against the
	// user's baseline onto 0..100 (50 = no change), nil below the
	// sample floor.
	MoodImpact *float64
}

type Summary struct {
	// MoodBaseline is the average mood rating in the window, nil when
	// the user logged no moods.
	MoodBaseline *float64

	ByType map[string]*TypeStats
}

// Store reads and appends the behavior ledger.
type Store struct {
	DB *gorm.DB
}

func (s *Store) Append(ctx context.Context, f Feedback) error {
	return s.DB.WithContext(ctx).Create(&f).Error
}

// Summarize recomputes a user's per-type statistics over the lookback
// window. Read-only; zero history yields a summary full of nils, not an
// error.
func (s *Store) Summarize(ctx context.Context, userID uint64, window time.Duration) (*Summary, error) {
	if window <= 0 {
		window = DefaultWindow
	}
	since := time.Now().Add(-window)

	var rows []Feedback
	if err := s.DB.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at asc, id asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	var moods []mood.Entry
	if err := s.DB.WithContext(ctx).
		Where("user_id = ? AND day >= ?", userID, since).
		Find(&moods).Error; err != nil {
		return nil, err
	}

	return BuildSummary(rows, moods), nil
}

// BuildSummary is the pure aggregation over already-fetched rows.
// Feedback must be ordered oldest-first so latest-per-recommendation
// dedup keeps the newest row.
func BuildSummary(rows []Feedback, moods []mood.Entry) *Summary {
	sum := &Summary{ByType: map[string]*TypeStats{}}

	if len(moods) > 0 {
		total := 0
		for _, m := range moods {
			total += m.Rating
		}
		avg := float64(total) / float64(len(moods))
		sum.MoodBaseline = &avg
	}

	// latest feedback per recommendation id wins
	latest := map[string]Feedback{}
	order := []string{}
	for _, f := range rows {
		if _, seen := latest[f.RecommendationID]; !seen {
			order = append(order, f.RecommendationID)
		}
		latest[f.RecommendationID] = f
	}

	moodAfter := map[string][]int{}
	for _, id := range order {
		f := latest[id]
		st := sum.ByType[f.SuggestionType]
		if st == nil {
			st = &TypeStats{}
			sum.ByType[f.SuggestionType] = st
		}
		switch f.Action {
		case ActionCompletedNow:
			st.Completed++
		case ActionScheduled:
			st.Scheduled++
		case ActionDismissed:
			st.Dismissed++
		case ActionIgnored:
			st.Ignored++
		}
		if f.MoodAfter != nil {
			moodAfter[f.SuggestionType] = append(moodAfter[f.SuggestionType], *f.MoodAfter)
		}
	}

	baseline := neutralMood
	if sum.MoodBaseline != nil {
		baseline = *sum.MoodBaseline
	}

	for typ, st := range sum.ByType {
		denom := st.Completed + st.Dismissed + st.Ignored
		if denom > 0 {
			rate := clampPct(float64(st.Completed) / float64(denom) * 100)
			st.CompletionRate = &rate
		}

		after := moodAfter[typ]
		if len(after) >= minMoodSamples {
			total := 0
			for _, v := range after {
				total += v
			}
			avg := float64(total) / float64(len(after))
			// delta is in [-4,4]; center on 50 and spread across 0..100
			impact := clampPct(50 + (avg-baseline)*12.5)
			st.MoodImpact = &impact
		}
	}

	return sum
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
