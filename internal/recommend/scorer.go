package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"tend/internal/history"

	"github.com/google/uuid"
)

// recNamespace seeds deterministic recommendation ids.
var recNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("tend.recommendation"))

const (
	defaultCount = 5

	completionBonusMax = 20.0
	moodBonusMax       = 15.0
	congruenceBonus    = 10.0

	// a low current mood triggers the congruence bonus for types that
	// historically lifted it
	lowMoodCeiling    = 2
	upliftImpactFloor = 55.0
)

// Source supplies behavior summaries; implemented by history.Store.
type Source interface {
	Summarize(ctx context.Context, userID uint64, window time.Duration) (*history.Summary, error)
}

type Scorer struct {
	History Source
	Catalog Catalog

	// Social window in local hours; SOCIAL candidates outside it are
	// filtered.
	SocialHourStart int
	SocialHourEnd   int
}

// Recommend ranks catalog candidates for the user's current context.
// Missing history degrades to base weights; it never fails scoring.
func (s *Scorer) Recommend(ctx context.Context, userID uint64, currentMood *int, count int, now time.Time) ([]Recommendation, error) {
	if count <= 0 {
		count = defaultCount
	}

	sum, err := s.History.Summarize(ctx, userID, history.DefaultWindow)
	if err != nil {
		return nil, err
	}

	bucket := timeOfDay(now.Hour())
	weekend := isWeekend(now.Weekday())
	day := DayBucket(now)

	out := make([]Recommendation, 0, len(s.Catalog.Items))
	for _, item := range s.Catalog.Items {
		if !s.eligible(item, bucket, weekend, now.Hour()) {
			continue
		}

		st := sum.ByType[string(item.Type)]
		score, reason := s.score(item, st, currentMood)

		rec := Recommendation{
			ID:                 RecommendationID(userID, item, day),
			Type:               item.Type,
			Title:              item.Title,
			Description:        item.Description,
			DurationMinutes:    item.DurationMinutes,
			PersonalizedReason: reason,
			ConfidenceScore:    int(math.Round(score)),
		}
		if st != nil {
			if st.CompletionRate != nil {
				v := int(math.Round(*st.CompletionRate))
				rec.CompletionRate = &v
			}
			if st.MoodImpact != nil {
				v := int(math.Round(*st.MoodImpact))
				rec.HistoricalMoodImpact = &v
			}
		}
		slot := nextSlot(now)
		rec.SuggestedDateTime = &slot

		out = append(out, rec)
	}

	// best first; shorter asks win ties
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ConfidenceScore != out[j].ConfidenceScore {
			return out[i].ConfidenceScore > out[j].ConfidenceScore
		}
		return out[i].DurationMinutes < out[j].DurationMinutes
	})

	if len(out) > count {
		out = out[:count]
	}
	return out, nil
}

func (s *Scorer) eligible(item Item, bucket string, weekend bool, hour int) bool {
	if len(item.TimesOfDay) > 0 {
		ok := false
		for _, b := range item.TimesOfDay {
			if b == bucket {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if item.Weekend != nil && *item.Weekend != weekend {
		return false
	}
	if item.SocialHours && (hour < s.SocialHourStart || hour >= s.SocialHourEnd) {
		return false
	}
	return true
}

func (s *Scorer) score(item Item, st *history.TypeStats, currentMood *int) (float64, string) {
	score := item.BaseWeight
	reason := "A good fit for this time of day."

	if st != nil && st.CompletionRate != nil {
		score += *st.CompletionRate / 100 * completionBonusMax
		reason = fmt.Sprintf("You follow through on %.0f%% of %s suggestions.",
			*st.CompletionRate, typeLabel(item.Type))
	}

	uplifts := false
	if st != nil && st.MoodImpact != nil {
		// centered on 50: positive history helps, negative hurts
		score += (*st.MoodImpact - 50) / 50 * moodBonusMax
		if *st.MoodImpact > upliftImpactFloor {
			uplifts = true
			reason = fmt.Sprintf("%s activities have lifted your mood before.",
				titleCase(typeLabel(item.Type)))
		}
	}

	if currentMood != nil && *currentMood <= lowMoodCeiling && uplifts {
		score += congruenceBonus
		reason = fmt.Sprintf("Rough day, and %s activities have helped you bounce back.",
			typeLabel(item.Type))
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, reason
}

// RecommendationID derives the stable id for a candidate within a day
// bucket.
func RecommendationID(userID uint64, item Item, day string) string {
	key := fmt.Sprintf("%d|%s|%s|%s", userID, item.Type, item.Title, day)
	return uuid.NewSHA1(recNamespace, []byte(key)).String()
}

// DayBucket is the UTC date the id is scoped to.
func DayBucket(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func timeOfDay(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 22:
		return "evening"
	default:
		return "night"
	}
}

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}

// nextSlot proposes the next half-hour boundary at least 15 minutes out.
func nextSlot(now time.Time) time.Time {
	t := now.Add(15 * time.Minute)
	rem := t.Minute() % 30
	if rem != 0 {
		t = t.Add(time.Duration(30-rem) * time.Minute)
	}
	return t.Truncate(time.Minute)
}

func typeLabel(t SuggestionType) string {
	switch t {
	case TypePhysical:
		return "physical"
	case TypeMental:
		return "mental"
	case TypeSocial:
		return "social"
	case TypeCreative:
		return "creative"
	case TypeRest:
		return "rest"
	default:
		return "self-care"
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
