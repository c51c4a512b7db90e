package validate

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Validator judges proposed event windows. The deterministic rules are
// the verdict of record; the judge can only raise severity or add
// suggestions on top of them.
type Validator struct {
	// Judge is optional; nil disables AI augmentation.
	Judge Judge

	// EarlyHour flags starts before this local hour.
	EarlyHour int

	DB  *gorm.DB
	Log *zap.SugaredLogger
}

// Validate never fails: judge errors collapse into the deterministic
// baseline with UsedAI=false.
func (v *Validator) Validate(ctx context.Context, userID uint64, start, end time.Time, freeform string) Verdict {
	verdict := v.baseline(start, end)

	if v.Judge != nil {
		var raw []byte
		adv, err := v.Judge.Judge(ctx, Window{Start: start, End: end}, freeform)
		if err != nil {
			if v.Log != nil {
				v.Log.Warnw("judge unavailable, using baseline", "err", err)
			}
		} else {
			raw = adv.Raw
			verdict = merge(verdict, adv)
		}
		v.record(ctx, userID, start, end, verdict, raw)
		return verdict
	}

	v.record(ctx, userID, start, end, verdict, nil)
	return verdict
}

func (v *Validator) baseline(start, end time.Time) Verdict {
	if !end.After(start) {
		return Verdict{
			IsApproved:            false,
			RecommendationMessage: "The event ends before it starts.",
			Severity:              SeverityError,
			Suggestions:           []string{"Pick an end time after the start time."},
		}
	}

	earlyHour := v.EarlyHour
	if earlyHour <= 0 {
		earlyHour = 6
	}
	if start.Hour() < earlyHour {
		return Verdict{
			IsApproved:            false,
			RecommendationMessage: fmt.Sprintf("This starts before %02d:00; very early slots are easy to miss.", earlyHour),
			Severity:              SeverityWarning,
			Suggestions:           []string{fmt.Sprintf("Consider moving the start to %02d:00 or later.", earlyHour)},
		}
	}

	return Verdict{
		IsApproved:            true,
		RecommendationMessage: "The proposed time looks fine.",
		Severity:              SeverityInfo,
	}
}

// merge applies advisory input on top of the deterministic verdict.
// Severity only moves up; approval never flips back to true.
func merge(base Verdict, adv *Advice) Verdict {
	out := base
	out.UsedAI = true

	if adv.VerdictText != "" {
		out.RecommendationMessage = adv.VerdictText
	}
	out.Suggestions = append(out.Suggestions, adv.Suggestions...)

	if adv.SuggestedSeverity != nil && adv.SuggestedSeverity.rank() > base.Severity.rank() {
		out.Severity = *adv.SuggestedSeverity
		if out.Severity != SeverityInfo {
			out.IsApproved = false
		}
	}
	return out
}

func (v *Validator) record(ctx context.Context, userID uint64, start, end time.Time, verdict Verdict, judgeRaw []byte) {
	if v.DB == nil {
		return
	}
	rec := Record{
		UserID:        userID,
		ProposedStart: start,
		ProposedEnd:   end,
		Approved:      verdict.IsApproved,
		Severity:      verdict.Severity,
		UsedAI:        verdict.UsedAI,
		JudgeRaw:      judgeRaw,
	}
	if err := v.DB.WithContext(ctx).Create(&rec).Error; err != nil && v.Log != nil {
		v.Log.Warnw("validation audit write failed", "err", err)
	}
}
