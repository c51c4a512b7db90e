package mood

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

type Service struct {
	DB *gorm.DB
}

// Upsert writes the day's entry, replacing an existing rating for the
// same user and day.
func (s *Service) Upsert(ctx context.Context, userID uint64, day time.Time, rating int, notes string) (*Entry, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	e := Entry{
		UserID:    userID,
		Day:       day.Truncate(24 * time.Hour),
		Rating:    rating,
		Notes:     notes,
		UpdatedAt: time.Now(),
	}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "notes", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Range returns entries for [from, to], oldest first.
func (s *Service) Range(ctx context.Context, userID uint64, from, to time.Time) ([]Entry, error) {
	var out []Entry
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND day >= ? AND day <= ?", userID, from, to).
		Order("day asc").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
