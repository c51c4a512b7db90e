package event

import (
	"context"
	"errors"
	"time"

	"tend/internal/reminder"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")
var ErrInvalidWindow = errors.New("end must be after start")

type Service struct {
	DB        *gorm.DB
	Reminders *reminder.Repo
}

type CreateInput struct {
	Title      string
	Notes      string
	CategoryID *uint64
	StartAt    time.Time
	EndAt      time.Time
	Policies   []reminder.Policy
}

type CreateResult struct {
	EventID   uint64
	Reminders []reminder.Reminder
	// StaleReminders lists reminders whose trigger was already past at
	// creation; they were persisted but will never fire.
	StaleReminders []uint64
}

// Create writes the event and attaches any reminder policies in one
// transaction, so a scan tick never observes an event without its
// triggers.
func (s *Service) Create(ctx context.Context, userID uint64, in CreateInput) (*CreateResult, error) {
	if !in.EndAt.After(in.StartAt) {
		return nil, ErrInvalidWindow
	}

	// validate policies before touching the database
	for _, p := range in.Policies {
		if _, err := reminder.TriggerAt(in.StartAt, p); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	res := &CreateResult{}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ev := Event{
			UserID:     userID,
			CategoryID: in.CategoryID,
			Title:      in.Title,
			Notes:      in.Notes,
			StartAt:    in.StartAt,
			EndAt:      in.EndAt,
			Tags:       pq.StringArray(ExtractTags(in.Title + " " + in.Notes)),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := tx.Create(&ev).Error; err != nil {
			return err
		}
		res.EventID = ev.ID

		for _, p := range in.Policies {
			rem, err := s.Reminders.AttachTx(tx, userID, ev.ID, in.StartAt, p, now)
			if err != nil && !errors.Is(err, reminder.ErrReminderAlreadyPast) {
				return err
			}
			res.Reminders = append(res.Reminders, *rem)
			if rem.Stale {
				res.StaleReminders = append(res.StaleReminders, rem.ID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Reschedule moves an event and recomputes every unsent reminder's
// trigger in the same transaction.
func (s *Service) Reschedule(ctx context.Context, userID, eventID uint64, newStart, newEnd time.Time) error {
	if !newEnd.After(newStart) {
		return ErrInvalidWindow
	}

	now := time.Now()
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ev Event
		if err := tx.Where("id = ? AND user_id = ?", eventID, userID).First(&ev).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Model(&Event{}).
			Where("id = ?", ev.ID).
			Updates(map[string]any{
				"start_at":   newStart,
				"end_at":     newEnd,
				"updated_at": now,
			}).Error; err != nil {
			return err
		}

		return s.Reminders.RecomputeForEvent(tx, ev.ID, newStart, now)
	})
}

// List returns a user's events overlapping [from, to), soonest first.
func (s *Service) List(ctx context.Context, userID uint64, from, to time.Time) ([]Event, error) {
	var evs []Event
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND start_at < ? AND end_at > ?", userID, to, from).
		Order("start_at asc").
		Find(&evs).Error
	if err != nil {
		return nil, err
	}
	return evs, nil
}

func (s *Service) Get(ctx context.Context, userID, eventID uint64) (*Event, error) {
	var ev Event
	err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", eventID, userID).
		First(&ev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// CreateCategory inserts a category; duplicate names per user surface
// the unique-index violation to the caller.
func (s *Service) CreateCategory(ctx context.Context, userID uint64, name, color string) (*Category, error) {
	c := Category{UserID: userID, Name: name, Color: color}
	if err := s.DB.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) ListCategories(ctx context.Context, userID uint64) ([]Category, error) {
	var cs []Category
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name asc").
		Find(&cs).Error
	if err != nil {
		return nil, err
	}
	return cs, nil
}
