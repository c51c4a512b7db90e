package db

import (
	"fmt"

	"tend/internal/auth"
	"tend/internal/event"
	"tend/internal/history"
	"tend/internal/mood"
	"tend/internal/reminder"
	"tend/internal/validate"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	// Tables
	if err := gdb.AutoMigrate(
		&auth.User{},
		&event.Category{},
		&event.Event{},
		&reminder.Reminder{},
		&mood.Entry{},
		&history.Feedback{},
		&validate.Record{},
	); err != nil {
		return err
	}

	// Categories unique per user
	if err := gdb.Exec(`create unique index if not exists uq_categories_user_name on categories(user_id, name);`).Error; err != nil {
		return err
	}

	// Event tag filter (GIN for text[])
	if err := gdb.Exec(`create index if not exists idx_events_tags on events using gin (tags);`).Error; err != nil {
		return err
	}

	// Helpful indexes
	stmts := []string{
		`create index if not exists idx_events_user_start on events(user_id, start_at);`,
		// the scan predicate: unsent, non-stale, due
		`create index if not exists idx_reminders_due on reminders(trigger_at) where sent = false and stale = false;`,
		`create index if not exists idx_reminders_event on reminders(event_id, sent);`,
		`create index if not exists idx_feedback_user_created on recommendation_feedbacks(user_id, created_at);`,
		`create index if not exists idx_feedback_rec on recommendation_feedbacks(recommendation_id);`,
		`create index if not exists idx_validation_user_created on validation_records(user_id, created_at desc);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
