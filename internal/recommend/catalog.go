package recommend

import (
	"encoding/json"
	"fmt"
	"os"
)

// Item is one static suggestion candidate. BaseWeight is the catalog
// prior on the 0..100 confidence scale before any personal history is
// applied.
type Item struct {
	Type            SuggestionType `json:"type"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	DurationMinutes int            `json:"duration_minutes"`
	BaseWeight      float64        `json:"base_weight"`
	Tags            []string       `json:"tags,omitempty"`

	// TimesOfDay restricts the candidate to buckets out of
	// morning/afternoon/evening/night; empty means any time.
	TimesOfDay []string `json:"times_of_day,omitempty"`

	// Weekend: nil = any day, true = weekend only, false = weekday only.
	Weekend *bool `json:"weekend,omitempty"`

	// SocialHours restricts the candidate to the configured social
	// window (no "call a friend" at 2am).
	SocialHours bool `json:"social_hours,omitempty"`
}

// Catalog is injected, versioned configuration, not code: updates ship
// as data.
type Catalog struct {
	Version string `json:"version"`
	Items   []Item `json:"items"`
}

// Load reads a catalog override from a JSON file; an empty path returns
// the built-in catalog.
func Load(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	var c Catalog
	if err := json.Unmarshal(b, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	if len(c.Items) == 0 {
		return Catalog{}, fmt.Errorf("catalog %s has no items", path)
	}
	return c, nil
}

func boolp(b bool) *bool { return &b }

// DefaultCatalog is the shipped suggestion set.
func DefaultCatalog() Catalog {
	return Catalog{
		Version: "builtin-1",
		Items: []Item{
			{Type: TypePhysical, Title: "Take a brisk walk", Description: "20 minutes outside, no phone.", DurationMinutes: 20, BaseWeight: 55, Tags: []string{"outdoors", "movement"}},
			{Type: TypePhysical, Title: "Stretch break", Description: "Loosen neck, shoulders and back.", DurationMinutes: 10, BaseWeight: 50, Tags: []string{"movement"}},
			{Type: TypePhysical, Title: "Morning workout", Description: "A short bodyweight circuit to start the day.", DurationMinutes: 30, BaseWeight: 52, TimesOfDay: []string{"morning"}, Tags: []string{"movement", "energy"}},
			{Type: TypeMental, Title: "Ten-minute meditation", Description: "Guided breathing, eyes closed.", DurationMinutes: 10, BaseWeight: 54, Tags: []string{"calm"}},
			{Type: TypeMental, Title: "Journal three thoughts", Description: "Write down whatever is circling.", DurationMinutes: 15, BaseWeight: 48, Tags: []string{"reflection"}},
			{Type: TypeSocial, Title: "Call a friend", Description: "Catch up with someone you haven't talked to in a while.", DurationMinutes: 25, BaseWeight: 50, SocialHours: true, Tags: []string{"connection"}},
			{Type: TypeSocial, Title: "Plan a weekend meetup", Description: "Put something on the calendar with people you like.", DurationMinutes: 15, BaseWeight: 46, SocialHours: true, Weekend: boolp(true), Tags: []string{"connection"}},
			{Type: TypeCreative, Title: "Sketch for fun", Description: "No goal, just draw for a while.", DurationMinutes: 20, BaseWeight: 44, Tags: []string{"play"}},
			{Type: TypeCreative, Title: "Cook something new", Description: "Pick a recipe you have never tried.", DurationMinutes: 45, BaseWeight: 42, TimesOfDay: []string{"afternoon", "evening"}, Tags: []string{"play", "food"}},
			{Type: TypeRest, Title: "Short nap", Description: "Twenty minutes, alarm set.", DurationMinutes: 20, BaseWeight: 45, TimesOfDay: []string{"afternoon"}, Tags: []string{"recovery"}},
			{Type: TypeRest, Title: "Early night", Description: "Screens off, lights out before eleven.", DurationMinutes: 30, BaseWeight: 47, TimesOfDay: []string{"evening", "night"}, Tags: []string{"recovery", "sleep"}},
			{Type: TypeRest, Title: "Do nothing for five minutes", Description: "Sit still and let the brain idle.", DurationMinutes: 5, BaseWeight: 40, Tags: []string{"recovery"}},
		},
	}
}
