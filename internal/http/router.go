package http

import (
	"net/http"

	"tend/internal/auth"
	"tend/internal/config"
	"tend/internal/event"
	"tend/internal/history"
	"tend/internal/http/handler"
	mw "tend/internal/http/middleware"
	"tend/internal/mood"
	"tend/internal/recommend"
	"tend/internal/reminder"
	"tend/internal/validate"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

// Deps bundles the wired core the router exposes.
type Deps struct {
	DB        *gorm.DB
	JWT       *auth.JWT
	Events    *event.Service
	Reminders *reminder.Repo
	Scanner   *reminder.Scanner
	Moods     *mood.Service
	History   *history.Store
	Scorer    *recommend.Scorer
	Validator *validate.Validator
}

func NewRouter(cfg config.Config, d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ah := &handler.AuthHandler{DB: d.DB, JWT: d.JWT}
	r.Post("/auth/register", ah.Register)
	r.Post("/auth/login", ah.Login)

	me := &handler.MeHandler{DB: d.DB}
	r.With(auth.RequireAuth(d.JWT)).Get("/me", me.Me)
	r.With(auth.RequireAuth(d.JWT)).Patch("/me", me.Update)

	evH := &handler.EventHandler{Svc: d.Events, Reminders: d.Reminders}
	moodH := &handler.MoodHandler{Svc: d.Moods}
	recH := &handler.RecommendHandler{Scorer: d.Scorer, Ledger: d.History}
	valH := &handler.ValidateHandler{Validator: d.Validator}
	scanH := &handler.ScanHandler{Scanner: d.Scanner}

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(d.JWT))

		r.Route("/events", func(r chi.Router) {
			r.Post("/", evH.Create)
			r.Get("/", evH.List)
			r.Post("/validate-time", valH.Validate)

			r.Patch("/{id}/schedule", evH.Reschedule)
			r.Post("/{id}/reminders", evH.AttachReminder)
			r.Get("/{id}/reminders", evH.ListReminders)
		})

		r.Post("/categories", evH.CreateCategory)
		r.Get("/categories", evH.ListCategories)

		r.Put("/mood/{date}", moodH.Upsert)
		r.Get("/mood", moodH.Range)

		r.Get("/recommendations", recH.Recommend)
		r.Post("/recommendations/feedback", recH.Feedback)

		r.Post("/reminders/scan", scanH.Scan)
	})

	return r
}
