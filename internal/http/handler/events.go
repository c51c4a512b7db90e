package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tend/internal/auth"
	"tend/internal/event"
	"tend/internal/reminder"

	"github.com/go-chi/chi/v5"
)

type EventHandler struct {
	Svc       *event.Service
	Reminders *reminder.Repo
}

type reminderPolicyReq struct {
	Kind          string `json:"kind"`
	CustomHours   *int   `json:"custom_hours"`
	CustomMinutes *int   `json:"custom_minutes"`
}

func (p reminderPolicyReq) policy() reminder.Policy {
	return reminder.Policy{
		Kind:          reminder.PolicyKind(strings.ToUpper(strings.TrimSpace(p.Kind))),
		CustomHours:   p.CustomHours,
		CustomMinutes: p.CustomMinutes,
	}
}

type createEventReq struct {
	Title      string              `json:"title"`
	Notes      string              `json:"notes"`
	CategoryID *uint64             `json:"category_id"`
	StartAt    string              `json:"start_at"` // RFC3339
	EndAt      string              `json:"end_at"`
	Reminders  []reminderPolicyReq `json:"reminders"`
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req createEventReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		http.Error(w, "title required", http.StatusBadRequest)
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		http.Error(w, "invalid start_at (RFC3339)", http.StatusBadRequest)
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndAt)
	if err != nil {
		http.Error(w, "invalid end_at (RFC3339)", http.StatusBadRequest)
		return
	}

	in := event.CreateInput{
		Title:      req.Title,
		Notes:      req.Notes,
		CategoryID: req.CategoryID,
		StartAt:    start,
		EndAt:      end,
	}
	for _, p := range req.Reminders {
		in.Policies = append(in.Policies, p.policy())
	}

	res, err := h.Svc.Create(r.Context(), uid, in)
	if err != nil {
		switch {
		case errors.Is(err, event.ErrInvalidWindow):
			http.Error(w, "end must be after start", http.StatusBadRequest)
		case errors.Is(err, reminder.ErrInvalidPolicy):
			http.Error(w, "invalid reminder policy", http.StatusBadRequest)
		default:
			http.Error(w, "server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":              res.EventID,
		"reminders":       res.Reminders,
		"stale_reminders": res.StaleReminders,
	})
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	now := time.Now()
	from, to := now.AddDate(0, 0, -7), now.AddDate(0, 0, 30)
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			http.Error(w, "invalid from (RFC3339)", http.StatusBadRequest)
			return
		}
		from = t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			http.Error(w, "invalid to (RFC3339)", http.StatusBadRequest)
			return
		}
		to = t
	}

	evs, err := h.Svc.List(r.Context(), uid, from, to)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"events": evs})
}

type rescheduleReq struct {
	StartAt string `json:"start_at"`
	EndAt   string `json:"end_at"`
}

func (h *EventHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id64, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req rescheduleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	start, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		http.Error(w, "invalid start_at (RFC3339)", http.StatusBadRequest)
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndAt)
	if err != nil {
		http.Error(w, "invalid end_at (RFC3339)", http.StatusBadRequest)
		return
	}

	err = h.Svc.Reschedule(r.Context(), uid, id64, start, end)
	if err != nil {
		switch {
		case errors.Is(err, event.ErrNotFound):
			http.Error(w, "not found", http.StatusNotFound)
		case errors.Is(err, event.ErrInvalidWindow):
			http.Error(w, "end must be after start", http.StatusBadRequest)
		default:
			http.Error(w, "server error", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *EventHandler) AttachReminder(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id64, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req reminderPolicyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	start, err := h.Reminders.EventStart(r.Context(), uid, id64)
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	rem, err := h.Reminders.Attach(r.Context(), uid, id64, start, req.policy(), time.Now())
	if err != nil && !errors.Is(err, reminder.ErrReminderAlreadyPast) {
		if errors.Is(err, reminder.ErrInvalidPolicy) {
			http.Error(w, "invalid reminder policy", http.StatusBadRequest)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"reminder": rem,
		"stale":    rem.Stale,
	})
}

func (h *EventHandler) ListReminders(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id64, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	rems, err := h.Reminders.ListForEvent(r.Context(), uid, id64)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"reminders": rems})
}

type createCategoryReq struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (h *EventHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req createCategoryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		http.Error(w, "name required", http.StatusBadRequest)
		return
	}

	c, err := h.Svc.CreateCategory(r.Context(), uid, req.Name, req.Color)
	if err != nil {
		http.Error(w, "name already used", http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

func (h *EventHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	cs, err := h.Svc.ListCategories(r.Context(), uid)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"categories": cs})
}
