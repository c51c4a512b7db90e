package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"tend/internal/auth"
	"tend/internal/mood"

	"github.com/go-chi/chi/v5"
)

type MoodHandler struct {
	Svc *mood.Service
}

type upsertMoodReq struct {
	Rating int    `json:"rating"`
	Notes  string `json:"notes"`
}

func (h *MoodHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	day, err := time.Parse("2006-01-02", chi.URLParam(r, "date"))
	if err != nil {
		http.Error(w, "invalid date (YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	var req upsertMoodReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	e, err := h.Svc.Upsert(r.Context(), uid, day, req.Rating, req.Notes)
	if err != nil {
		if errors.Is(err, mood.ErrInvalidRating) {
			http.Error(w, "rating must be 1..5", http.StatusBadRequest)
			return
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(e)
}

func (h *MoodHandler) Range(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	now := time.Now()
	from, to := now.AddDate(0, 0, -30), now
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			http.Error(w, "invalid from (YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		from = t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			http.Error(w, "invalid to (YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		to = t
	}

	entries, err := h.Svc.Range(r.Context(), uid, from, to)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"entries": entries})
}
