package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tend/internal/auth"
	"tend/internal/history"
	"tend/internal/recommend"
)

type RecommendHandler struct {
	Scorer *recommend.Scorer
	Ledger recommend.Ledger
}

func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var moodRating *int
	if v := r.URL.Query().Get("mood"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 5 {
			http.Error(w, "mood must be 1..5", http.StatusBadRequest)
			return
		}
		moodRating = &n
	}

	count := 5
	if v := r.URL.Query().Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 20 {
			http.Error(w, "count must be 1..20", http.StatusBadRequest)
			return
		}
		count = n
	}

	recs, err := h.Scorer.Recommend(r.Context(), uid, moodRating, count, time.Now())
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"recommendations": recs})
}

type feedbackReq struct {
	RecommendationID string `json:"recommendation_id"`
	Action           string `json:"action"`
	MoodAfter        *int   `json:"mood_after"`
	Notes            string `json:"notes"`
}

func (h *RecommendHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req feedbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	req.RecommendationID = strings.TrimSpace(req.RecommendationID)
	if req.RecommendationID == "" {
		http.Error(w, "recommendation_id required", http.StatusBadRequest)
		return
	}

	err := h.Scorer.SubmitFeedback(r.Context(), h.Ledger, uid, recommend.FeedbackInput{
		RecommendationID: req.RecommendationID,
		Action:           history.Action(strings.ToUpper(strings.TrimSpace(req.Action))),
		MoodAfter:        req.MoodAfter,
		Notes:            req.Notes,
	}, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, recommend.ErrUnknownRecommendation):
			http.Error(w, "unknown recommendation", http.StatusNotFound)
		case errors.Is(err, recommend.ErrInvalidFeedback):
			http.Error(w, "invalid feedback", http.StatusBadRequest)
		default:
			http.Error(w, "server error", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
