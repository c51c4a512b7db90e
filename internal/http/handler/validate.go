package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"tend/internal/auth"
	"tend/internal/validate"
)

type ValidateHandler struct {
	Validator *validate.Validator
}

type validateReq struct {
	StartAt string `json:"start_at"` // RFC3339
	EndAt   string `json:"end_at"`
	Context string `json:"context"`
}

func (h *ValidateHandler) Validate(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req validateReq
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

	verdict := h.Validator.Validate(r.Context(), uid, start, end, req.Context)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(verdict)
}
