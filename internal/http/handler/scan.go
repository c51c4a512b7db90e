package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"tend/internal/reminder"
)

// ScanHandler exposes an on-demand due-reminder drain. It shares the
// scanner's claim path, so it is safe alongside the periodic loop.
type ScanHandler struct {
	Scanner *reminder.Scanner
}

func (h *ScanHandler) Scan(w http.ResponseWriter, r *http.Request) {
	claimed, err := h.Scanner.ScanOnce(r.Context(), time.Now())
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"claimed": claimed,
		"count":   len(claimed),
	})
}
