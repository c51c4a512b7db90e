package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"tend/internal/auth"

	"gorm.io/gorm"
)

type MeHandler struct {
	DB *gorm.DB
}

func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var u auth.User
	if err := h.DB.First(&u, uid).Error; err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"user_id":      u.ID,
		"email":        u.Email,
		"display_name": u.DisplayName,
		"timezone":     u.Timezone,
	})
}

type updateMeReq struct {
	DisplayName *string `json:"display_name"`
	Timezone    *string `json:"timezone"`
}

func (h *MeHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req updateMeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	updates := map[string]any{}
	if req.DisplayName != nil {
		updates["display_name"] = strings.TrimSpace(*req.DisplayName)
	}
	if req.Timezone != nil {
		tz := strings.TrimSpace(*req.Timezone)
		if _, err := time.LoadLocation(tz); err != nil {
			http.Error(w, "invalid timezone", http.StatusBadRequest)
			return
		}
		updates["timezone"] = tz
	}
	if len(updates) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.DB.Model(&auth.User{}).Where("id = ?", uid).Updates(updates).Error; err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
