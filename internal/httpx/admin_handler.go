package httpx

import (
	"context"
	"crypto/subtle"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/ariefcatur/craft-marketplace.git/internal/sweep"
	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	Engine *sweep.Engine
	Token  string
}

type SweepResp struct {
	Success              bool   `json:"success"`
	ExpiredRequestsCount int    `json:"expiredRequestsCount"`
	Timestamp            string `json:"timestamp"`
}

func (h *AdminHandler) Register(r *chi.Mux) {
	r.Post("/admin/deadline-check", h.triggerSweep)
}

// triggerSweep: trigger manual, code path sama persis dengan sweeper
// terjadwal. Auth dicek sebelum baca store sama sekali.
func (h *AdminHandler) triggerSweep(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	now := time.Now().UTC()
	res, err := h.Engine.Run(ctx, now)
	if err != nil {
		log.Printf("admin: manual sweep failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, SweepResp{Success: false, Timestamp: now.Format(time.RFC3339)})
		return
	}

	writeJSON(w, http.StatusOK, SweepResp{
		Success:              true,
		ExpiredRequestsCount: res.ExpiredCount,
		Timestamp:            res.Timestamp.Format(time.RFC3339),
	})
}

func (h *AdminHandler) authorized(r *http.Request) bool {
	if h.Token == "" {
		return false
	} // token wajib diset, tanpa itu endpoint mati
	auth := r.Header.Get("Authorization")
	tok, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(tok), []byte(h.Token)) == 1
}
