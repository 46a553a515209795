package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ddanilov/homeledger/internal/api/middleware"
	"github.com/ddanilov/homeledger/internal/domain"
	"github.com/ddanilov/homeledger/internal/store"
	"github.com/ddanilov/homeledger/internal/syncer"
	"github.com/rs/zerolog"
)

// ProfileHandler handles the user profile endpoints.
type ProfileHandler struct {
	store *store.Store
	svc   *syncer.Service
	log   zerolog.Logger
}

func NewProfileHandler(st *store.Store, svc *syncer.Service, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{store: st, svc: svc, log: log}
}

// Get handles GET /api/profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.store.UserProfile()
	if !ok {
		middleware.WriteError(w, http.StatusNotFound, "No profile stored")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, profile)
}

// Put handles PUT /api/profile, storing or replacing the profile.
func (h *ProfileHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req domain.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := h.svc.SaveUserProfile(r.Context(), req)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to save profile")
		middleware.WriteError(w, statusForError(err), "Failed to save profile")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, profile)
}

// PutCurrency handles PUT /api/profile/currency.
func (h *ProfileHandler) PutCurrency(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Currency string `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Currency == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Currency is required")
		return
	}

	err := h.svc.UpdateUserProfile(r.Context(), func(p *domain.UserProfile) {
		p.Currency = req.Currency
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to update currency")
		middleware.WriteError(w, statusForError(err), "Failed to update currency")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
