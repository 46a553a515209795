package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ddanilov/homeledger/internal/api/middleware"
	"github.com/ddanilov/homeledger/internal/domain"
	"github.com/ddanilov/homeledger/internal/store"
	"github.com/ddanilov/homeledger/internal/syncer"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// AccountsHandler handles credit card and fund source endpoints.
type AccountsHandler struct {
	store *store.Store
	svc   *syncer.Service
	log   zerolog.Logger
}

func NewAccountsHandler(st *store.Store, svc *syncer.Service, log zerolog.Logger) *AccountsHandler {
	return &AccountsHandler{store: st, svc: svc, log: log}
}

// ListCards handles GET /api/credit-cards
func (h *AccountsHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	cards := h.store.CreditCards()
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"credit_cards": cards,
		"count":        len(cards),
	})
}

// CreateCard handles POST /api/credit-cards
func (h *AccountsHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req domain.CreditCard
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Name is required")
		return
	}

	card, err := h.svc.CreateCreditCard(r.Context(), req)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create credit card")
		middleware.WriteError(w, statusForError(err), "Failed to create credit card")
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, card)
}

// UpdateCard handles PUT /api/credit-cards/{id}
func (h *AccountsHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req domain.CreditCard
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.svc.UpdateCreditCard(r.Context(), id, func(c *domain.CreditCard) {
		req.ID = c.ID
		*c = req
	})
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to update credit card")
		middleware.WriteError(w, statusForError(err), "Failed to update credit card")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteCard handles DELETE /api/credit-cards/{id}
func (h *AccountsHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.svc.DeleteCreditCard(r.Context(), id); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to delete credit card")
		middleware.WriteError(w, statusForError(err), "Failed to delete credit card")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListFundSources handles GET /api/fund-sources
func (h *AccountsHandler) ListFundSources(w http.ResponseWriter, r *http.Request) {
	sources := h.store.FundSources()
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"fund_sources": sources,
		"count":        len(sources),
	})
}

// CreateFundSource handles POST /api/fund-sources
func (h *AccountsHandler) CreateFundSource(w http.ResponseWriter, r *http.Request) {
	var req domain.FundSource
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.AccountName == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Account name is required")
		return
	}
	if req.LastUpdated.IsZero() {
		req.LastUpdated = time.Now().UTC()
	}

	fs, err := h.svc.CreateFundSource(r.Context(), req)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create fund source")
		middleware.WriteError(w, statusForError(err), "Failed to create fund source")
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, fs)
}

// UpdateFundSource handles PUT /api/fund-sources/{id}
func (h *AccountsHandler) UpdateFundSource(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req domain.FundSource
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.LastUpdated = time.Now().UTC()

	err := h.svc.UpdateFundSource(r.Context(), id, func(fs *domain.FundSource) {
		req.ID = fs.ID
		*fs = req
	})
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to update fund source")
		middleware.WriteError(w, statusForError(err), "Failed to update fund source")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteFundSource handles DELETE /api/fund-sources/{id}
func (h *AccountsHandler) DeleteFundSource(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.svc.DeleteFundSource(r.Context(), id); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to delete fund source")
		middleware.WriteError(w, statusForError(err), "Failed to delete fund source")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
