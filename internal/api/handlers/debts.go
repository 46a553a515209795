package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ddanilov/homeledger/internal/api/middleware"
	"github.com/ddanilov/homeledger/internal/domain"
	"github.com/ddanilov/homeledger/internal/store"
	"github.com/ddanilov/homeledger/internal/syncer"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// DebtsHandler handles debt endpoints.
type DebtsHandler struct {
	store *store.Store
	svc   *syncer.Service
	log   zerolog.Logger
}

func NewDebtsHandler(st *store.Store, svc *syncer.Service, log zerolog.Logger) *DebtsHandler {
	return &DebtsHandler{store: st, svc: svc, log: log}
}

// List handles GET /api/debts
func (h *DebtsHandler) List(w http.ResponseWriter, r *http.Request) {
	debts := h.store.Debts()
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"debts": debts,
		"count": len(debts),
	})
}

// Create handles POST /api/debts
func (h *DebtsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.Debt
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Name is required")
		return
	}

	d, err := h.svc.CreateDebt(r.Context(), req)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create debt")
		middleware.WriteError(w, statusForError(err), "Failed to create debt")
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, d)
}

// Update handles PUT /api/debts/{id}
func (h *DebtsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req domain.Debt
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.svc.UpdateDebt(r.Context(), id, func(d *domain.Debt) {
		req.ID = d.ID
		*d = req
	})
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to update debt")
		middleware.WriteError(w, statusForError(err), "Failed to update debt")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/debts/{id}
func (h *DebtsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.svc.DeleteDebt(r.Context(), id); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to delete debt")
		middleware.WriteError(w, statusForError(err), "Failed to delete debt")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
