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

// BudgetsHandler handles budget endpoints.
type BudgetsHandler struct {
	store *store.Store
	svc   *syncer.Service
	log   zerolog.Logger
}

func NewBudgetsHandler(st *store.Store, svc *syncer.Service, log zerolog.Logger) *BudgetsHandler {
	return &BudgetsHandler{store: st, svc: svc, log: log}
}

// List handles GET /api/budgets
func (h *BudgetsHandler) List(w http.ResponseWriter, r *http.Request) {
	budgets := h.store.Budgets()
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"budgets": budgets,
		"count":   len(budgets),
	})
}

// Create handles POST /api/budgets
func (h *BudgetsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.Budget
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Category == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Category is required")
		return
	}
	if req.Amount < 0 {
		middleware.WriteError(w, http.StatusBadRequest, "Amount must not be negative")
		return
	}
	if req.Period == "" {
		req.Period = domain.BudgetPeriodMonthly
	}

	b, err := h.svc.CreateBudget(r.Context(), req)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create budget")
		middleware.WriteError(w, statusForError(err), "Failed to create budget")
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, b)
}

// Update handles PUT /api/budgets/{id}
func (h *BudgetsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req domain.Budget
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.svc.UpdateBudget(r.Context(), id, func(b *domain.Budget) {
		req.ID = b.ID
		*b = req
	})
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to update budget")
		middleware.WriteError(w, statusForError(err), "Failed to update budget")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/budgets/{id}
func (h *BudgetsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.svc.DeleteBudget(r.Context(), id); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to delete budget")
		middleware.WriteError(w, statusForError(err), "Failed to delete budget")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
