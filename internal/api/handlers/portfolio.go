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

// PortfolioHandler handles investment and loan endpoints.
type PortfolioHandler struct {
	store *store.Store
	svc   *syncer.Service
	log   zerolog.Logger
}

func NewPortfolioHandler(st *store.Store, svc *syncer.Service, log zerolog.Logger) *PortfolioHandler {
	return &PortfolioHandler{store: st, svc: svc, log: log}
}

// ListInvestments handles GET /api/investments
func (h *PortfolioHandler) ListInvestments(w http.ResponseWriter, r *http.Request) {
	investments := h.store.Investments()
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"investments": investments,
		"count":       len(investments),
	})
}

// CreateInvestment handles POST /api/investments
func (h *PortfolioHandler) CreateInvestment(w http.ResponseWriter, r *http.Request) {
	var req domain.Investment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if req.Status == "" {
		req.Status = domain.InvestmentActive
	}
	if req.LastUpdated.IsZero() {
		req.LastUpdated = time.Now().UTC()
	}

	inv, err := h.svc.CreateInvestment(r.Context(), req)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create investment")
		middleware.WriteError(w, statusForError(err), "Failed to create investment")
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, inv)
}

// UpdateInvestment handles PUT /api/investments/{id}
func (h *PortfolioHandler) UpdateInvestment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req domain.Investment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.LastUpdated = time.Now().UTC()

	err := h.svc.UpdateInvestment(r.Context(), id, func(inv *domain.Investment) {
		req.ID = inv.ID
		*inv = req
	})
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to update investment")
		middleware.WriteError(w, statusForError(err), "Failed to update investment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteInvestment handles DELETE /api/investments/{id}
func (h *PortfolioHandler) DeleteInvestment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.svc.DeleteInvestment(r.Context(), id); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to delete investment")
		middleware.WriteError(w, statusForError(err), "Failed to delete investment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListLoans handles GET /api/loans
func (h *PortfolioHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	loans := h.store.Loans()
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"loans": loans,
		"count": len(loans),
	})
}

// CreateLoan handles POST /api/loans
func (h *PortfolioHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var req domain.Loan
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if req.Status == "" {
		req.Status = domain.LoanActive
	}

	l, err := h.svc.CreateLoan(r.Context(), req)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create loan")
		middleware.WriteError(w, statusForError(err), "Failed to create loan")
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, l)
}

// UpdateLoan handles PUT /api/loans/{id}
func (h *PortfolioHandler) UpdateLoan(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req domain.Loan
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.svc.UpdateLoan(r.Context(), id, func(l *domain.Loan) {
		req.ID = l.ID
		*l = req
	})
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to update loan")
		middleware.WriteError(w, statusForError(err), "Failed to update loan")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteLoan handles DELETE /api/loans/{id}
func (h *PortfolioHandler) DeleteLoan(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.svc.DeleteLoan(r.Context(), id); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to delete loan")
		middleware.WriteError(w, statusForError(err), "Failed to delete loan")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
