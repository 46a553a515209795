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

// TransactionsHandler handles transaction endpoints.
type TransactionsHandler struct {
	store *store.Store
	svc   *syncer.Service
	log   zerolog.Logger
}

func NewTransactionsHandler(st *store.Store, svc *syncer.Service, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{store: st, svc: svc, log: log}
}

// List handles GET /api/transactions
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	txs := h.store.Transactions()
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": txs,
		"count":        len(txs),
	})
}

// Create handles POST /api/transactions
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.Transaction
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.Kind.Valid() {
		middleware.WriteError(w, http.StatusBadRequest, "Unknown transaction type")
		return
	}
	if req.Amount < 0 {
		middleware.WriteError(w, http.StatusBadRequest, "Amount must not be negative")
		return
	}
	if req.Date.IsZero() {
		req.Date = time.Now().UTC()
	}

	tx, err := h.svc.CreateTransaction(r.Context(), req)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create transaction")
		middleware.WriteError(w, statusForError(err), "Failed to create transaction")
		return
	}

	// Charging a credit card grows its balance. The bump is a side effect
	// here, not a store invariant, so a deleted card is simply a no-op.
	if tx.Kind == domain.KindDebt && tx.CreditCardID != "" {
		if err := h.svc.UpdateCreditCard(r.Context(), tx.CreditCardID, func(c *domain.CreditCard) {
			c.Balance += tx.Amount
		}); err != nil {
			h.log.Warn().Err(err).Str("credit_card_id", tx.CreditCardID).Msg("Failed to bump card balance")
		}
	}

	middleware.WriteJSON(w, http.StatusCreated, tx)
}

// Update handles PUT /api/transactions/{id}
func (h *TransactionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req domain.Transaction
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.Kind.Valid() {
		middleware.WriteError(w, http.StatusBadRequest, "Unknown transaction type")
		return
	}

	err := h.svc.UpdateTransaction(r.Context(), id, func(tx *domain.Transaction) {
		req.ID = tx.ID
		*tx = req
	})
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to update transaction")
		middleware.WriteError(w, statusForError(err), "Failed to update transaction")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/transactions/{id}
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.svc.DeleteTransaction(r.Context(), id); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to delete transaction")
		middleware.WriteError(w, statusForError(err), "Failed to delete transaction")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
