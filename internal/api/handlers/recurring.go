package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ddanilov/homeledger/internal/api/middleware"
	"github.com/ddanilov/homeledger/internal/domain"
	"github.com/ddanilov/homeledger/internal/recurring"
	"github.com/ddanilov/homeledger/internal/store"
	"github.com/ddanilov/homeledger/internal/syncer"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// RecurringHandler handles recurring-rule endpoints.
type RecurringHandler struct {
	store *store.Store
	svc   *syncer.Service
	proc  *recurring.Processor
	log   zerolog.Logger
}

func NewRecurringHandler(st *store.Store, svc *syncer.Service, proc *recurring.Processor, log zerolog.Logger) *RecurringHandler {
	return &RecurringHandler{store: st, svc: svc, proc: proc, log: log}
}

// List handles GET /api/recurring
func (h *RecurringHandler) List(w http.ResponseWriter, r *http.Request) {
	rules := h.store.RecurringRules()
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"recurring_rules": rules,
		"count":           len(rules),
	})
}

// Create handles POST /api/recurring
func (h *RecurringHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.RecurringRule
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.Frequency.Valid() {
		middleware.WriteError(w, http.StatusBadRequest, "Unknown frequency")
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
	if _, err := time.Parse(domain.StartDateLayout, req.StartDate); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
		return
	}
	// The scheduler owns this field.
	req.LastProcessed = nil

	rule, err := h.svc.CreateRecurringRule(r.Context(), req)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create recurring rule")
		middleware.WriteError(w, statusForError(err), "Failed to create recurring rule")
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, rule)
}

// Update handles PUT /api/recurring/{id}
func (h *RecurringHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req domain.RecurringRule
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.svc.UpdateRecurringRule(r.Context(), id, func(rule *domain.RecurringRule) {
		req.ID = rule.ID
		req.LastProcessed = rule.LastProcessed
		*rule = req
	})
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to update recurring rule")
		middleware.WriteError(w, statusForError(err), "Failed to update recurring rule")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/recurring/{id}
func (h *RecurringHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.svc.DeleteRecurringRule(r.Context(), id); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to delete recurring rule")
		middleware.WriteError(w, statusForError(err), "Failed to delete recurring rule")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Process handles POST /api/recurring/process, forcing a scheduler pass
// outside the hourly cadence.
func (h *RecurringHandler) Process(w http.ResponseWriter, r *http.Request) {
	materialized := h.proc.ProcessDue(time.Now().UTC())
	middleware.WriteJSON(w, http.StatusOK, map[string]int{"materialized": materialized})
}
