package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ddanilov/homeledger/internal/api/middleware"
	"github.com/ddanilov/homeledger/internal/report"
	"github.com/ddanilov/homeledger/internal/store"
	"github.com/rs/zerolog"
)

// ReportsHandler serves derived views over the store.
type ReportsHandler struct {
	store *store.Store
	now   func() time.Time
	log   zerolog.Logger
}

func NewReportsHandler(st *store.Store, log zerolog.Logger) *ReportsHandler {
	return &ReportsHandler{store: st, now: time.Now, log: log}
}

// window parses optional from/to query parameters (YYYY-MM-DD), defaulting
// to the current month.
func (h *ReportsHandler) window(r *http.Request) (time.Time, time.Time, bool) {
	now := h.now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return from, to, false
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return from, to, false
		}
		to = parsed
	}
	return from, to, true
}

// Summary handles GET /api/reports/summary
func (h *ReportsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.window(r)
	if !ok {
		middleware.WriteError(w, http.StatusBadRequest, "from/to must be YYYY-MM-DD")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, report.Summarize(h.store.Snapshot(), from, to))
}

// Categories handles GET /api/reports/categories
func (h *ReportsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.window(r)
	if !ok {
		middleware.WriteError(w, http.StatusBadRequest, "from/to must be YYYY-MM-DD")
		return
	}
	categories := report.ByCategory(h.store.Snapshot(), from, to)
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"count":      len(categories),
	})
}

// Budgets handles GET /api/reports/budgets
func (h *ReportsHandler) Budgets(w http.ResponseWriter, r *http.Request) {
	progress := report.Budgets(h.store.Snapshot(), h.now().UTC())
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"budgets": progress,
		"count":   len(progress),
	})
}

// Accounts handles GET /api/reports/accounts
func (h *ReportsHandler) Accounts(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"fund_sources": report.FundSources(snap),
		"credit_cards": report.Cards(snap),
		"debts":        report.Debts(snap),
	})
}

// Portfolio handles GET /api/reports/portfolio
func (h *ReportsHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"investments": report.Investments(snap),
		"loans":       report.Loans(snap),
	})
}

// Habits handles GET /api/reports/habits
func (h *ReportsHandler) Habits(w http.ResponseWriter, r *http.Request) {
	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			middleware.WriteError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}
	middleware.WriteJSON(w, http.StatusOK, report.SpendingHabits(h.store.Snapshot(), h.now().UTC(), days))
}
