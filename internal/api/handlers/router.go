package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/ddanilov/homeledger/internal/advisor"
	"github.com/ddanilov/homeledger/internal/api/middleware"
	"github.com/ddanilov/homeledger/internal/recurring"
	"github.com/ddanilov/homeledger/internal/store"
	"github.com/ddanilov/homeledger/internal/syncer"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// RouterConfig carries everything the router needs wired in.
type RouterConfig struct {
	Store     *store.Store
	Syncer    *syncer.Service
	Processor *recurring.Processor
	Advisor   *advisor.Advisor // nil disables the advisor endpoint
	JWTSecret string
	OwnerID   string
	Log       zerolog.Logger
}

// NewRouter builds the full API surface. /health is open; everything under
// /api requires the owner's token.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Auth(cfg.JWTSecret, cfg.OwnerID))

	transactions := NewTransactionsHandler(cfg.Store, cfg.Syncer, cfg.Log)
	api.HandleFunc("/transactions", transactions.List).Methods(http.MethodGet)
	api.HandleFunc("/transactions", transactions.Create).Methods(http.MethodPost)
	api.HandleFunc("/transactions/{id}", transactions.Update).Methods(http.MethodPut)
	api.HandleFunc("/transactions/{id}", transactions.Delete).Methods(http.MethodDelete)

	budgets := NewBudgetsHandler(cfg.Store, cfg.Syncer, cfg.Log)
	api.HandleFunc("/budgets", budgets.List).Methods(http.MethodGet)
	api.HandleFunc("/budgets", budgets.Create).Methods(http.MethodPost)
	api.HandleFunc("/budgets/{id}", budgets.Update).Methods(http.MethodPut)
	api.HandleFunc("/budgets/{id}", budgets.Delete).Methods(http.MethodDelete)

	recurringRules := NewRecurringHandler(cfg.Store, cfg.Syncer, cfg.Processor, cfg.Log)
	api.HandleFunc("/recurring", recurringRules.List).Methods(http.MethodGet)
	api.HandleFunc("/recurring", recurringRules.Create).Methods(http.MethodPost)
	api.HandleFunc("/recurring/process", recurringRules.Process).Methods(http.MethodPost)
	api.HandleFunc("/recurring/{id}", recurringRules.Update).Methods(http.MethodPut)
	api.HandleFunc("/recurring/{id}", recurringRules.Delete).Methods(http.MethodDelete)

	debts := NewDebtsHandler(cfg.Store, cfg.Syncer, cfg.Log)
	api.HandleFunc("/debts", debts.List).Methods(http.MethodGet)
	api.HandleFunc("/debts", debts.Create).Methods(http.MethodPost)
	api.HandleFunc("/debts/{id}", debts.Update).Methods(http.MethodPut)
	api.HandleFunc("/debts/{id}", debts.Delete).Methods(http.MethodDelete)

	accounts := NewAccountsHandler(cfg.Store, cfg.Syncer, cfg.Log)
	api.HandleFunc("/credit-cards", accounts.ListCards).Methods(http.MethodGet)
	api.HandleFunc("/credit-cards", accounts.CreateCard).Methods(http.MethodPost)
	api.HandleFunc("/credit-cards/{id}", accounts.UpdateCard).Methods(http.MethodPut)
	api.HandleFunc("/credit-cards/{id}", accounts.DeleteCard).Methods(http.MethodDelete)
	api.HandleFunc("/fund-sources", accounts.ListFundSources).Methods(http.MethodGet)
	api.HandleFunc("/fund-sources", accounts.CreateFundSource).Methods(http.MethodPost)
	api.HandleFunc("/fund-sources/{id}", accounts.UpdateFundSource).Methods(http.MethodPut)
	api.HandleFunc("/fund-sources/{id}", accounts.DeleteFundSource).Methods(http.MethodDelete)

	portfolio := NewPortfolioHandler(cfg.Store, cfg.Syncer, cfg.Log)
	api.HandleFunc("/investments", portfolio.ListInvestments).Methods(http.MethodGet)
	api.HandleFunc("/investments", portfolio.CreateInvestment).Methods(http.MethodPost)
	api.HandleFunc("/investments/{id}", portfolio.UpdateInvestment).Methods(http.MethodPut)
	api.HandleFunc("/investments/{id}", portfolio.DeleteInvestment).Methods(http.MethodDelete)
	api.HandleFunc("/loans", portfolio.ListLoans).Methods(http.MethodGet)
	api.HandleFunc("/loans", portfolio.CreateLoan).Methods(http.MethodPost)
	api.HandleFunc("/loans/{id}", portfolio.UpdateLoan).Methods(http.MethodPut)
	api.HandleFunc("/loans/{id}", portfolio.DeleteLoan).Methods(http.MethodDelete)

	profile := NewProfileHandler(cfg.Store, cfg.Syncer, cfg.Log)
	api.HandleFunc("/profile", profile.Get).Methods(http.MethodGet)
	api.HandleFunc("/profile", profile.Put).Methods(http.MethodPut)
	api.HandleFunc("/profile/currency", profile.PutCurrency).Methods(http.MethodPut)

	reports := NewReportsHandler(cfg.Store, cfg.Log)
	api.HandleFunc("/reports/summary", reports.Summary).Methods(http.MethodGet)
	api.HandleFunc("/reports/categories", reports.Categories).Methods(http.MethodGet)
	api.HandleFunc("/reports/budgets", reports.Budgets).Methods(http.MethodGet)
	api.HandleFunc("/reports/accounts", reports.Accounts).Methods(http.MethodGet)
	api.HandleFunc("/reports/portfolio", reports.Portfolio).Methods(http.MethodGet)
	api.HandleFunc("/reports/habits", reports.Habits).Methods(http.MethodGet)

	adv := NewAdvisorHandler(cfg.Store, cfg.Advisor, cfg.Log)
	api.HandleFunc("/advisor", adv.Advise).Methods(http.MethodPost)

	return middleware.Recovery(cfg.Log)(
		middleware.Logger(cfg.Log)(
			middleware.RequestID(
				middleware.CORS(r),
			),
		),
	)
}

// statusForError maps a write failure to a response code: a rejected remote
// persistence call is the backend's problem, anything else is ours.
func statusForError(err error) int {
	var remote *syncer.Error
	if errors.As(err, &remote) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
