package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ddanilov/homeledger/internal/domain"
	"github.com/ddanilov/homeledger/internal/logger"
	"github.com/ddanilov/homeledger/internal/recurring"
	"github.com/ddanilov/homeledger/internal/store"
	"github.com/ddanilov/homeledger/internal/syncer"
	"github.com/golang-jwt/jwt/v5"
)

const (
	testSecret = "test-secret"
	testOwner  = "owner-1"
)

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func newTestRouter(t *testing.T) (http.Handler, *store.Store) {
	t.Helper()
	log := logger.NewWithWriter(testWriter{t})
	st := store.New()
	svc := syncer.New(st, nil, testOwner, log)
	proc := recurring.NewProcessor(syncer.NewLedger(svc, log), log)

	router := NewRouter(RouterConfig{
		Store:     st,
		Syncer:    svc,
		Processor: proc,
		JWTSecret: testSecret,
		OwnerID:   testOwner,
		Log:       log,
	})
	return router, st
}

func signToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthIsOpen(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("health status: %d", rec.Code)
	}
}

func TestAuthRejectsMissingToken(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/transactions", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRejectsForeignSubject(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/transactions", signToken(t, "somebody-else"), nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestTransactionLifecycle(t *testing.T) {
	router, st := newTestRouter(t)
	token := signToken(t, testOwner)

	rec := doJSON(t, router, http.MethodPost, "/api/transactions", token, domain.Transaction{
		Amount:   42,
		Kind:     domain.KindExpense,
		Category: "food",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status: %d body: %s", rec.Code, rec.Body)
	}
	var created domain.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding created transaction: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created transaction has no ID")
	}

	created.Category = "groceries"
	rec = doJSON(t, router, http.MethodPut, "/api/transactions/"+created.ID, token, created)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("update status: %d", rec.Code)
	}
	if got, _ := st.Transaction(created.ID); got.Category != "groceries" {
		t.Errorf("update not applied: %+v", got)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/transactions/"+created.ID, token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status: %d", rec.Code)
	}
	if got := st.Transactions(); len(got) != 0 {
		t.Errorf("transaction not removed: %+v", got)
	}
}

func TestCreateTransactionRejectsUnknownKind(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/api/transactions", signToken(t, testOwner), map[string]interface{}{
		"amount": 10,
		"type":   "teleport",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestCreateTransactionRejectsNegativeAmount(t *testing.T) {
	router, st := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/api/transactions", signToken(t, testOwner), domain.Transaction{
		Amount: -25,
		Kind:   domain.KindExpense,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if got := len(st.Transactions()); got != 0 {
		t.Errorf("store holds %d transactions, want 0", got)
	}
}

func TestCreateBudgetRejectsNegativeAmount(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/api/budgets", signToken(t, testOwner), domain.Budget{
		Category: "food",
		Amount:   -100,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestDebtTransactionBumpsCardBalance(t *testing.T) {
	router, st := newTestRouter(t)
	token := signToken(t, testOwner)

	card := st.AddCreditCard(domain.CreditCard{Name: "visa", Limit: 1000, Balance: 100})

	rec := doJSON(t, router, http.MethodPost, "/api/transactions", token, domain.Transaction{
		Amount:       50,
		Kind:         domain.KindDebt,
		CreditCardID: card.ID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status: %d", rec.Code)
	}
	if got, _ := st.CreditCard(card.ID); got.Balance != 150 {
		t.Errorf("card balance: got %v want 150", got.Balance)
	}
}

func TestDebtTransactionWithDanglingCardStillRecords(t *testing.T) {
	router, st := newTestRouter(t)
	token := signToken(t, testOwner)

	rec := doJSON(t, router, http.MethodPost, "/api/transactions", token, domain.Transaction{
		Amount:       50,
		Kind:         domain.KindDebt,
		CreditCardID: "deleted-card",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status: %d", rec.Code)
	}
	if got := st.Transactions(); len(got) != 1 {
		t.Errorf("transaction not recorded: %+v", got)
	}
}

func TestUpdateUnknownTransactionIsNoOp(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPut, "/api/transactions/missing", signToken(t, testOwner), domain.Transaction{
		Amount: 1,
		Kind:   domain.KindExpense,
	})
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for unknown id, got %d", rec.Code)
	}
}

func TestCreateRecurringRuleValidation(t *testing.T) {
	router, _ := newTestRouter(t)
	token := signToken(t, testOwner)

	tests := []struct {
		name string
		body domain.RecurringRule
		want int
	}{
		{
			name: "valid",
			body: domain.RecurringRule{Amount: 9.99, Kind: domain.KindExpense, Frequency: domain.FrequencyMonthly, StartDate: "2024-01-15"},
			want: http.StatusCreated,
		},
		{
			name: "bad frequency",
			body: domain.RecurringRule{Amount: 9.99, Kind: domain.KindExpense, Frequency: "fortnightly", StartDate: "2024-01-15"},
			want: http.StatusBadRequest,
		},
		{
			name: "bad start date",
			body: domain.RecurringRule{Amount: 9.99, Kind: domain.KindExpense, Frequency: domain.FrequencyMonthly, StartDate: "15/01/2024"},
			want: http.StatusBadRequest,
		},
		{
			name: "negative amount",
			body: domain.RecurringRule{Amount: -9.99, Kind: domain.KindExpense, Frequency: domain.FrequencyMonthly, StartDate: "2024-01-15"},
			want: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/recurring", token, tt.body)
			if rec.Code != tt.want {
				t.Errorf("status: got %d want %d, body %s", rec.Code, tt.want, rec.Body)
			}
		})
	}
}

func TestRecurringProcessEndpoint(t *testing.T) {
	router, st := newTestRouter(t)
	token := signToken(t, testOwner)

	st.AddRecurringRule(domain.RecurringRule{
		Amount:    15,
		Kind:      domain.KindExpense,
		Category:  "subscriptions",
		Details:   "music",
		Frequency: domain.FrequencyMonthly,
		StartDate: "2000-01-01",
	})

	rec := doJSON(t, router, http.MethodPost, "/api/recurring/process", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("process status: %d", rec.Code)
	}
	var resp map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["materialized"] != 1 {
		t.Errorf("materialized: got %d want 1", resp["materialized"])
	}
	if got := st.Transactions(); len(got) != 1 || !recurring.IsMaterialized(got[0].Details) {
		t.Errorf("materialized transaction missing: %+v", got)
	}
}

func TestReportsSummary(t *testing.T) {
	router, st := newTestRouter(t)
	token := signToken(t, testOwner)

	now := time.Now().UTC()
	st.AddTransaction(domain.Transaction{Date: now, Amount: 100, Kind: domain.KindIncome})
	st.AddTransaction(domain.Transaction{Date: now, Amount: 30, Kind: domain.KindExpense})

	rec := doJSON(t, router, http.MethodGet, "/api/reports/summary", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary status: %d", rec.Code)
	}
	var sum struct {
		Income   float64 `json:"income"`
		Expenses float64 `json:"expenses"`
		Net      float64 `json:"net"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &sum); err != nil {
		t.Fatalf("decoding summary: %v", err)
	}
	if sum.Income != 100 || sum.Expenses != 30 || sum.Net != 70 {
		t.Errorf("summary: %+v", sum)
	}
}

func TestReportsSummaryRejectsBadWindow(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/reports/summary?from=nonsense", signToken(t, testOwner), nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestReportsPortfolio(t *testing.T) {
	router, st := newTestRouter(t)
	token := signToken(t, testOwner)

	st.AddInvestment(domain.Investment{Name: "index fund", PurchasePrice: 1000, CurrentValue: 1100})
	loan := st.AddLoan(domain.Loan{Name: "car", OriginalAmount: 10000, CurrentBalance: 7500})
	st.AddTransaction(domain.Transaction{Date: time.Now().UTC(), Amount: 250, Kind: domain.KindLoan, LoanID: loan.ID})

	rec := doJSON(t, router, http.MethodGet, "/api/reports/portfolio", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("portfolio status: %d", rec.Code)
	}
	var resp struct {
		Investments []struct {
			GainLoss float64 `json:"gain_loss"`
		} `json:"investments"`
		Loans []struct {
			Repaid   float64 `json:"repaid"`
			Payments float64 `json:"payments"`
		} `json:"loans"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding portfolio: %v", err)
	}
	if len(resp.Investments) != 1 || resp.Investments[0].GainLoss != 100 {
		t.Errorf("investments: %+v", resp.Investments)
	}
	if len(resp.Loans) != 1 || resp.Loans[0].Repaid != 2500 || resp.Loans[0].Payments != 250 {
		t.Errorf("loans: %+v", resp.Loans)
	}
}

func TestStatusForError(t *testing.T) {
	remote := &syncer.Error{Op: "CreateTransaction", Err: errors.New("connection refused")}
	if got := statusForError(fmt.Errorf("handler: %w", remote)); got != http.StatusBadGateway {
		t.Errorf("remote failure status = %d, want 502", got)
	}
	if got := statusForError(errors.New("anything else")); got != http.StatusInternalServerError {
		t.Errorf("local failure status = %d, want 500", got)
	}
}

func TestAdvisorUnconfigured(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/api/advisor", signToken(t, testOwner), nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	router, _ := newTestRouter(t)
	token := signToken(t, testOwner)

	rec := doJSON(t, router, http.MethodGet, "/api/profile", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before profile stored, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPut, "/api/profile", token, domain.UserProfile{Name: "Dana", Currency: "EUR"})
	if rec.Code != http.StatusOK {
		t.Fatalf("put profile status: %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPut, "/api/profile/currency", token, map[string]string{"currency": "GBP"})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("put currency status: %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/profile", token, nil)
	var profile domain.UserProfile
	if err := json.Unmarshal(rec.Body.Bytes(), &profile); err != nil {
		t.Fatalf("decoding profile: %v", err)
	}
	if profile.Currency != "GBP" {
		t.Errorf("currency: got %q want GBP", profile.Currency)
	}
}

func TestListEnvelope(t *testing.T) {
	router, st := newTestRouter(t)
	token := signToken(t, testOwner)

	for i := 0; i < 3; i++ {
		st.AddBudget(domain.Budget{Category: fmt.Sprintf("cat-%d", i), Amount: 100})
	}

	rec := doJSON(t, router, http.MethodGet, "/api/budgets", token, nil)
	var resp struct {
		Budgets []domain.Budget `json:"budgets"`
		Count   int             `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if resp.Count != 3 || len(resp.Budgets) != 3 {
		t.Errorf("list envelope: %+v", resp)
	}
}
