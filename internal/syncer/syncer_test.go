package syncer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ddanilov/homeledger/internal/domain"
	"github.com/ddanilov/homeledger/internal/logger"
	"github.com/ddanilov/homeledger/internal/postgres"
	"github.com/ddanilov/homeledger/internal/store"
)

// fakeBackend is an in-memory Backend. When fail is set every call returns
// it, which is how the tests force remote rejection; failInsertTx rejects
// only transaction inserts.
type fakeBackend struct {
	fail         error
	failInsertTx error

	txs     []domain.Transaction
	budgets []domain.Budget
	rules   []domain.RecurringRule
	debts   []domain.Debt
	cards   []domain.CreditCard
	funds   []domain.FundSource
	invs    []domain.Investment
	loans   []domain.Loan
	profile *domain.UserProfile

	nextID int
}

func (f *fakeBackend) assign(id string) string {
	if id != "" {
		return id
	}
	f.nextID++
	return fmt.Sprintf("srv-%d", f.nextID)
}

func (f *fakeBackend) FetchTransactions(context.Context, string) ([]domain.Transaction, error) {
	return f.txs, f.fail
}

func (f *fakeBackend) InsertTransaction(_ context.Context, _ string, tx domain.Transaction) (domain.Transaction, error) {
	if f.fail != nil {
		return domain.Transaction{}, f.fail
	}
	if f.failInsertTx != nil {
		return domain.Transaction{}, f.failInsertTx
	}
	tx.ID = f.assign(tx.ID)
	f.txs = append(f.txs, tx)
	return tx, nil
}

func (f *fakeBackend) UpdateTransaction(_ context.Context, _, id string, tx domain.Transaction) (domain.Transaction, error) {
	if f.fail != nil {
		return domain.Transaction{}, f.fail
	}
	tx.ID = id
	for i := range f.txs {
		if f.txs[i].ID == id {
			f.txs[i] = tx
		}
	}
	return tx, nil
}

func (f *fakeBackend) DeleteTransaction(_ context.Context, _, id string) error {
	if f.fail != nil {
		return f.fail
	}
	kept := f.txs[:0]
	for _, tx := range f.txs {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}
	f.txs = kept
	return nil
}

func (f *fakeBackend) FetchBudgets(context.Context, string) ([]domain.Budget, error) {
	return f.budgets, f.fail
}

func (f *fakeBackend) InsertBudget(_ context.Context, _ string, b domain.Budget) (domain.Budget, error) {
	if f.fail != nil {
		return domain.Budget{}, f.fail
	}
	b.ID = f.assign(b.ID)
	f.budgets = append(f.budgets, b)
	return b, nil
}

func (f *fakeBackend) UpdateBudget(_ context.Context, _, id string, b domain.Budget) (domain.Budget, error) {
	if f.fail != nil {
		return domain.Budget{}, f.fail
	}
	b.ID = id
	return b, nil
}

func (f *fakeBackend) DeleteBudget(context.Context, string, string) error { return f.fail }

func (f *fakeBackend) FetchRecurringRules(context.Context, string) ([]domain.RecurringRule, error) {
	return f.rules, f.fail
}

func (f *fakeBackend) InsertRecurringRule(_ context.Context, _ string, r domain.RecurringRule) (domain.RecurringRule, error) {
	if f.fail != nil {
		return domain.RecurringRule{}, f.fail
	}
	r.ID = f.assign(r.ID)
	f.rules = append(f.rules, r)
	return r, nil
}

func (f *fakeBackend) UpdateRecurringRule(_ context.Context, _, id string, r domain.RecurringRule) (domain.RecurringRule, error) {
	if f.fail != nil {
		return domain.RecurringRule{}, f.fail
	}
	r.ID = id
	return r, nil
}

func (f *fakeBackend) DeleteRecurringRule(context.Context, string, string) error { return f.fail }

func (f *fakeBackend) FetchDebts(context.Context, string) ([]domain.Debt, error) {
	return f.debts, f.fail
}

func (f *fakeBackend) InsertDebt(_ context.Context, _ string, d domain.Debt) (domain.Debt, error) {
	if f.fail != nil {
		return domain.Debt{}, f.fail
	}
	d.ID = f.assign(d.ID)
	f.debts = append(f.debts, d)
	return d, nil
}

func (f *fakeBackend) UpdateDebt(_ context.Context, _, id string, d domain.Debt) (domain.Debt, error) {
	if f.fail != nil {
		return domain.Debt{}, f.fail
	}
	d.ID = id
	return d, nil
}

func (f *fakeBackend) DeleteDebt(context.Context, string, string) error { return f.fail }

func (f *fakeBackend) FetchCreditCards(context.Context, string) ([]domain.CreditCard, error) {
	return f.cards, f.fail
}

func (f *fakeBackend) InsertCreditCard(_ context.Context, _ string, c domain.CreditCard) (domain.CreditCard, error) {
	if f.fail != nil {
		return domain.CreditCard{}, f.fail
	}
	c.ID = f.assign(c.ID)
	f.cards = append(f.cards, c)
	return c, nil
}

func (f *fakeBackend) UpdateCreditCard(_ context.Context, _, id string, c domain.CreditCard) (domain.CreditCard, error) {
	if f.fail != nil {
		return domain.CreditCard{}, f.fail
	}
	c.ID = id
	return c, nil
}

func (f *fakeBackend) DeleteCreditCard(context.Context, string, string) error { return f.fail }

func (f *fakeBackend) FetchFundSources(context.Context, string) ([]domain.FundSource, error) {
	return f.funds, f.fail
}

func (f *fakeBackend) InsertFundSource(_ context.Context, _ string, fs domain.FundSource) (domain.FundSource, error) {
	if f.fail != nil {
		return domain.FundSource{}, f.fail
	}
	fs.ID = f.assign(fs.ID)
	f.funds = append(f.funds, fs)
	return fs, nil
}

func (f *fakeBackend) UpdateFundSource(_ context.Context, _, id string, fs domain.FundSource) (domain.FundSource, error) {
	if f.fail != nil {
		return domain.FundSource{}, f.fail
	}
	fs.ID = id
	return fs, nil
}

func (f *fakeBackend) DeleteFundSource(context.Context, string, string) error { return f.fail }

func (f *fakeBackend) FetchInvestments(context.Context, string) ([]domain.Investment, error) {
	return f.invs, f.fail
}

func (f *fakeBackend) InsertInvestment(_ context.Context, _ string, inv domain.Investment) (domain.Investment, error) {
	if f.fail != nil {
		return domain.Investment{}, f.fail
	}
	inv.ID = f.assign(inv.ID)
	f.invs = append(f.invs, inv)
	return inv, nil
}

func (f *fakeBackend) UpdateInvestment(_ context.Context, _, id string, inv domain.Investment) (domain.Investment, error) {
	if f.fail != nil {
		return domain.Investment{}, f.fail
	}
	inv.ID = id
	return inv, nil
}

func (f *fakeBackend) DeleteInvestment(context.Context, string, string) error { return f.fail }

func (f *fakeBackend) FetchLoans(context.Context, string) ([]domain.Loan, error) {
	return f.loans, f.fail
}

func (f *fakeBackend) InsertLoan(_ context.Context, _ string, l domain.Loan) (domain.Loan, error) {
	if f.fail != nil {
		return domain.Loan{}, f.fail
	}
	l.ID = f.assign(l.ID)
	f.loans = append(f.loans, l)
	return l, nil
}

func (f *fakeBackend) UpdateLoan(_ context.Context, _, id string, l domain.Loan) (domain.Loan, error) {
	if f.fail != nil {
		return domain.Loan{}, f.fail
	}
	l.ID = id
	return l, nil
}

func (f *fakeBackend) DeleteLoan(context.Context, string, string) error { return f.fail }

func (f *fakeBackend) FetchUserProfile(context.Context, string) (*domain.UserProfile, error) {
	return f.profile, f.fail
}

func (f *fakeBackend) SaveUserProfile(_ context.Context, _ string, p domain.UserProfile) (domain.UserProfile, error) {
	if f.fail != nil {
		return domain.UserProfile{}, f.fail
	}
	p.ID = f.assign(p.ID)
	f.profile = &p
	return p, nil
}

func (f *fakeBackend) ListenTransactions(ctx context.Context, _ string, _ func(postgres.TransactionChange)) error {
	<-ctx.Done()
	return nil
}

func newTestService(t *testing.T, backend Backend) (*Service, *store.Store) {
	t.Helper()
	st := store.New()
	log := logger.NewWithWriter(testWriter{t})
	return New(st, backend, "owner-1", log), st
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func TestCreateTransactionUsesBackendID(t *testing.T) {
	backend := &fakeBackend{}
	svc, st := newTestService(t, backend)

	tx, err := svc.CreateTransaction(context.Background(), domain.Transaction{Amount: 12.50, Kind: domain.KindExpense})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if tx.ID != "srv-1" {
		t.Errorf("expected backend-assigned ID srv-1, got %q", tx.ID)
	}
	if got := st.Transactions(); len(got) != 1 || got[0].ID != "srv-1" {
		t.Errorf("store not updated with confirmed row: %+v", got)
	}
}

func TestCreateTransactionRemoteFailureLeavesStoreUntouched(t *testing.T) {
	backend := &fakeBackend{fail: errors.New("connection refused")}
	svc, st := newTestService(t, backend)

	_, err := svc.CreateTransaction(context.Background(), domain.Transaction{Amount: 5})
	if err == nil {
		t.Fatal("expected error from failing backend")
	}
	if got := st.Transactions(); len(got) != 0 {
		t.Errorf("store mutated despite remote failure: %+v", got)
	}
}

func TestRemoteFailureIsTyped(t *testing.T) {
	cause := errors.New("connection refused")
	backend := &fakeBackend{fail: cause}
	svc, _ := newTestService(t, backend)

	_, err := svc.CreateTransaction(context.Background(), domain.Transaction{Amount: 5})

	var remote *Error
	if !errors.As(err, &remote) {
		t.Fatalf("error %v is not a *Error", err)
	}
	if remote.Op != "CreateTransaction" {
		t.Errorf("Op = %q, want CreateTransaction", remote.Op)
	}
	if !errors.Is(err, cause) {
		t.Error("typed error does not unwrap to the backend cause")
	}
}

func TestUpdateBudgetRemoteFailureLeavesStoreUntouched(t *testing.T) {
	backend := &fakeBackend{}
	svc, st := newTestService(t, backend)

	b, err := svc.CreateBudget(context.Background(), domain.Budget{Category: "food", Amount: 300})
	if err != nil {
		t.Fatalf("CreateBudget: %v", err)
	}

	backend.fail = errors.New("timeout")
	if err := svc.UpdateBudget(context.Background(), b.ID, func(b *domain.Budget) { b.Amount = 400 }); err == nil {
		t.Fatal("expected error from failing backend")
	}
	if got := st.Budgets()[0].Amount; got != 300 {
		t.Errorf("budget amount changed despite remote failure: %v", got)
	}
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	backend := &fakeBackend{fail: errors.New("should not be called")}
	svc, _ := newTestService(t, backend)

	if err := svc.UpdateTransaction(context.Background(), "missing", func(tx *domain.Transaction) { tx.Amount = 1 }); err != nil {
		t.Errorf("unknown id update should be a silent no-op, got %v", err)
	}
}

func TestDeleteWithoutBackendConfirmationKeepsRow(t *testing.T) {
	backend := &fakeBackend{}
	svc, st := newTestService(t, backend)

	tx, _ := svc.CreateTransaction(context.Background(), domain.Transaction{Amount: 1})
	backend.fail = errors.New("unavailable")
	if err := svc.DeleteTransaction(context.Background(), tx.ID); err == nil {
		t.Fatal("expected error from failing backend")
	}
	if len(st.Transactions()) != 1 {
		t.Error("row removed locally despite remote failure")
	}
}

func TestLocalOnlyMode(t *testing.T) {
	svc, st := newTestService(t, nil)

	tx, err := svc.CreateTransaction(context.Background(), domain.Transaction{Amount: 9})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if tx.ID == "" {
		t.Error("local-only create should assign an ID")
	}
	if err := svc.UpdateTransaction(context.Background(), tx.ID, func(tx *domain.Transaction) { tx.Category = "misc" }); err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}
	if got := st.Transactions()[0].Category; got != "misc" {
		t.Errorf("update not applied locally: %q", got)
	}
	if svc.Remote() {
		t.Error("Remote() should be false without a backend")
	}
}

func TestLoadAllHydratesStore(t *testing.T) {
	backend := &fakeBackend{
		txs:     []domain.Transaction{{ID: "t1"}, {ID: "t2"}},
		budgets: []domain.Budget{{ID: "b1", Category: "food"}},
		rules:   []domain.RecurringRule{{ID: "r1"}},
		profile: &domain.UserProfile{ID: "p1", Currency: "EUR"},
	}
	svc, st := newTestService(t, backend)

	if err := svc.LoadAll(context.Background()); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(st.Transactions()) != 2 || len(st.Budgets()) != 1 || len(st.RecurringRules()) != 1 {
		t.Error("collections not hydrated")
	}
	if p, ok := st.UserProfile(); !ok || p.Currency != "EUR" {
		t.Errorf("profile not hydrated: %+v ok=%v", p, ok)
	}
}

func TestApplyChangeUpsertsAndDeletes(t *testing.T) {
	svc, st := newTestService(t, &fakeBackend{})

	svc.applyChange(postgres.TransactionChange{
		Op:  postgres.ChangeInsert,
		Row: domain.Transaction{ID: "t1", Amount: 10},
	})
	if got := st.Transactions(); len(got) != 1 || got[0].Amount != 10 {
		t.Fatalf("insert not applied: %+v", got)
	}

	// Echo of the same row with new data must update, not duplicate.
	svc.applyChange(postgres.TransactionChange{
		Op:  postgres.ChangeUpdate,
		Row: domain.Transaction{ID: "t1", Amount: 20},
	})
	if got := st.Transactions(); len(got) != 1 || got[0].Amount != 20 {
		t.Fatalf("update not applied: %+v", got)
	}

	svc.applyChange(postgres.TransactionChange{
		Op:  postgres.ChangeDelete,
		Row: domain.Transaction{ID: "t1"},
	})
	if got := st.Transactions(); len(got) != 0 {
		t.Fatalf("delete not applied: %+v", got)
	}
}

func TestUpdateUserProfileWithoutProfileIsNoOp(t *testing.T) {
	svc, st := newTestService(t, &fakeBackend{})

	if err := svc.UpdateUserProfile(context.Background(), func(p *domain.UserProfile) { p.Currency = "GBP" }); err != nil {
		t.Fatalf("UpdateUserProfile: %v", err)
	}
	if _, ok := st.UserProfile(); ok {
		t.Error("profile should remain unset")
	}
}
