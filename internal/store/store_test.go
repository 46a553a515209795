package store

import (
	"reflect"
	"testing"
	"time"

	"github.com/ddanilov/homeledger/internal/domain"
)

func TestAddTransaction_AssignsUniqueIDs(t *testing.T) {
	s := New()

	first := s.AddTransaction(domain.Transaction{Amount: 10, Kind: domain.KindExpense})
	second := s.AddTransaction(domain.Transaction{Amount: 20, Kind: domain.KindIncome})

	if first.ID == "" || second.ID == "" {
		t.Fatal("Expected generated ids, got empty")
	}
	if first.ID == second.ID {
		t.Errorf("Expected distinct ids, both %q", first.ID)
	}
}

func TestAddTransaction_KeepsConfirmedID(t *testing.T) {
	s := New()

	got := s.AddTransaction(domain.Transaction{ID: "remote-1", Amount: 5, Kind: domain.KindExpense})

	if got.ID != "remote-1" {
		t.Errorf("Expected remote-assigned id to be kept, got %q", got.ID)
	}
}

func TestAddTransaction_PreservesInsertionOrder(t *testing.T) {
	s := New()
	for _, c := range []string{"a", "b", "c"} {
		s.AddTransaction(domain.Transaction{Category: c, Kind: domain.KindExpense})
	}

	list := s.Transactions()
	if len(list) != 3 {
		t.Fatalf("Expected 3 transactions, got %d", len(list))
	}
	for i, want := range []string{"a", "b", "c"} {
		if list[i].Category != want {
			t.Errorf("Position %d: got category %q, want %q", i, list[i].Category, want)
		}
	}
}

func TestUpdateTransaction_ComposesFieldWise(t *testing.T) {
	s := New()
	tx := s.AddTransaction(domain.Transaction{Amount: 10, Category: "food", Kind: domain.KindExpense})

	s.UpdateTransaction(tx.ID, func(e *domain.Transaction) { e.Amount = 25 })
	s.UpdateTransaction(tx.ID, func(e *domain.Transaction) { e.Category = "groceries" })
	// Later update of the same field overrides the earlier one.
	s.UpdateTransaction(tx.ID, func(e *domain.Transaction) { e.Amount = 30 })

	got, ok := s.Transaction(tx.ID)
	if !ok {
		t.Fatal("Transaction disappeared after updates")
	}
	if got.Amount != 30 {
		t.Errorf("Amount = %v, want 30", got.Amount)
	}
	if got.Category != "groceries" {
		t.Errorf("Category = %q, want %q", got.Category, "groceries")
	}
	if got.Kind != domain.KindExpense {
		t.Errorf("Kind = %q, untouched field should survive", got.Kind)
	}
}

func TestUpdateTransaction_UnknownIDIsNoOp(t *testing.T) {
	s := New()
	s.AddTransaction(domain.Transaction{Amount: 10, Kind: domain.KindExpense})
	before := s.Transactions()

	s.UpdateTransaction("does-not-exist", func(e *domain.Transaction) { e.Amount = 999 })

	after := s.Transactions()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("Collection changed by update of unknown id:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestRemoveTransaction_Idempotent(t *testing.T) {
	s := New()
	tx := s.AddTransaction(domain.Transaction{Amount: 10, Kind: domain.KindExpense})

	s.RemoveTransaction(tx.ID)
	// Second remove of the same id must be a harmless no-op.
	s.RemoveTransaction(tx.ID)

	if got := len(s.Transactions()); got != 0 {
		t.Errorf("Expected empty collection, got %d entries", got)
	}
}

func TestSetTransactions_ReplacesAsGiven(t *testing.T) {
	s := New()
	s.AddTransaction(domain.Transaction{Category: "old", Kind: domain.KindExpense})

	fetched := []domain.Transaction{
		{ID: "r1", Category: "rent", Kind: domain.KindExpense},
		{ID: "r2", Category: "salary", Kind: domain.KindIncome},
	}
	s.SetTransactions(fetched)

	got := s.Transactions()
	if !reflect.DeepEqual(got, fetched) {
		t.Errorf("SetTransactions: got %+v, want %+v", got, fetched)
	}
}

func TestOnChange_NotifiedWithSnapshotAfterMutation(t *testing.T) {
	s := New()
	var snaps []Snapshot
	s.OnChange(func(snap Snapshot) { snaps = append(snaps, snap) })

	tx := s.AddTransaction(domain.Transaction{Amount: 10, Kind: domain.KindExpense})
	s.AddBudget(domain.Budget{Category: "food", Amount: 100, Period: domain.BudgetPeriodMonthly})

	if len(snaps) != 2 {
		t.Fatalf("Expected 2 notifications, got %d", len(snaps))
	}
	last := snaps[len(snaps)-1]
	if len(last.Transactions) != 1 || last.Transactions[0].ID != tx.ID {
		t.Errorf("Snapshot transactions = %+v, want the stored transaction", last.Transactions)
	}
	if len(last.Budgets) != 1 {
		t.Errorf("Snapshot budgets = %+v, want one budget", last.Budgets)
	}
}

func TestOnChange_NotNotifiedForNoOpMutation(t *testing.T) {
	s := New()
	calls := 0
	s.OnChange(func(Snapshot) { calls++ })

	s.UpdateTransaction("missing", func(e *domain.Transaction) { e.Amount = 1 })
	s.RemoveTransaction("missing")

	if calls != 0 {
		t.Errorf("Expected no notifications for no-op mutations, got %d", calls)
	}
}

func TestRestore_RoundTripsSnapshot(t *testing.T) {
	s := New()
	s.AddTransaction(domain.Transaction{Category: "rent", Kind: domain.KindExpense, Amount: 900})
	s.AddRecurringRule(domain.RecurringRule{
		Amount:    50,
		Kind:      domain.KindExpense,
		Category:  "subscriptions",
		Frequency: domain.FrequencyMonthly,
		StartDate: "2024-01-15",
	})
	s.SetUserProfile(&domain.UserProfile{ID: "u1", Name: "Test", Currency: "USD", CreatedAt: time.Now().UTC()})

	snap := s.Snapshot()

	restored := New()
	restored.Restore(snap)

	if !reflect.DeepEqual(restored.Snapshot(), snap) {
		t.Error("Restored snapshot differs from the original")
	}
}

func TestUpdateUserProfile_NoOpWithoutProfile(t *testing.T) {
	s := New()

	s.UpdateUserProfile(func(p *domain.UserProfile) { p.Name = "ghost" })
	s.UpdateCurrency("EUR")

	if _, ok := s.UserProfile(); ok {
		t.Error("Expected no profile after updates on an empty store")
	}
}

func TestUpdateCurrency(t *testing.T) {
	s := New()
	s.SetUserProfile(&domain.UserProfile{ID: "u1", Currency: "USD"})

	s.UpdateCurrency("GBP")

	p, ok := s.UserProfile()
	if !ok {
		t.Fatal("Profile missing")
	}
	if p.Currency != "GBP" {
		t.Errorf("Currency = %q, want GBP", p.Currency)
	}
}
