package snapshot

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ddanilov/homeledger/internal/domain"
	"github.com/ddanilov/homeledger/internal/store"
)

func TestFileRepository_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finance-store.json")
	repo := NewFileRepository(path)

	snap := store.Snapshot{
		Transactions: []domain.Transaction{
			{ID: "t1", Amount: 42, Kind: domain.KindExpense, Category: "food"},
		},
		RecurringRules: []domain.RecurringRule{
			{ID: "r1", Amount: 9.99, Kind: domain.KindExpense, Frequency: domain.FrequencyMonthly, StartDate: "2024-01-15"},
		},
		UserProfile: &domain.UserProfile{ID: "u1", Currency: "USD"},
	}

	if err := repo.Save(snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, ok, err := repo.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok {
		t.Fatal("Load reported no snapshot after Save")
	}
	if got.Transactions[0].ID != snap.Transactions[0].ID {
		t.Errorf("Transactions = %+v, want %+v", got.Transactions, snap.Transactions)
	}
	if !reflect.DeepEqual(got.RecurringRules, snap.RecurringRules) {
		t.Errorf("RecurringRules = %+v, want %+v", got.RecurringRules, snap.RecurringRules)
	}
	if got.UserProfile == nil || got.UserProfile.ID != "u1" {
		t.Errorf("UserProfile = %+v, want u1", got.UserProfile)
	}
}

func TestFileRepository_LoadMissingFile(t *testing.T) {
	repo := NewFileRepository(filepath.Join(t.TempDir(), "missing.json"))

	_, ok, err := repo.Load()
	if err != nil {
		t.Fatalf("Load of a missing snapshot should not error, got: %v", err)
	}
	if ok {
		t.Error("Load reported a snapshot where none exists")
	}
}

func TestFileRepository_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finance-store.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	repo := NewFileRepository(path)

	_, _, err := repo.Load()
	if err == nil {
		t.Error("Expected an error for a corrupt snapshot file")
	}
}

func TestFileRepository_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finance-store.json")
	repo := NewFileRepository(path)

	if err := repo.Save(store.Snapshot{Transactions: []domain.Transaction{{ID: "old"}}}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(store.Snapshot{Transactions: []domain.Transaction{{ID: "new"}}}); err != nil {
		t.Fatal(err)
	}

	got, ok, err := repo.Load()
	if err != nil || !ok {
		t.Fatalf("Load failed: ok=%v err=%v", ok, err)
	}
	if len(got.Transactions) != 1 || got.Transactions[0].ID != "new" {
		t.Errorf("Expected last write to win, got %+v", got.Transactions)
	}
}

func TestFileRepository_DocumentKeyedByStoreName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finance-store.json")
	repo := NewFileRepository(path)

	if err := repo.Save(store.Snapshot{}); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), StoreName) {
		t.Errorf("Persisted document does not carry the store name %q: %s", StoreName, raw)
	}
}
