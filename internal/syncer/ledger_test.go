package syncer

import (
	"errors"
	"testing"
	"time"

	"github.com/ddanilov/homeledger/internal/domain"
	"github.com/ddanilov/homeledger/internal/logger"
	"github.com/ddanilov/homeledger/internal/recurring"
)

func TestLedger_RejectedInsertLeavesRuleDue(t *testing.T) {
	backend := &fakeBackend{failInsertTx: errors.New("backend down")}
	svc, st := newTestService(t, backend)
	log := logger.NewWithWriter(testWriter{t})

	rule := st.AddRecurringRule(domain.RecurringRule{
		Amount:    80,
		Kind:      domain.KindExpense,
		Category:  "utilities",
		Frequency: domain.FrequencyMonthly,
		StartDate: "2024-01-15",
	})

	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	proc := recurring.NewProcessor(NewLedger(svc, log), log)

	if got := proc.ProcessDue(now); got != 0 {
		t.Fatalf("ProcessDue = %d, want 0 while the backend rejects inserts", got)
	}
	if got := len(st.Transactions()); got != 0 {
		t.Errorf("Store holds %d transactions, want 0", got)
	}
	got, _ := st.RecurringRule(rule.ID)
	if got.LastProcessed != nil {
		t.Fatalf("LastProcessed = %v, want unset: the occurrence was never recorded", got.LastProcessed)
	}

	// The backend recovers; the next pass records the occurrence and only
	// then advances the rule.
	backend.failInsertTx = nil
	if got := proc.ProcessDue(now); got != 1 {
		t.Fatalf("ProcessDue after recovery = %d, want 1", got)
	}
	txs := st.Transactions()
	if len(txs) != 1 || !recurring.IsMaterialized(txs[0].Details) {
		t.Fatalf("Expected one materialized transaction, got %+v", txs)
	}
	got, _ = st.RecurringRule(rule.ID)
	if got.LastProcessed == nil || !got.LastProcessed.Equal(now) {
		t.Errorf("LastProcessed = %v, want %v", got.LastProcessed, now)
	}
}
