package syncer

import (
	"context"

	"github.com/ddanilov/homeledger/internal/domain"
	"github.com/rs/zerolog"
)

// Ledger adapts the service to the write surface the recurring scheduler
// expects, so materialized transactions take the same confirm-then-apply
// path as user edits. A failed transaction insert is surfaced to the
// scheduler, which then leaves the rule un-advanced and retries the
// occurrence on its next pass.
type Ledger struct {
	svc *Service
	log zerolog.Logger
}

func NewLedger(svc *Service, log zerolog.Logger) *Ledger {
	return &Ledger{svc: svc, log: log}
}

func (l *Ledger) RecurringRules() []domain.RecurringRule {
	return l.svc.store.RecurringRules()
}

func (l *Ledger) AddTransaction(tx domain.Transaction) (domain.Transaction, error) {
	return l.svc.CreateTransaction(context.Background(), tx)
}

func (l *Ledger) UpdateRecurringRule(id string, apply func(*domain.RecurringRule)) {
	if err := l.svc.UpdateRecurringRule(context.Background(), id, apply); err != nil {
		l.log.Error().Err(err).Str("rule_id", id).Msg("Failed to advance recurring rule")
	}
}
