package recurring

import (
	"fmt"
	"time"

	"github.com/ddanilov/homeledger/internal/domain"
	"github.com/rs/zerolog"
)

// Marker is appended to the details of every materialized transaction so it
// can be told apart from user-entered ones.
const Marker = " (recurring)"

// MaterializedDetails returns the details text for a transaction produced
// from rule details.
func MaterializedDetails(details string) string {
	return details + Marker
}

// IsMaterialized reports whether details carry the recurring-origin marker.
func IsMaterialized(details string) bool {
	return len(details) >= len(Marker) && details[len(details)-len(Marker):] == Marker
}

// Store is the slice of the entity store the processor needs. AddTransaction
// reports whether the transaction was actually recorded; a rule whose
// materialization fails is not advanced, so the occurrence is retried on the
// next pass.
type Store interface {
	RecurringRules() []domain.RecurringRule
	AddTransaction(tx domain.Transaction) (domain.Transaction, error)
	UpdateRecurringRule(id string, apply func(*domain.RecurringRule))
}

// Processor materializes due recurring rules into transactions.
type Processor struct {
	store Store
	log   zerolog.Logger
}

// NewProcessor creates a processor over the given store.
func NewProcessor(store Store, log zerolog.Logger) *Processor {
	return &Processor{store: store, log: log}
}

// ProcessDue walks every recurring rule and, for each rule whose next due
// time has been reached, appends one materialized transaction dated now and
// advances the rule's LastProcessed to now.
//
// At most one transaction is materialized per rule per call, even when more
// than one period has elapsed: long application downtime drops occurrences
// rather than catching up. That is a deliberate design choice carried over
// from the product, not an oversight to fix here.
//
// Rules are processed independently: a malformed rule is logged and skipped
// without affecting the rest. The returned count is the number of
// materialized transactions.
func (p *Processor) ProcessDue(now time.Time) int {
	processed := 0
	for _, rule := range p.store.RecurringRules() {
		next, err := nextDue(rule)
		if err != nil {
			p.log.Warn().
				Err(err).
				Str("rule_id", rule.ID).
				Msg("Skipping malformed recurring rule")
			continue
		}
		if next.After(now) {
			continue
		}

		tx, err := p.store.AddTransaction(domain.Transaction{
			Date:     now,
			Amount:   rule.Amount,
			Kind:     rule.Kind,
			Category: rule.Category,
			Details:  MaterializedDetails(rule.Details),
			From:     rule.From,
		})
		if err != nil {
			// Leave the rule un-advanced; the next pass retries it.
			p.log.Error().
				Err(err).
				Str("rule_id", rule.ID).
				Msg("Recording materialized transaction failed")
			continue
		}

		ts := now
		p.store.UpdateRecurringRule(rule.ID, func(r *domain.RecurringRule) {
			// LastProcessed only ever moves forward.
			if r.LastProcessed == nil || ts.After(*r.LastProcessed) {
				r.LastProcessed = &ts
			}
		})

		p.log.Info().
			Str("rule_id", rule.ID).
			Str("transaction_id", tx.ID).
			Str("frequency", string(rule.Frequency)).
			Time("due", next).
			Msg("Materialized recurring transaction")
		processed++
	}
	return processed
}

// nextDue computes when the rule is next due: one frequency unit past the
// last processing, or past the start date for a rule never processed.
func nextDue(rule domain.RecurringRule) (time.Time, error) {
	anchor, err := anchorTime(rule)
	if err != nil {
		return time.Time{}, err
	}
	return Advance(anchor, rule.Frequency)
}

func anchorTime(rule domain.RecurringRule) (time.Time, error) {
	if rule.LastProcessed != nil {
		return *rule.LastProcessed, nil
	}
	start, err := time.ParseInLocation(domain.StartDateLayout, rule.StartDate, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing start date %q: %w", rule.StartDate, err)
	}
	return start, nil
}
