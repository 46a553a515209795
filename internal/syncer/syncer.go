// Package syncer keeps the in-memory store and the remote backend in
// agreement. Mutations are confirmed by the backend before they are applied
// locally, so a failed remote write leaves the store untouched. When no
// backend is configured the service degrades to local-only mutations.
package syncer

import (
	"context"
	"fmt"

	"github.com/ddanilov/homeledger/internal/domain"
	"github.com/ddanilov/homeledger/internal/postgres"
	"github.com/ddanilov/homeledger/internal/store"
	"github.com/rs/zerolog"
)

type Service struct {
	store   *store.Store
	backend Backend
	owner   string
	log     zerolog.Logger
}

// New builds a Service for ownerID. backend may be nil, in which case all
// operations apply directly to the store.
func New(st *store.Store, backend Backend, ownerID string, log zerolog.Logger) *Service {
	return &Service{store: st, backend: backend, owner: ownerID, log: log}
}

// Remote reports whether a backend is configured.
func (s *Service) Remote() bool { return s.backend != nil }

// LoadAll hydrates the store from the backend. It replaces every collection
// wholesale, so it is meant for startup, before local mutations begin.
func (s *Service) LoadAll(ctx context.Context) error {
	if s.backend == nil {
		return nil
	}

	txs, err := s.backend.FetchTransactions(ctx, s.owner)
	if err != nil {
		return fmt.Errorf("LoadAll: transactions: %w", err)
	}
	budgets, err := s.backend.FetchBudgets(ctx, s.owner)
	if err != nil {
		return fmt.Errorf("LoadAll: budgets: %w", err)
	}
	rules, err := s.backend.FetchRecurringRules(ctx, s.owner)
	if err != nil {
		return fmt.Errorf("LoadAll: recurring rules: %w", err)
	}
	debts, err := s.backend.FetchDebts(ctx, s.owner)
	if err != nil {
		return fmt.Errorf("LoadAll: debts: %w", err)
	}
	cards, err := s.backend.FetchCreditCards(ctx, s.owner)
	if err != nil {
		return fmt.Errorf("LoadAll: credit cards: %w", err)
	}
	funds, err := s.backend.FetchFundSources(ctx, s.owner)
	if err != nil {
		return fmt.Errorf("LoadAll: fund sources: %w", err)
	}
	investments, err := s.backend.FetchInvestments(ctx, s.owner)
	if err != nil {
		return fmt.Errorf("LoadAll: investments: %w", err)
	}
	loans, err := s.backend.FetchLoans(ctx, s.owner)
	if err != nil {
		return fmt.Errorf("LoadAll: loans: %w", err)
	}
	profile, err := s.backend.FetchUserProfile(ctx, s.owner)
	if err != nil {
		return fmt.Errorf("LoadAll: user profile: %w", err)
	}

	s.store.SetTransactions(txs)
	s.store.SetBudgets(budgets)
	s.store.SetRecurringRules(rules)
	s.store.SetDebts(debts)
	s.store.SetCreditCards(cards)
	s.store.SetFundSources(funds)
	s.store.SetInvestments(investments)
	s.store.SetLoans(loans)
	s.store.SetUserProfile(profile)

	s.log.Info().
		Int("transactions", len(txs)).
		Int("budgets", len(budgets)).
		Int("recurring_rules", len(rules)).
		Int("debts", len(debts)).
		Int("credit_cards", len(cards)).
		Int("fund_sources", len(funds)).
		Int("investments", len(investments)).
		Int("loans", len(loans)).
		Msg("Hydrated store from backend")
	return nil
}

// Run blocks applying the backend's transaction change feed to the store
// until ctx is cancelled. Events are upserted last-writer-wins, which also
// makes echoes of this process's own writes harmless.
func (s *Service) Run(ctx context.Context) error {
	if s.backend == nil {
		return nil
	}
	return s.backend.ListenTransactions(ctx, s.owner, s.applyChange)
}

func (s *Service) applyChange(change postgres.TransactionChange) {
	switch change.Op {
	case postgres.ChangeInsert, postgres.ChangeUpdate:
		if _, ok := s.store.Transaction(change.Row.ID); ok {
			s.store.UpdateTransaction(change.Row.ID, func(tx *domain.Transaction) { *tx = change.Row })
		} else {
			s.store.AddTransaction(change.Row)
		}
	case postgres.ChangeDelete:
		s.store.RemoveTransaction(change.Row.ID)
	default:
		s.log.Warn().Str("op", string(change.Op)).Msg("Ignoring unknown change op")
	}
}

// findByID scans a listing for an entity. Collections are small enough that
// a linear scan is fine.
func findByID[E any](items []E, id func(E) string, want string) (E, bool) {
	for _, it := range items {
		if id(it) == want {
			return it, true
		}
	}
	var zero E
	return zero, false
}
