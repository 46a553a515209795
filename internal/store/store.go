// Package store is the single authoritative in-memory registry of every
// financial entity for the owner's session. All reads return copies; all
// mutations go through the Store's own methods. Mutators never report
// "not found": updating or removing an id that is no longer present is a
// deliberate no-op, because callers race with deletions.
package store

import (
	"sync"

	"github.com/ddanilov/homeledger/internal/domain"
)

// Snapshot is the full serializable state of the store. It is what gets
// persisted after every mutation and what the store is restored from at
// startup.
type Snapshot struct {
	Transactions   []domain.Transaction   `json:"transactions"`
	Budgets        []domain.Budget        `json:"budgets"`
	Debts          []domain.Debt          `json:"debts"`
	RecurringRules []domain.RecurringRule `json:"recurring_rules"`
	CreditCards    []domain.CreditCard    `json:"credit_cards"`
	FundSources    []domain.FundSource    `json:"fund_sources"`
	Investments    []domain.Investment    `json:"investments"`
	Loans          []domain.Loan          `json:"loans"`
	UserProfile    *domain.UserProfile    `json:"user_profile,omitempty"`
}

// Store holds all entity collections. Safe for concurrent use; the recurring
// scheduler and the change-feed goroutine mutate it alongside HTTP handlers.
type Store struct {
	mu sync.RWMutex

	transactions collection[domain.Transaction]
	budgets      collection[domain.Budget]
	rules        collection[domain.RecurringRule]
	debts        collection[domain.Debt]
	creditCards  collection[domain.CreditCard]
	fundSources  collection[domain.FundSource]
	investments  collection[domain.Investment]
	loans        collection[domain.Loan]
	profile      *domain.UserProfile

	onChange func(Snapshot)
}

// New creates an empty store.
func New() *Store {
	return &Store{
		transactions: collection[domain.Transaction]{
			id:    func(e domain.Transaction) string { return e.ID },
			setID: func(e *domain.Transaction, id string) { e.ID = id },
		},
		budgets: collection[domain.Budget]{
			id:    func(e domain.Budget) string { return e.ID },
			setID: func(e *domain.Budget, id string) { e.ID = id },
		},
		rules: collection[domain.RecurringRule]{
			id:    func(e domain.RecurringRule) string { return e.ID },
			setID: func(e *domain.RecurringRule, id string) { e.ID = id },
		},
		debts: collection[domain.Debt]{
			id:    func(e domain.Debt) string { return e.ID },
			setID: func(e *domain.Debt, id string) { e.ID = id },
		},
		creditCards: collection[domain.CreditCard]{
			id:    func(e domain.CreditCard) string { return e.ID },
			setID: func(e *domain.CreditCard, id string) { e.ID = id },
		},
		fundSources: collection[domain.FundSource]{
			id:    func(e domain.FundSource) string { return e.ID },
			setID: func(e *domain.FundSource, id string) { e.ID = id },
		},
		investments: collection[domain.Investment]{
			id:    func(e domain.Investment) string { return e.ID },
			setID: func(e *domain.Investment, id string) { e.ID = id },
		},
		loans: collection[domain.Loan]{
			id:    func(e domain.Loan) string { return e.ID },
			setID: func(e *domain.Loan, id string) { e.ID = id },
		},
	}
}

// OnChange registers the subscriber invoked with the full snapshot after
// every effective mutation. The persistence layer hangs off this hook so the
// store itself stays free of storage concerns.
func (s *Store) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Snapshot returns a copy of the full store state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Restore replaces the whole store state from a previously saved snapshot.
// It does not notify the change subscriber.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions.setAll(snap.Transactions)
	s.budgets.setAll(snap.Budgets)
	s.rules.setAll(snap.RecurringRules)
	s.debts.setAll(snap.Debts)
	s.creditCards.setAll(snap.CreditCards)
	s.fundSources.setAll(snap.FundSources)
	s.investments.setAll(snap.Investments)
	s.loans.setAll(snap.Loans)
	if snap.UserProfile != nil {
		p := *snap.UserProfile
		s.profile = &p
	} else {
		s.profile = nil
	}
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Transactions:   s.transactions.list(),
		Budgets:        s.budgets.list(),
		RecurringRules: s.rules.list(),
		Debts:          s.debts.list(),
		CreditCards:    s.creditCards.list(),
		FundSources:    s.fundSources.list(),
		Investments:    s.investments.list(),
		Loans:          s.loans.list(),
	}
	if s.profile != nil {
		p := *s.profile
		snap.UserProfile = &p
	}
	return snap
}

// mutate runs fn under the write lock and, when fn reports an effective
// change, hands the resulting snapshot to the subscriber outside the lock.
func (s *Store) mutate(fn func() bool) {
	s.mu.Lock()
	changed := fn()
	var (
		snap   Snapshot
		notify func(Snapshot)
	)
	if changed && s.onChange != nil {
		snap = s.snapshotLocked()
		notify = s.onChange
	}
	s.mu.Unlock()
	if notify != nil {
		notify(snap)
	}
}

// UserProfile returns the owner profile, if one has been set.
func (s *Store) UserProfile() (domain.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return domain.UserProfile{}, false
	}
	return *s.profile, true
}

// SetUserProfile replaces the owner profile. A nil profile clears it.
func (s *Store) SetUserProfile(p *domain.UserProfile) {
	s.mutate(func() bool {
		if p == nil {
			s.profile = nil
			return true
		}
		cp := *p
		s.profile = &cp
		return true
	})
}

// UpdateUserProfile applies apply to the profile. No-op when none is set.
func (s *Store) UpdateUserProfile(apply func(*domain.UserProfile)) {
	s.mutate(func() bool {
		if s.profile == nil {
			return false
		}
		apply(s.profile)
		return true
	})
}

// UpdateCurrency sets the profile display currency. No-op when no profile
// is set.
func (s *Store) UpdateCurrency(code string) {
	s.UpdateUserProfile(func(p *domain.UserProfile) { p.Currency = code })
}
