package store

import (
	"github.com/ddanilov/homeledger/internal/domain"
)

// The per-kind mutators below all follow the same contract: SetAll replaces
// the collection as given (used after a full remote fetch), Add appends and
// assigns an id when the entity has none, Update and Remove silently no-op
// on unknown ids, and list accessors return copies in insertion order
// (display order; call sites reverse for most-recent-first).

// SetTransactions replaces the transaction collection.
func (s *Store) SetTransactions(list []domain.Transaction) {
	s.mutate(func() bool { s.transactions.setAll(list); return true })
}

// AddTransaction appends a transaction and returns it with its assigned id.
func (s *Store) AddTransaction(tx domain.Transaction) domain.Transaction {
	s.mutate(func() bool { tx = s.transactions.add(tx); return true })
	return tx
}

// UpdateTransaction merges changes into the transaction matching id.
func (s *Store) UpdateTransaction(id string, apply func(*domain.Transaction)) {
	s.mutate(func() bool { return s.transactions.update(id, apply) })
}

// RemoveTransaction deletes the transaction matching id.
func (s *Store) RemoveTransaction(id string) {
	s.mutate(func() bool { return s.transactions.remove(id) })
}

// Transactions returns all transactions in insertion order.
func (s *Store) Transactions() []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transactions.list()
}

// Transaction returns the transaction matching id.
func (s *Store) Transaction(id string) (domain.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transactions.get(id)
}

// SetBudgets replaces the budget collection.
func (s *Store) SetBudgets(list []domain.Budget) {
	s.mutate(func() bool { s.budgets.setAll(list); return true })
}

func (s *Store) AddBudget(b domain.Budget) domain.Budget {
	s.mutate(func() bool { b = s.budgets.add(b); return true })
	return b
}

func (s *Store) UpdateBudget(id string, apply func(*domain.Budget)) {
	s.mutate(func() bool { return s.budgets.update(id, apply) })
}

func (s *Store) RemoveBudget(id string) {
	s.mutate(func() bool { return s.budgets.remove(id) })
}

func (s *Store) Budgets() []domain.Budget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.budgets.list()
}

// SetRecurringRules replaces the recurring rule collection.
func (s *Store) SetRecurringRules(list []domain.RecurringRule) {
	s.mutate(func() bool { s.rules.setAll(list); return true })
}

func (s *Store) AddRecurringRule(r domain.RecurringRule) domain.RecurringRule {
	s.mutate(func() bool { r = s.rules.add(r); return true })
	return r
}

func (s *Store) UpdateRecurringRule(id string, apply func(*domain.RecurringRule)) {
	s.mutate(func() bool { return s.rules.update(id, apply) })
}

func (s *Store) RemoveRecurringRule(id string) {
	s.mutate(func() bool { return s.rules.remove(id) })
}

func (s *Store) RecurringRules() []domain.RecurringRule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rules.list()
}

func (s *Store) RecurringRule(id string) (domain.RecurringRule, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rules.get(id)
}

// SetDebts replaces the debt collection.
func (s *Store) SetDebts(list []domain.Debt) {
	s.mutate(func() bool { s.debts.setAll(list); return true })
}

func (s *Store) AddDebt(d domain.Debt) domain.Debt {
	s.mutate(func() bool { d = s.debts.add(d); return true })
	return d
}

func (s *Store) UpdateDebt(id string, apply func(*domain.Debt)) {
	s.mutate(func() bool { return s.debts.update(id, apply) })
}

func (s *Store) RemoveDebt(id string) {
	s.mutate(func() bool { return s.debts.remove(id) })
}

func (s *Store) Debts() []domain.Debt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.debts.list()
}

// SetCreditCards replaces the credit card collection.
func (s *Store) SetCreditCards(list []domain.CreditCard) {
	s.mutate(func() bool { s.creditCards.setAll(list); return true })
}

func (s *Store) AddCreditCard(c domain.CreditCard) domain.CreditCard {
	s.mutate(func() bool { c = s.creditCards.add(c); return true })
	return c
}

func (s *Store) UpdateCreditCard(id string, apply func(*domain.CreditCard)) {
	s.mutate(func() bool { return s.creditCards.update(id, apply) })
}

func (s *Store) RemoveCreditCard(id string) {
	s.mutate(func() bool { return s.creditCards.remove(id) })
}

func (s *Store) CreditCards() []domain.CreditCard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creditCards.list()
}

func (s *Store) CreditCard(id string) (domain.CreditCard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creditCards.get(id)
}

// SetFundSources replaces the fund source collection.
func (s *Store) SetFundSources(list []domain.FundSource) {
	s.mutate(func() bool { s.fundSources.setAll(list); return true })
}

func (s *Store) AddFundSource(f domain.FundSource) domain.FundSource {
	s.mutate(func() bool { f = s.fundSources.add(f); return true })
	return f
}

func (s *Store) UpdateFundSource(id string, apply func(*domain.FundSource)) {
	s.mutate(func() bool { return s.fundSources.update(id, apply) })
}

func (s *Store) RemoveFundSource(id string) {
	s.mutate(func() bool { return s.fundSources.remove(id) })
}

func (s *Store) FundSources() []domain.FundSource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fundSources.list()
}

func (s *Store) FundSource(id string) (domain.FundSource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fundSources.get(id)
}

// SetInvestments replaces the investment collection.
func (s *Store) SetInvestments(list []domain.Investment) {
	s.mutate(func() bool { s.investments.setAll(list); return true })
}

func (s *Store) AddInvestment(inv domain.Investment) domain.Investment {
	s.mutate(func() bool { inv = s.investments.add(inv); return true })
	return inv
}

func (s *Store) UpdateInvestment(id string, apply func(*domain.Investment)) {
	s.mutate(func() bool { return s.investments.update(id, apply) })
}

func (s *Store) RemoveInvestment(id string) {
	s.mutate(func() bool { return s.investments.remove(id) })
}

func (s *Store) Investments() []domain.Investment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.investments.list()
}

// SetLoans replaces the loan collection.
func (s *Store) SetLoans(list []domain.Loan) {
	s.mutate(func() bool { s.loans.setAll(list); return true })
}

func (s *Store) AddLoan(l domain.Loan) domain.Loan {
	s.mutate(func() bool { l = s.loans.add(l); return true })
	return l
}

func (s *Store) UpdateLoan(id string, apply func(*domain.Loan)) {
	s.mutate(func() bool { return s.loans.update(id, apply) })
}

func (s *Store) RemoveLoan(id string) {
	s.mutate(func() bool { return s.loans.remove(id) })
}

func (s *Store) Loans() []domain.Loan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loans.list()
}
