package syncer

import (
	"context"

	"github.com/ddanilov/homeledger/internal/domain"
)

// Transactions

func (s *Service) CreateTransaction(ctx context.Context, tx domain.Transaction) (domain.Transaction, error) {
	if s.backend != nil {
		saved, err := s.backend.InsertTransaction(ctx, s.owner, tx)
		if err != nil {
			return domain.Transaction{}, &Error{Op: "CreateTransaction", Err: err}
		}
		tx = saved
	}
	return s.store.AddTransaction(tx), nil
}

func (s *Service) UpdateTransaction(ctx context.Context, id string, apply func(*domain.Transaction)) error {
	cur, ok := s.store.Transaction(id)
	if !ok {
		return nil
	}
	apply(&cur)
	if s.backend != nil {
		saved, err := s.backend.UpdateTransaction(ctx, s.owner, id, cur)
		if err != nil {
			return &Error{Op: "UpdateTransaction", Err: err}
		}
		cur = saved
	}
	s.store.UpdateTransaction(id, func(tx *domain.Transaction) { *tx = cur })
	return nil
}

func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	if s.backend != nil {
		if err := s.backend.DeleteTransaction(ctx, s.owner, id); err != nil {
			return &Error{Op: "DeleteTransaction", Err: err}
		}
	}
	s.store.RemoveTransaction(id)
	return nil
}

// Budgets

func (s *Service) CreateBudget(ctx context.Context, b domain.Budget) (domain.Budget, error) {
	if s.backend != nil {
		saved, err := s.backend.InsertBudget(ctx, s.owner, b)
		if err != nil {
			return domain.Budget{}, &Error{Op: "CreateBudget", Err: err}
		}
		b = saved
	}
	return s.store.AddBudget(b), nil
}

func (s *Service) UpdateBudget(ctx context.Context, id string, apply func(*domain.Budget)) error {
	cur, ok := findByID(s.store.Budgets(), func(b domain.Budget) string { return b.ID }, id)
	if !ok {
		return nil
	}
	apply(&cur)
	if s.backend != nil {
		saved, err := s.backend.UpdateBudget(ctx, s.owner, id, cur)
		if err != nil {
			return &Error{Op: "UpdateBudget", Err: err}
		}
		cur = saved
	}
	s.store.UpdateBudget(id, func(b *domain.Budget) { *b = cur })
	return nil
}

func (s *Service) DeleteBudget(ctx context.Context, id string) error {
	if s.backend != nil {
		if err := s.backend.DeleteBudget(ctx, s.owner, id); err != nil {
			return &Error{Op: "DeleteBudget", Err: err}
		}
	}
	s.store.RemoveBudget(id)
	return nil
}

// Recurring rules

func (s *Service) CreateRecurringRule(ctx context.Context, r domain.RecurringRule) (domain.RecurringRule, error) {
	if s.backend != nil {
		saved, err := s.backend.InsertRecurringRule(ctx, s.owner, r)
		if err != nil {
			return domain.RecurringRule{}, &Error{Op: "CreateRecurringRule", Err: err}
		}
		r = saved
	}
	return s.store.AddRecurringRule(r), nil
}

func (s *Service) UpdateRecurringRule(ctx context.Context, id string, apply func(*domain.RecurringRule)) error {
	cur, ok := s.store.RecurringRule(id)
	if !ok {
		return nil
	}
	apply(&cur)
	if s.backend != nil {
		saved, err := s.backend.UpdateRecurringRule(ctx, s.owner, id, cur)
		if err != nil {
			return &Error{Op: "UpdateRecurringRule", Err: err}
		}
		cur = saved
	}
	s.store.UpdateRecurringRule(id, func(r *domain.RecurringRule) { *r = cur })
	return nil
}

func (s *Service) DeleteRecurringRule(ctx context.Context, id string) error {
	if s.backend != nil {
		if err := s.backend.DeleteRecurringRule(ctx, s.owner, id); err != nil {
			return &Error{Op: "DeleteRecurringRule", Err: err}
		}
	}
	s.store.RemoveRecurringRule(id)
	return nil
}

// Debts

func (s *Service) CreateDebt(ctx context.Context, d domain.Debt) (domain.Debt, error) {
	if s.backend != nil {
		saved, err := s.backend.InsertDebt(ctx, s.owner, d)
		if err != nil {
			return domain.Debt{}, &Error{Op: "CreateDebt", Err: err}
		}
		d = saved
	}
	return s.store.AddDebt(d), nil
}

func (s *Service) UpdateDebt(ctx context.Context, id string, apply func(*domain.Debt)) error {
	cur, ok := findByID(s.store.Debts(), func(d domain.Debt) string { return d.ID }, id)
	if !ok {
		return nil
	}
	apply(&cur)
	if s.backend != nil {
		saved, err := s.backend.UpdateDebt(ctx, s.owner, id, cur)
		if err != nil {
			return &Error{Op: "UpdateDebt", Err: err}
		}
		cur = saved
	}
	s.store.UpdateDebt(id, func(d *domain.Debt) { *d = cur })
	return nil
}

func (s *Service) DeleteDebt(ctx context.Context, id string) error {
	if s.backend != nil {
		if err := s.backend.DeleteDebt(ctx, s.owner, id); err != nil {
			return &Error{Op: "DeleteDebt", Err: err}
		}
	}
	s.store.RemoveDebt(id)
	return nil
}

// Credit cards

func (s *Service) CreateCreditCard(ctx context.Context, card domain.CreditCard) (domain.CreditCard, error) {
	if s.backend != nil {
		saved, err := s.backend.InsertCreditCard(ctx, s.owner, card)
		if err != nil {
			return domain.CreditCard{}, &Error{Op: "CreateCreditCard", Err: err}
		}
		card = saved
	}
	return s.store.AddCreditCard(card), nil
}

func (s *Service) UpdateCreditCard(ctx context.Context, id string, apply func(*domain.CreditCard)) error {
	cur, ok := s.store.CreditCard(id)
	if !ok {
		return nil
	}
	apply(&cur)
	if s.backend != nil {
		saved, err := s.backend.UpdateCreditCard(ctx, s.owner, id, cur)
		if err != nil {
			return &Error{Op: "UpdateCreditCard", Err: err}
		}
		cur = saved
	}
	s.store.UpdateCreditCard(id, func(c *domain.CreditCard) { *c = cur })
	return nil
}

func (s *Service) DeleteCreditCard(ctx context.Context, id string) error {
	if s.backend != nil {
		if err := s.backend.DeleteCreditCard(ctx, s.owner, id); err != nil {
			return &Error{Op: "DeleteCreditCard", Err: err}
		}
	}
	s.store.RemoveCreditCard(id)
	return nil
}

// Fund sources

func (s *Service) CreateFundSource(ctx context.Context, f domain.FundSource) (domain.FundSource, error) {
	if s.backend != nil {
		saved, err := s.backend.InsertFundSource(ctx, s.owner, f)
		if err != nil {
			return domain.FundSource{}, &Error{Op: "CreateFundSource", Err: err}
		}
		f = saved
	}
	return s.store.AddFundSource(f), nil
}

func (s *Service) UpdateFundSource(ctx context.Context, id string, apply func(*domain.FundSource)) error {
	cur, ok := s.store.FundSource(id)
	if !ok {
		return nil
	}
	apply(&cur)
	if s.backend != nil {
		saved, err := s.backend.UpdateFundSource(ctx, s.owner, id, cur)
		if err != nil {
			return &Error{Op: "UpdateFundSource", Err: err}
		}
		cur = saved
	}
	s.store.UpdateFundSource(id, func(f *domain.FundSource) { *f = cur })
	return nil
}

func (s *Service) DeleteFundSource(ctx context.Context, id string) error {
	if s.backend != nil {
		if err := s.backend.DeleteFundSource(ctx, s.owner, id); err != nil {
			return &Error{Op: "DeleteFundSource", Err: err}
		}
	}
	s.store.RemoveFundSource(id)
	return nil
}

// Investments

func (s *Service) CreateInvestment(ctx context.Context, inv domain.Investment) (domain.Investment, error) {
	if s.backend != nil {
		saved, err := s.backend.InsertInvestment(ctx, s.owner, inv)
		if err != nil {
			return domain.Investment{}, &Error{Op: "CreateInvestment", Err: err}
		}
		inv = saved
	}
	return s.store.AddInvestment(inv), nil
}

func (s *Service) UpdateInvestment(ctx context.Context, id string, apply func(*domain.Investment)) error {
	cur, ok := findByID(s.store.Investments(), func(i domain.Investment) string { return i.ID }, id)
	if !ok {
		return nil
	}
	apply(&cur)
	if s.backend != nil {
		saved, err := s.backend.UpdateInvestment(ctx, s.owner, id, cur)
		if err != nil {
			return &Error{Op: "UpdateInvestment", Err: err}
		}
		cur = saved
	}
	s.store.UpdateInvestment(id, func(i *domain.Investment) { *i = cur })
	return nil
}

func (s *Service) DeleteInvestment(ctx context.Context, id string) error {
	if s.backend != nil {
		if err := s.backend.DeleteInvestment(ctx, s.owner, id); err != nil {
			return &Error{Op: "DeleteInvestment", Err: err}
		}
	}
	s.store.RemoveInvestment(id)
	return nil
}

// Loans

func (s *Service) CreateLoan(ctx context.Context, l domain.Loan) (domain.Loan, error) {
	if s.backend != nil {
		saved, err := s.backend.InsertLoan(ctx, s.owner, l)
		if err != nil {
			return domain.Loan{}, &Error{Op: "CreateLoan", Err: err}
		}
		l = saved
	}
	return s.store.AddLoan(l), nil
}

func (s *Service) UpdateLoan(ctx context.Context, id string, apply func(*domain.Loan)) error {
	cur, ok := findByID(s.store.Loans(), func(l domain.Loan) string { return l.ID }, id)
	if !ok {
		return nil
	}
	apply(&cur)
	if s.backend != nil {
		saved, err := s.backend.UpdateLoan(ctx, s.owner, id, cur)
		if err != nil {
			return &Error{Op: "UpdateLoan", Err: err}
		}
		cur = saved
	}
	s.store.UpdateLoan(id, func(l *domain.Loan) { *l = cur })
	return nil
}

func (s *Service) DeleteLoan(ctx context.Context, id string) error {
	if s.backend != nil {
		if err := s.backend.DeleteLoan(ctx, s.owner, id); err != nil {
			return &Error{Op: "DeleteLoan", Err: err}
		}
	}
	s.store.RemoveLoan(id)
	return nil
}

// User profile

func (s *Service) SaveUserProfile(ctx context.Context, p domain.UserProfile) (domain.UserProfile, error) {
	if s.backend != nil {
		saved, err := s.backend.SaveUserProfile(ctx, s.owner, p)
		if err != nil {
			return domain.UserProfile{}, &Error{Op: "SaveUserProfile", Err: err}
		}
		p = saved
	}
	s.store.SetUserProfile(&p)
	return p, nil
}

// UpdateUserProfile applies a partial edit to the stored profile. Without a
// stored profile it does nothing.
func (s *Service) UpdateUserProfile(ctx context.Context, apply func(*domain.UserProfile)) error {
	cur, ok := s.store.UserProfile()
	if !ok {
		return nil
	}
	apply(&cur)
	if s.backend != nil {
		saved, err := s.backend.SaveUserProfile(ctx, s.owner, cur)
		if err != nil {
			return &Error{Op: "UpdateUserProfile", Err: err}
		}
		cur = saved
	}
	s.store.SetUserProfile(&cur)
	return nil
}
