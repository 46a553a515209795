package syncer

import (
	"context"

	"github.com/ddanilov/homeledger/internal/domain"
	"github.com/ddanilov/homeledger/internal/postgres"
)

// Backend is the remote persistence surface the syncer coordinates with.
// *postgres.Client satisfies it; tests substitute a fake.
type Backend interface {
	FetchTransactions(ctx context.Context, ownerID string) ([]domain.Transaction, error)
	InsertTransaction(ctx context.Context, ownerID string, tx domain.Transaction) (domain.Transaction, error)
	UpdateTransaction(ctx context.Context, ownerID, id string, tx domain.Transaction) (domain.Transaction, error)
	DeleteTransaction(ctx context.Context, ownerID, id string) error

	FetchBudgets(ctx context.Context, ownerID string) ([]domain.Budget, error)
	InsertBudget(ctx context.Context, ownerID string, b domain.Budget) (domain.Budget, error)
	UpdateBudget(ctx context.Context, ownerID, id string, b domain.Budget) (domain.Budget, error)
	DeleteBudget(ctx context.Context, ownerID, id string) error

	FetchRecurringRules(ctx context.Context, ownerID string) ([]domain.RecurringRule, error)
	InsertRecurringRule(ctx context.Context, ownerID string, r domain.RecurringRule) (domain.RecurringRule, error)
	UpdateRecurringRule(ctx context.Context, ownerID, id string, r domain.RecurringRule) (domain.RecurringRule, error)
	DeleteRecurringRule(ctx context.Context, ownerID, id string) error

	FetchDebts(ctx context.Context, ownerID string) ([]domain.Debt, error)
	InsertDebt(ctx context.Context, ownerID string, d domain.Debt) (domain.Debt, error)
	UpdateDebt(ctx context.Context, ownerID, id string, d domain.Debt) (domain.Debt, error)
	DeleteDebt(ctx context.Context, ownerID, id string) error

	FetchCreditCards(ctx context.Context, ownerID string) ([]domain.CreditCard, error)
	InsertCreditCard(ctx context.Context, ownerID string, card domain.CreditCard) (domain.CreditCard, error)
	UpdateCreditCard(ctx context.Context, ownerID, id string, card domain.CreditCard) (domain.CreditCard, error)
	DeleteCreditCard(ctx context.Context, ownerID, id string) error

	FetchFundSources(ctx context.Context, ownerID string) ([]domain.FundSource, error)
	InsertFundSource(ctx context.Context, ownerID string, f domain.FundSource) (domain.FundSource, error)
	UpdateFundSource(ctx context.Context, ownerID, id string, f domain.FundSource) (domain.FundSource, error)
	DeleteFundSource(ctx context.Context, ownerID, id string) error

	FetchInvestments(ctx context.Context, ownerID string) ([]domain.Investment, error)
	InsertInvestment(ctx context.Context, ownerID string, inv domain.Investment) (domain.Investment, error)
	UpdateInvestment(ctx context.Context, ownerID, id string, inv domain.Investment) (domain.Investment, error)
	DeleteInvestment(ctx context.Context, ownerID, id string) error

	FetchLoans(ctx context.Context, ownerID string) ([]domain.Loan, error)
	InsertLoan(ctx context.Context, ownerID string, l domain.Loan) (domain.Loan, error)
	UpdateLoan(ctx context.Context, ownerID, id string, l domain.Loan) (domain.Loan, error)
	DeleteLoan(ctx context.Context, ownerID, id string) error

	FetchUserProfile(ctx context.Context, ownerID string) (*domain.UserProfile, error)
	SaveUserProfile(ctx context.Context, ownerID string, p domain.UserProfile) (domain.UserProfile, error)

	ListenTransactions(ctx context.Context, ownerID string, handler func(postgres.TransactionChange)) error
}
