package domain

import (
	"time"
)

// Kind classifies a transaction by what the money movement represents.
type Kind string

const (
	KindExpense    Kind = "expense"
	KindIncome     Kind = "income"
	KindDebt       Kind = "debt"
	KindInvestment Kind = "investment"
	KindLoan       Kind = "loan"
)

// Valid reports whether k is one of the known transaction kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindExpense, KindIncome, KindDebt, KindInvestment, KindLoan:
		return true
	}
	return false
}

// Transaction is one concrete money movement. It is immutable once recorded
// except through an explicit edit, and references to other entities
// (card, fund source, loan) may dangle after those entities are deleted;
// consumers must treat a dangling reference as absent, never as an error.
type Transaction struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	Amount       float64   `json:"amount"`
	Kind         Kind      `json:"type"`
	Category     string    `json:"category"`
	Details      string    `json:"details"`
	From         string    `json:"from"`
	CreditCardID string    `json:"credit_card_id,omitempty"`
	FundSourceID string    `json:"fund_source_id,omitempty"`
	LoanID       string    `json:"loan_id,omitempty"`
}
