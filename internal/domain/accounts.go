package domain

import (
	"time"
)

// CreditCard is a revolving credit line. Balance is bumped by the
// transactions API when a debt transaction charges the card; that is a
// side effect of the caller, not a store invariant.
type CreditCard struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Bank       string  `json:"bank"`
	Limit      float64 `json:"limit"`
	CutOffDate int     `json:"cut_off_date"`
	Balance    float64 `json:"balance"`
}

// FundSource is a bank or cash account acting as a money reservoir for
// income and expense transactions.
type FundSource struct {
	ID          string    `json:"id"`
	BankName    string    `json:"bank_name"`
	AccountName string    `json:"account_name"`
	AccountType string    `json:"account_type"`
	Balance     float64   `json:"balance"`
	LastUpdated time.Time `json:"last_updated"`
}
