package domain

import (
	"time"
)

type InvestmentType string

const (
	InvestmentStocks      InvestmentType = "stocks"
	InvestmentBonds       InvestmentType = "bonds"
	InvestmentMutualFunds InvestmentType = "mutual_funds"
	InvestmentETF         InvestmentType = "etf"
	InvestmentCrypto      InvestmentType = "crypto"
	InvestmentRealEstate  InvestmentType = "real_estate"
	InvestmentOther       InvestmentType = "other"
)

type InvestmentStatus string

const (
	InvestmentActive  InvestmentStatus = "active"
	InvestmentSold    InvestmentStatus = "sold"
	InvestmentPending InvestmentStatus = "pending"
)

// Investment is a held asset position.
type Investment struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Type          InvestmentType   `json:"type"`
	PurchaseDate  string           `json:"purchase_date"`
	PurchasePrice float64          `json:"purchase_price"`
	CurrentValue  float64          `json:"current_value"`
	Quantity      float64          `json:"quantity"`
	Status        InvestmentStatus `json:"status"`
	FundSourceID  string           `json:"fund_source_id,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	LastUpdated   time.Time        `json:"last_updated"`
}
