// Package currency renders amounts in the owner's preferred currency.
package currency

import (
	"github.com/Rhymond/go-money"
	"github.com/ddanilov/homeledger/internal/domain"
)

// DefaultCode is used when no profile is stored or the profile carries an
// unknown currency code.
const DefaultCode = "USD"

// Code returns the display currency for a profile, falling back to
// DefaultCode.
func Code(p *domain.UserProfile) string {
	if p == nil || money.GetCurrency(p.Currency) == nil {
		return DefaultCode
	}
	return p.Currency
}

// Format renders amount with the symbol and decimal conventions of code,
// e.g. Format(1234.5, "EUR") == "€1,234.50".
func Format(amount float64, code string) string {
	if money.GetCurrency(code) == nil {
		code = DefaultCode
	}
	return money.NewFromFloat(amount, code).Display()
}
