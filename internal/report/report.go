// Package report derives dashboard figures from a store snapshot. Everything
// here is a pure recomputation over the snapshot; nothing is cached or
// written back. Sums run through decimal so a long ledger of cent amounts
// does not drift.
package report

import (
	"sort"
	"time"

	"github.com/ddanilov/homeledger/internal/domain"
	"github.com/ddanilov/homeledger/internal/store"
	"github.com/shopspring/decimal"
)

// Summary is the headline income/expense view for a window.
type Summary struct {
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
	Income   float64   `json:"income"`
	Expenses float64   `json:"expenses"`
	Net      float64   `json:"net"`
	Count    int       `json:"count"`
}

// CategorySpend is the expense total for one category.
type CategorySpend struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

// BudgetProgress compares a budget's cap against actual spend in a month.
type BudgetProgress struct {
	Budget    domain.Budget `json:"budget"`
	Spent     float64       `json:"spent"`
	Remaining float64       `json:"remaining"`
	Ratio     float64       `json:"ratio"`
}

// FundSourceActivity is the flow through one account.
type FundSourceActivity struct {
	FundSource domain.FundSource `json:"fund_source"`
	Inflow     float64           `json:"inflow"`
	Outflow    float64           `json:"outflow"`
}

// CardUtilization is a credit card's balance against its limit.
type CardUtilization struct {
	Card        domain.CreditCard `json:"card"`
	Utilization float64           `json:"utilization"`
}

// DebtLoad aggregates outstanding debts.
type DebtLoad struct {
	Total           float64 `json:"total"`
	MinimumPayments float64 `json:"minimum_payments"`
	Count           int     `json:"count"`
}

// InvestmentPerformance is one holding's gain or loss against what was paid.
type InvestmentPerformance struct {
	Investment domain.Investment `json:"investment"`
	GainLoss   float64           `json:"gain_loss"`
	Ratio      float64           `json:"ratio"`
}

// LoanProgress tracks how far a loan has been paid down, alongside the loan
// payments recorded in the ledger.
type LoanProgress struct {
	Loan        domain.Loan `json:"loan"`
	Repaid      float64     `json:"repaid"`
	RepaidRatio float64     `json:"repaid_ratio"`
	Payments    float64     `json:"payments"`
}

// Habits summarizes spending behaviour over a trailing window.
type Habits struct {
	WindowDays     int                 `json:"window_days"`
	AverageDaily   float64             `json:"average_daily"`
	LargestExpense *domain.Transaction `json:"largest_expense,omitempty"`
	TopCategory    string              `json:"top_category,omitempty"`
	MonthlyTotals  []MonthTotal        `json:"monthly_totals"`
}

// MonthTotal is one month's expense total, keyed YYYY-MM.
type MonthTotal struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

func inWindow(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

// Summarize totals income and expenses for transactions dated in [from, to).
func Summarize(snap store.Snapshot, from, to time.Time) Summary {
	income := decimal.Zero
	expenses := decimal.Zero
	count := 0
	for _, tx := range snap.Transactions {
		if !inWindow(tx.Date, from, to) {
			continue
		}
		count++
		switch tx.Kind {
		case domain.KindIncome:
			income = income.Add(decimal.NewFromFloat(tx.Amount))
		case domain.KindExpense:
			expenses = expenses.Add(decimal.NewFromFloat(tx.Amount))
		}
	}
	return Summary{
		From:     from,
		To:       to,
		Income:   income.InexactFloat64(),
		Expenses: expenses.InexactFloat64(),
		Net:      income.Sub(expenses).InexactFloat64(),
		Count:    count,
	}
}

// ByCategory breaks expenses in [from, to) down per category, largest first.
func ByCategory(snap store.Snapshot, from, to time.Time) []CategorySpend {
	totals := map[string]decimal.Decimal{}
	counts := map[string]int{}
	for _, tx := range snap.Transactions {
		if tx.Kind != domain.KindExpense || !inWindow(tx.Date, from, to) {
			continue
		}
		totals[tx.Category] = totals[tx.Category].Add(decimal.NewFromFloat(tx.Amount))
		counts[tx.Category]++
	}

	out := make([]CategorySpend, 0, len(totals))
	for cat, total := range totals {
		out = append(out, CategorySpend{Category: cat, Total: total.InexactFloat64(), Count: counts[cat]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Budgets recomputes each budget's spent figure from expenses in the month
// containing ref. The snapshot's cached Spent values are ignored.
func Budgets(snap store.Snapshot, ref time.Time) []BudgetProgress {
	from := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	to := from.AddDate(0, 1, 0)
	byCategory := map[string]decimal.Decimal{}
	for _, tx := range snap.Transactions {
		if tx.Kind != domain.KindExpense || !inWindow(tx.Date, from, to) {
			continue
		}
		byCategory[tx.Category] = byCategory[tx.Category].Add(decimal.NewFromFloat(tx.Amount))
	}

	out := make([]BudgetProgress, 0, len(snap.Budgets))
	for _, b := range snap.Budgets {
		spent := byCategory[b.Category]
		amount := decimal.NewFromFloat(b.Amount)
		ratio := 0.0
		if amount.IsPositive() {
			ratio, _ = spent.Div(amount).Float64()
		}
		out = append(out, BudgetProgress{
			Budget:    b,
			Spent:     spent.InexactFloat64(),
			Remaining: amount.Sub(spent).InexactFloat64(),
			Ratio:     ratio,
		})
	}
	return out
}

// FundSources rolls up the inflow and outflow recorded against each account.
func FundSources(snap store.Snapshot) []FundSourceActivity {
	inflow := map[string]decimal.Decimal{}
	outflow := map[string]decimal.Decimal{}
	for _, tx := range snap.Transactions {
		if tx.FundSourceID == "" {
			continue
		}
		switch tx.Kind {
		case domain.KindIncome:
			inflow[tx.FundSourceID] = inflow[tx.FundSourceID].Add(decimal.NewFromFloat(tx.Amount))
		case domain.KindExpense:
			outflow[tx.FundSourceID] = outflow[tx.FundSourceID].Add(decimal.NewFromFloat(tx.Amount))
		}
	}

	out := make([]FundSourceActivity, 0, len(snap.FundSources))
	for _, fs := range snap.FundSources {
		out = append(out, FundSourceActivity{
			FundSource: fs,
			Inflow:     inflow[fs.ID].InexactFloat64(),
			Outflow:    outflow[fs.ID].InexactFloat64(),
		})
	}
	return out
}

// Cards reports utilization per credit card. A card with no limit reports
// zero utilization.
func Cards(snap store.Snapshot) []CardUtilization {
	out := make([]CardUtilization, 0, len(snap.CreditCards))
	for _, card := range snap.CreditCards {
		util := 0.0
		if card.Limit > 0 {
			util, _ = decimal.NewFromFloat(card.Balance).Div(decimal.NewFromFloat(card.Limit)).Float64()
		}
		out = append(out, CardUtilization{Card: card, Utilization: util})
	}
	return out
}

// Debts totals outstanding debt balances and their minimum payments.
func Debts(snap store.Snapshot) DebtLoad {
	total := decimal.Zero
	minimum := decimal.Zero
	for _, d := range snap.Debts {
		total = total.Add(decimal.NewFromFloat(d.Amount))
		minimum = minimum.Add(decimal.NewFromFloat(d.MinimumPayment))
	}
	return DebtLoad{
		Total:           total.InexactFloat64(),
		MinimumPayments: minimum.InexactFloat64(),
		Count:           len(snap.Debts),
	}
}

// Investments reports each holding's unrealized gain or loss. A position
// with no purchase price reports a zero ratio.
func Investments(snap store.Snapshot) []InvestmentPerformance {
	out := make([]InvestmentPerformance, 0, len(snap.Investments))
	for _, inv := range snap.Investments {
		gain := decimal.NewFromFloat(inv.CurrentValue).Sub(decimal.NewFromFloat(inv.PurchasePrice))
		ratio := 0.0
		if inv.PurchasePrice > 0 {
			ratio, _ = gain.Div(decimal.NewFromFloat(inv.PurchasePrice)).Float64()
		}
		out = append(out, InvestmentPerformance{
			Investment: inv,
			GainLoss:   gain.InexactFloat64(),
			Ratio:      ratio,
		})
	}
	return out
}

// Loans reports pay-down progress per loan plus the payments recorded
// against it. A payment pointing at a deleted loan simply goes uncounted.
func Loans(snap store.Snapshot) []LoanProgress {
	payments := map[string]decimal.Decimal{}
	for _, tx := range snap.Transactions {
		if tx.Kind != domain.KindLoan || tx.LoanID == "" {
			continue
		}
		payments[tx.LoanID] = payments[tx.LoanID].Add(decimal.NewFromFloat(tx.Amount))
	}

	out := make([]LoanProgress, 0, len(snap.Loans))
	for _, l := range snap.Loans {
		repaid := decimal.NewFromFloat(l.OriginalAmount).Sub(decimal.NewFromFloat(l.CurrentBalance))
		ratio := 0.0
		if l.OriginalAmount > 0 {
			ratio, _ = repaid.Div(decimal.NewFromFloat(l.OriginalAmount)).Float64()
		}
		out = append(out, LoanProgress{
			Loan:        l,
			Repaid:      repaid.InexactFloat64(),
			RepaidRatio: ratio,
			Payments:    payments[l.ID].InexactFloat64(),
		})
	}
	return out
}

// SpendingHabits looks at expenses in the windowDays before now.
func SpendingHabits(snap store.Snapshot, now time.Time, windowDays int) Habits {
	if windowDays <= 0 {
		windowDays = 30
	}
	from := now.AddDate(0, 0, -windowDays)

	total := decimal.Zero
	categoryCounts := map[string]int{}
	monthly := map[string]decimal.Decimal{}
	var largest *domain.Transaction
	for _, tx := range snap.Transactions {
		if tx.Kind != domain.KindExpense || !inWindow(tx.Date, from, now) {
			continue
		}
		total = total.Add(decimal.NewFromFloat(tx.Amount))
		categoryCounts[tx.Category]++
		key := tx.Date.Format("2006-01")
		monthly[key] = monthly[key].Add(decimal.NewFromFloat(tx.Amount))
		if largest == nil || tx.Amount > largest.Amount {
			tx := tx
			largest = &tx
		}
	}

	top := ""
	best := 0
	for cat, n := range categoryCounts {
		if n > best || (n == best && cat < top) {
			top, best = cat, n
		}
	}

	months := make([]MonthTotal, 0, len(monthly))
	for key, sum := range monthly {
		months = append(months, MonthTotal{Month: key, Total: sum.InexactFloat64()})
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Month < months[j].Month })

	avg, _ := total.Div(decimal.NewFromInt(int64(windowDays))).Float64()
	return Habits{
		WindowDays:     windowDays,
		AverageDaily:   avg,
		LargestExpense: largest,
		TopCategory:    top,
		MonthlyTotals:  months,
	}
}
