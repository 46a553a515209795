package domain

// BudgetPeriod is the budgeting window. Only monthly budgets exist today.
type BudgetPeriod string

const BudgetPeriodMonthly BudgetPeriod = "monthly"

// Budget caps spending for a category. Spent is a display cache recomputed
// from transactions (see the report package); the store does not maintain it
// transactionally.
type Budget struct {
	ID       string       `json:"id"`
	Category string       `json:"category"`
	Amount   float64      `json:"amount"`
	Period   BudgetPeriod `json:"period"`
	Spent    float64      `json:"spent"`
}

// Debt is money owed to a counterparty outside of a formal loan.
type Debt struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Amount         float64 `json:"amount"`
	InterestRate   float64 `json:"interest_rate"`
	MinimumPayment float64 `json:"minimum_payment"`
	DueDate        string  `json:"due_date"`
}
