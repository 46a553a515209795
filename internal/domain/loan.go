package domain

type LoanType string

const (
	LoanPersonal LoanType = "personal"
	LoanMortgage LoanType = "mortgage"
	LoanAuto     LoanType = "auto"
	LoanStudent  LoanType = "student"
	LoanBusiness LoanType = "business"
	LoanOther    LoanType = "other"
)

type LoanStatus string

const (
	LoanActive    LoanStatus = "active"
	LoanPaid      LoanStatus = "paid"
	LoanDefaulted LoanStatus = "defaulted"
)

// Loan is a formal amortizing debt with a lender.
type Loan struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Lender          string     `json:"lender"`
	Type            LoanType   `json:"type"`
	OriginalAmount  float64    `json:"original_amount"`
	CurrentBalance  float64    `json:"current_balance"`
	InterestRate    float64    `json:"interest_rate"`
	MonthlyPayment  float64    `json:"monthly_payment"`
	StartDate       string     `json:"start_date"`
	EndDate         string     `json:"end_date"`
	Status          LoanStatus `json:"status"`
	NextPaymentDate string     `json:"next_payment_date"`
	FundSourceID    string     `json:"fund_source_id,omitempty"`
}
