package domain

import (
	"time"
)

// Frequency is the calendar cadence of a recurring rule.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// StartDateLayout is the wire format of RecurringRule.StartDate.
const StartDateLayout = "2006-01-02"

// RecurringRule is a template for a transaction that repeats on a fixed
// calendar cadence. StartDate is kept as the raw YYYY-MM-DD string it was
// entered as; a rule whose StartDate fails to parse is skipped by the
// scheduler, it does not abort processing of other rules.
// LastProcessed is absent until the first materialization and is only ever
// advanced forward by the scheduler.
type RecurringRule struct {
	ID            string     `json:"id"`
	Amount        float64    `json:"amount"`
	Kind          Kind       `json:"type"`
	Category      string     `json:"category"`
	Details       string     `json:"details"`
	From          string     `json:"from"`
	Frequency     Frequency  `json:"frequency"`
	StartDate     string     `json:"start_date"`
	LastProcessed *time.Time `json:"last_processed,omitempty"`
}
