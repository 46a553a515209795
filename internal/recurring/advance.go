// Package recurring turns declarative recurring rules into concrete
// transaction history: it decides when a rule is due, materializes a
// transaction for it, and advances the rule's last-processed timestamp.
package recurring

import (
	"fmt"
	"time"

	"github.com/ddanilov/homeledger/internal/domain"
)

// Advance returns anchor plus exactly one calendar unit of freq.
// Month and year advancement is calendar-aware: the day of month is clamped
// to the target month's length, so Jan 31 advances to Feb 28 (or 29), never
// into March.
func Advance(anchor time.Time, freq domain.Frequency) (time.Time, error) {
	switch freq {
	case domain.FrequencyDaily:
		return anchor.AddDate(0, 0, 1), nil
	case domain.FrequencyWeekly:
		return anchor.AddDate(0, 0, 7), nil
	case domain.FrequencyMonthly:
		return addMonths(anchor, 1), nil
	case domain.FrequencyYearly:
		return addMonths(anchor, 12), nil
	}
	return time.Time{}, fmt.Errorf("Advance: unknown frequency %q", freq)
}

// addMonths shifts t by the given number of months, clamping the day of
// month. time.AddDate is unsuitable here: it normalizes Jan 31 + 1 month
// into early March.
func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
