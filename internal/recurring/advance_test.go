package recurring

import (
	"testing"
	"time"

	"github.com/ddanilov/homeledger/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name   string
		anchor time.Time
		freq   domain.Frequency
		want   time.Time
	}{
		{"daily", date(2024, time.March, 14), domain.FrequencyDaily, date(2024, time.March, 15)},
		{"daily across month end", date(2024, time.January, 31), domain.FrequencyDaily, date(2024, time.February, 1)},
		{"weekly", date(2024, time.March, 1), domain.FrequencyWeekly, date(2024, time.March, 8)},
		{"weekly across year end", date(2023, time.December, 28), domain.FrequencyWeekly, date(2024, time.January, 4)},
		{"monthly mid-month", date(2024, time.January, 15), domain.FrequencyMonthly, date(2024, time.February, 15)},
		{"monthly jan 31 clamps to leap feb", date(2024, time.January, 31), domain.FrequencyMonthly, date(2024, time.February, 29)},
		{"monthly jan 31 clamps to feb 28", date(2023, time.January, 31), domain.FrequencyMonthly, date(2023, time.February, 28)},
		{"monthly mar 31 clamps to apr 30", date(2024, time.March, 31), domain.FrequencyMonthly, date(2024, time.April, 30)},
		{"monthly dec rolls year", date(2023, time.December, 31), domain.FrequencyMonthly, date(2024, time.January, 31)},
		{"yearly", date(2023, time.June, 10), domain.FrequencyYearly, date(2024, time.June, 10)},
		{"yearly from leap day clamps", date(2024, time.February, 29), domain.FrequencyYearly, date(2025, time.February, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Advance(tt.anchor, tt.freq)
			if err != nil {
				t.Fatalf("Advance(%v, %q) error: %v", tt.anchor, tt.freq, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Advance(%v, %q) = %v, want %v", tt.anchor, tt.freq, got, tt.want)
			}
		})
	}
}

func TestAdvance_PreservesTimeOfDay(t *testing.T) {
	anchor := time.Date(2024, time.January, 31, 9, 30, 15, 0, time.UTC)

	got, err := Advance(anchor, domain.FrequencyMonthly)
	if err != nil {
		t.Fatal(err)
	}

	want := time.Date(2024, time.February, 29, 9, 30, 15, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Advance = %v, want %v", got, want)
	}
}

func TestAdvance_UnknownFrequency(t *testing.T) {
	if _, err := Advance(date(2024, time.January, 1), domain.Frequency("fortnightly")); err == nil {
		t.Error("Expected an error for an unknown frequency")
	}
}

func TestMarker(t *testing.T) {
	details := MaterializedDetails("Netflix")
	if !IsMaterialized(details) {
		t.Errorf("IsMaterialized(%q) = false, want true", details)
	}
	if IsMaterialized("Netflix") {
		t.Error("IsMaterialized of a user-entered detail should be false")
	}
}
