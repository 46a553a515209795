// Package advisor produces financial guidance over the owner's ledger by
// prompting Gemini with a compact digest of the store and asking for strict
// JSON back.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ddanilov/homeledger/internal/currency"
	"github.com/ddanilov/homeledger/internal/report"
	"github.com/ddanilov/homeledger/internal/store"
)

// ContentGenerator abstracts the model call so tests can stub it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Advice is the model's structured answer.
type Advice struct {
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
	Warnings        []string `json:"warnings,omitempty"`
}

type Advisor struct {
	gen ContentGenerator
}

func New(gen ContentGenerator) *Advisor {
	return &Advisor{gen: gen}
}

// Advise digests the snapshot as of now, asks the model for advice and
// parses the JSON reply.
func (a *Advisor) Advise(ctx context.Context, snap store.Snapshot, now time.Time) (Advice, error) {
	prompt := BuildPrompt(snap, now)

	raw, err := a.gen.GenerateContent(ctx, prompt)
	if err != nil {
		return Advice{}, fmt.Errorf("Advise: generate content: %w", err)
	}
	if raw == "" {
		return Advice{}, fmt.Errorf("Advise: empty response from model")
	}

	var advice Advice
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &advice); err != nil {
		return Advice{}, fmt.Errorf("Advise: unmarshal JSON: %w\nraw response: %s", err, raw)
	}
	return advice, nil
}

// BuildPrompt renders the digest the model sees. Only aggregates go out, not
// the raw transaction list.
func BuildPrompt(snap store.Snapshot, now time.Time) string {
	code := currency.Code(snap.UserProfile)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	summary := report.Summarize(snap, monthStart, monthStart.AddDate(0, 1, 0))
	habits := report.SpendingHabits(snap, now, 30)
	debts := report.Debts(snap)

	var b strings.Builder
	b.WriteString("You are a personal finance advisor. Analyse the following household figures.\n\n")
	fmt.Fprintf(&b, "Currency: %s\n", code)
	fmt.Fprintf(&b, "Current month income: %s\n", currency.Format(summary.Income, code))
	fmt.Fprintf(&b, "Current month expenses: %s\n", currency.Format(summary.Expenses, code))
	fmt.Fprintf(&b, "Current month net: %s\n", currency.Format(summary.Net, code))
	fmt.Fprintf(&b, "Average daily spend (30d): %s\n", currency.Format(habits.AverageDaily, code))
	if habits.TopCategory != "" {
		fmt.Fprintf(&b, "Most frequent expense category: %s\n", habits.TopCategory)
	}
	fmt.Fprintf(&b, "Outstanding debts: %d totalling %s (minimum payments %s)\n",
		debts.Count, currency.Format(debts.Total, code), currency.Format(debts.MinimumPayments, code))

	b.WriteString("\nBudgets (category, cap, spent this month):\n")
	for _, bp := range report.Budgets(snap, now) {
		fmt.Fprintf(&b, "- %s: cap %s, spent %s\n",
			bp.Budget.Category, currency.Format(bp.Budget.Amount, code), currency.Format(bp.Spent, code))
	}

	b.WriteString("\nTop expense categories this month:\n")
	for i, cat := range report.ByCategory(snap, monthStart, monthStart.AddDate(0, 1, 0)) {
		if i == 5 {
			break
		}
		fmt.Fprintf(&b, "- %s: %s\n", cat.Category, currency.Format(cat.Total, code))
	}

	b.WriteString("\nOutput STRICT JSON only (no comments, no extra text), a single object:\n")
	b.WriteString("- \"summary\": string, two or three sentences on overall financial health\n")
	b.WriteString("- \"recommendations\": array of strings, concrete actions\n")
	b.WriteString("- \"warnings\": array of strings, urgent problems (may be empty)\n\n")
	b.WriteString("Return ONLY valid raw JSON.\n")
	b.WriteString("Do NOT wrap the response in code fences.\n")
	b.WriteString("Output must begin with \"{\" and end with \"}\".\n")
	return b.String()
}

// cleanModelJSON strips Markdown fences and surrounding junk when the model
// ignores the formatting instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}
