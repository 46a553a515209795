package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ddanilov/homeledger/internal/domain"
	"github.com/ddanilov/homeledger/internal/store"
)

type stubGenerator struct {
	reply  string
	err    error
	prompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.reply, s.err
}

func testSnapshot() store.Snapshot {
	return store.Snapshot{
		Transactions: []domain.Transaction{
			{ID: "t1", Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Amount: 1200, Kind: domain.KindIncome, Category: "salary"},
			{ID: "t2", Date: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), Amount: 300, Kind: domain.KindExpense, Category: "rent"},
		},
		Budgets:     []domain.Budget{{ID: "b1", Category: "rent", Amount: 400, Period: domain.BudgetPeriodMonthly}},
		UserProfile: &domain.UserProfile{Currency: "EUR"},
	}
}

func TestAdviseParsesModelReply(t *testing.T) {
	gen := &stubGenerator{reply: `{"summary":"Healthy month.","recommendations":["Keep saving"],"warnings":[]}`}
	adv := New(gen)

	advice, err := adv.Advise(context.Background(), testSnapshot(), time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Advise: %v", err)
	}
	if advice.Summary != "Healthy month." {
		t.Errorf("summary: %q", advice.Summary)
	}
	if len(advice.Recommendations) != 1 {
		t.Errorf("recommendations: %+v", advice.Recommendations)
	}
}

func TestAdviseStripsCodeFences(t *testing.T) {
	gen := &stubGenerator{reply: "```json\n{\"summary\":\"ok\",\"recommendations\":[]}\n```"}
	adv := New(gen)

	advice, err := adv.Advise(context.Background(), testSnapshot(), time.Now())
	if err != nil {
		t.Fatalf("Advise: %v", err)
	}
	if advice.Summary != "ok" {
		t.Errorf("summary: %q", advice.Summary)
	}
}

func TestAdvisePropagatesGeneratorError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	if _, err := New(gen).Advise(context.Background(), testSnapshot(), time.Now()); err == nil {
		t.Fatal("expected error")
	}
}

func TestAdviseRejectsEmptyReply(t *testing.T) {
	gen := &stubGenerator{reply: ""}
	if _, err := New(gen).Advise(context.Background(), testSnapshot(), time.Now()); err == nil {
		t.Fatal("expected error for empty reply")
	}
}

func TestBuildPromptCarriesFigures(t *testing.T) {
	prompt := BuildPrompt(testSnapshot(), time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))

	for _, want := range []string{
		"Currency: EUR",
		"€1,200.00", // month income
		"€300.00",   // month expenses
		"rent: cap €400.00, spent €300.00",
		"STRICT JSON",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q\n%s", want, prompt)
		}
	}
}
