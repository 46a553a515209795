package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ddanilov/homeledger/internal/currency"
	"github.com/ddanilov/homeledger/internal/logger"
	"github.com/ddanilov/homeledger/internal/recurring"
	"github.com/ddanilov/homeledger/internal/report"
	"github.com/ddanilov/homeledger/internal/snapshot"
	"github.com/ddanilov/homeledger/internal/store"
	"github.com/ddanilov/homeledger/internal/syncer"
	"github.com/rs/zerolog"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "report":
		runReport(log)
	case "habits":
		runHabits(log)
	case "process-due":
		runProcessDue(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("HomeLedger CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  report       Print the monthly summary, category and budget breakdown")
	fmt.Println("  habits       Print spending habits over a trailing window")
	fmt.Println("  process-due  Materialize due recurring transactions into the snapshot")
	fmt.Println("  help         Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

func loadStore(log zerolog.Logger, path string) (*store.Store, *snapshot.FileRepository) {
	repo := snapshot.NewFileRepository(path)
	st := store.New()

	snap, ok, err := repo.Load()
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to load snapshot")
	}
	if !ok {
		log.Fatal().Str("path", path).Msg("No snapshot found")
	}
	st.Restore(snap)
	return st, repo
}

func runReport(log zerolog.Logger) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	path := fs.String("snapshot", "finance-store.json", "Path to the snapshot file")
	month := fs.String("month", "", "Month to report on, YYYY-MM (defaults to current)")
	fs.Parse(os.Args[2:])

	ref := time.Now().UTC()
	if *month != "" {
		parsed, err := time.Parse("2006-01", *month)
		if err != nil {
			log.Fatal().Err(err).Msg("--month must be YYYY-MM")
		}
		ref = parsed
	}
	from := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	st, _ := loadStore(log, *path)
	snap := st.Snapshot()
	code := currency.Code(snap.UserProfile)

	sum := report.Summarize(snap, from, to)
	fmt.Printf("Report for %s\n\n", from.Format("January 2006"))
	fmt.Printf("  Income:   %s\n", currency.Format(sum.Income, code))
	fmt.Printf("  Expenses: %s\n", currency.Format(sum.Expenses, code))
	fmt.Printf("  Net:      %s\n", currency.Format(sum.Net, code))
	fmt.Printf("  Transactions: %d\n", sum.Count)

	cats := report.ByCategory(snap, from, to)
	if len(cats) > 0 {
		fmt.Println("\nSpending by category:")
		for _, cat := range cats {
			fmt.Printf("  %-20s %s (%d)\n", cat.Category, currency.Format(cat.Total, code), cat.Count)
		}
	}

	budgets := report.Budgets(snap, from)
	if len(budgets) > 0 {
		fmt.Println("\nBudgets:")
		for _, bp := range budgets {
			fmt.Printf("  %-20s %s of %s (%.0f%%)\n",
				bp.Budget.Category,
				currency.Format(bp.Spent, code),
				currency.Format(bp.Budget.Amount, code),
				bp.Ratio*100)
		}
	}
}

func runHabits(log zerolog.Logger) {
	fs := flag.NewFlagSet("habits", flag.ExitOnError)
	path := fs.String("snapshot", "finance-store.json", "Path to the snapshot file")
	days := fs.Int("days", 30, "Trailing window in days")
	fs.Parse(os.Args[2:])

	st, _ := loadStore(log, *path)
	snap := st.Snapshot()
	code := currency.Code(snap.UserProfile)

	habits := report.SpendingHabits(snap, time.Now().UTC(), *days)
	fmt.Printf("Spending habits over the last %d days\n\n", habits.WindowDays)
	fmt.Printf("  Average daily spend: %s\n", currency.Format(habits.AverageDaily, code))
	if habits.TopCategory != "" {
		fmt.Printf("  Most frequent category: %s\n", habits.TopCategory)
	}
	if habits.LargestExpense != nil {
		fmt.Printf("  Largest expense: %s (%s, %s)\n",
			currency.Format(habits.LargestExpense.Amount, code),
			habits.LargestExpense.Category,
			habits.LargestExpense.Date.Format("2006-01-02"))
	}
	if len(habits.MonthlyTotals) > 0 {
		fmt.Println("\n  Monthly totals:")
		for _, mt := range habits.MonthlyTotals {
			fmt.Printf("    %s  %s\n", mt.Month, currency.Format(mt.Total, code))
		}
	}
}

func runProcessDue(log zerolog.Logger) {
	fs := flag.NewFlagSet("process-due", flag.ExitOnError)
	path := fs.String("snapshot", "finance-store.json", "Path to the snapshot file")
	fs.Parse(os.Args[2:])

	st, repo := loadStore(log, *path)
	st.OnChange(func(snap store.Snapshot) {
		if err := repo.Save(snap); err != nil {
			log.Error().Err(err).Msg("Failed to persist snapshot")
		}
	})

	svc := syncer.New(st, nil, "", log)
	proc := recurring.NewProcessor(syncer.NewLedger(svc, log), log)
	materialized := proc.ProcessDue(time.Now().UTC())
	fmt.Printf("Materialized %d recurring transaction(s).\n", materialized)
}
