package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ddanilov/homeledger/internal/logger"
	"github.com/ddanilov/homeledger/internal/notion"
	"github.com/ddanilov/homeledger/internal/snapshot"
	"github.com/ddanilov/homeledger/internal/store"
)

func main() {
	log := logger.New()

	snapshotPath := flag.String("snapshot", "finance-store.json", "Path to the snapshot file")
	notionToken := flag.String("notion-token", os.Getenv("NOTION_TOKEN"), "Notion API token (or set NOTION_TOKEN env)")
	notionDBID := flag.String("notion-db-id", os.Getenv("NOTION_DATABASE_ID"), "Notion database ID (or set NOTION_DATABASE_ID env)")
	dryRun := flag.Bool("dry-run", false, "Dry run mode - preview changes without writing to Notion")
	flag.Parse()

	if *notionToken == "" {
		log.Fatal().Msg("Error: --notion-token is required")
	}
	if *notionDBID == "" {
		log.Fatal().Msg("Error: --notion-db-id is required")
	}

	repo := snapshot.NewFileRepository(*snapshotPath)
	snap, ok, err := repo.Load()
	if err != nil {
		log.Fatal().Err(err).Str("path", *snapshotPath).Msg("Failed to load snapshot")
	}
	if !ok {
		log.Fatal().Str("path", *snapshotPath).Msg("No snapshot found")
	}

	st := store.New()
	st.Restore(snap)
	txs := st.Transactions()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	log.Info().
		Int("transaction_count", len(txs)).
		Bool("dry_run", *dryRun).
		Msg("Starting Notion export")

	client := notion.NewClient(*notionToken)
	if err := notion.SyncTransactions(ctx, client, *notionDBID, txs, *dryRun); err != nil {
		log.Fatal().Err(err).Msg("Export failed")
	}

	fmt.Println("Export completed successfully.")
}
