package notion

import (
	"context"
	"fmt"

	"github.com/ddanilov/homeledger/internal/domain"
	"github.com/ddanilov/homeledger/internal/logger"
	"github.com/jomei/notionapi"
)

// SyncTransactions reconciles a Notion database against the given ledger:
// stale pages (no longer in the ledger) are archived, known transactions are
// updated in place, and the rest are created. With dryRun set nothing is
// written, the planned actions are only logged.
func SyncTransactions(ctx context.Context, client Service, databaseID string, txs []domain.Transaction, dryRun bool) error {
	log := logger.FromContext(ctx)

	log.Info().
		Int("transaction_count", len(txs)).
		Bool("dry_run", dryRun).
		Msg("Starting transaction export to Notion")

	valid := make(map[string]bool, len(txs))
	for _, tx := range txs {
		valid[tx.ID] = true
	}

	pages, err := queryAllPages(ctx, client, databaseID)
	if err != nil {
		return fmt.Errorf("SyncTransactions: query pages: %w", err)
	}
	log.Info().Int("notion_page_count", len(pages)).Msg("Retrieved existing Notion pages")

	// txID -> page ID for pages that survive reconciliation.
	existing := make(map[string]string)

	var deleted int
	for _, page := range pages {
		txID := extractTransactionID(page)
		if txID != "" && valid[txID] {
			existing[txID] = string(page.ID)
			continue
		}
		// Stale page, or an old page without a Transaction ID.
		if dryRun {
			log.Info().
				Str("transaction_id", txID).
				Str("page_id", string(page.ID)).
				Msg("[DRY RUN] Would archive stale Notion page")
			deleted++
			continue
		}
		if err := client.DeletePage(ctx, string(page.ID)); err != nil {
			log.Warn().
				Err(err).
				Str("transaction_id", txID).
				Str("page_id", string(page.ID)).
				Msg("Failed to archive stale Notion page")
			continue
		}
		deleted++
	}

	var created, updated int
	for _, tx := range txs {
		props := TransactionToProperties(tx)
		pageID, known := existing[tx.ID]

		if dryRun {
			action := "create"
			if known {
				action = "update"
			}
			log.Info().
				Str("transaction_id", tx.ID).
				Str("action", action).
				Msg("[DRY RUN] Would export transaction")
			continue
		}

		if known {
			if _, err := client.UpdatePage(ctx, pageID, props); err != nil {
				log.Warn().Err(err).Str("transaction_id", tx.ID).Msg("Failed to update Notion page")
				continue
			}
			updated++
		} else {
			if _, err := client.CreatePage(ctx, databaseID, props); err != nil {
				log.Warn().Err(err).Str("transaction_id", tx.ID).Msg("Failed to create Notion page")
				continue
			}
			created++
		}
	}

	log.Info().
		Int("created", created).
		Int("updated", updated).
		Int("deleted", deleted).
		Msg("Transaction export complete")
	return nil
}

func queryAllPages(ctx context.Context, client Service, databaseID string) ([]notionapi.Page, error) {
	var all []notionapi.Page
	var cursor notionapi.Cursor

	for {
		req := &notionapi.DatabaseQueryRequest{
			PageSize: 100,
		}
		if cursor != "" {
			req.StartCursor = cursor
		}

		resp, err := client.QueryDatabase(ctx, databaseID, req)
		if err != nil {
			return nil, fmt.Errorf("queryAllPages: %w", err)
		}
		all = append(all, resp.Results...)

		if !resp.HasMore {
			break
		}
		cursor = resp.NextCursor
	}
	return all, nil
}
