package postgres

import (
	"context"
	"fmt"

	"github.com/ddanilov/homeledger/internal/domain"
)

func (c *Client) FetchFundSources(ctx context.Context, ownerID string) ([]domain.FundSource, error) {
	query := `
		SELECT id, bank_name, account_name, account_type, balance, last_updated
		FROM fund_sources
		WHERE owner_id = $1
		ORDER BY created_at`
	rows, err := c.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("FetchFundSources: %w", err)
	}
	defer rows.Close()

	var list []domain.FundSource
	for rows.Next() {
		var f domain.FundSource
		if err := rows.Scan(&f.ID, &f.BankName, &f.AccountName, &f.AccountType, &f.Balance, &f.LastUpdated); err != nil {
			return nil, fmt.Errorf("FetchFundSources: scanning fund source: %w", err)
		}
		list = append(list, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("FetchFundSources: %w", err)
	}
	return list, nil
}

func (c *Client) InsertFundSource(ctx context.Context, ownerID string, f domain.FundSource) (domain.FundSource, error) {
	query := `
		INSERT INTO fund_sources (owner_id, bank_name, account_name, account_type, balance, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := c.db.QueryRowContext(ctx, query, ownerID, f.BankName, f.AccountName, f.AccountType, f.Balance, f.LastUpdated).Scan(&f.ID)
	if err != nil {
		return domain.FundSource{}, fmt.Errorf("InsertFundSource: %w", err)
	}
	return f, nil
}

func (c *Client) UpdateFundSource(ctx context.Context, ownerID, id string, f domain.FundSource) (domain.FundSource, error) {
	query := `
		UPDATE fund_sources
		SET bank_name = $3, account_name = $4, account_type = $5, balance = $6, last_updated = $7
		WHERE owner_id = $1 AND id = $2
		RETURNING id`
	err := c.db.QueryRowContext(ctx, query, ownerID, id, f.BankName, f.AccountName, f.AccountType, f.Balance, f.LastUpdated).Scan(&f.ID)
	if err != nil {
		return domain.FundSource{}, fmt.Errorf("UpdateFundSource: %w", err)
	}
	return f, nil
}

func (c *Client) DeleteFundSource(ctx context.Context, ownerID, id string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM fund_sources WHERE owner_id = $1 AND id = $2`, ownerID, id); err != nil {
		return fmt.Errorf("DeleteFundSource: %w", err)
	}
	return nil
}
