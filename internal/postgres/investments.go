package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ddanilov/homeledger/internal/domain"
)

func (c *Client) FetchInvestments(ctx context.Context, ownerID string) ([]domain.Investment, error) {
	query := `
		SELECT id, name, type, purchase_date, purchase_price, current_value,
		       quantity, status, fund_source_id, notes, last_updated
		FROM investments
		WHERE owner_id = $1
		ORDER BY created_at`
	rows, err := c.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("FetchInvestments: %w", err)
	}
	defer rows.Close()

	var list []domain.Investment
	for rows.Next() {
		var (
			inv             domain.Investment
			sourceID, notes sql.NullString
		)
		err := rows.Scan(&inv.ID, &inv.Name, &inv.Type, &inv.PurchaseDate, &inv.PurchasePrice,
			&inv.CurrentValue, &inv.Quantity, &inv.Status, &sourceID, &notes, &inv.LastUpdated)
		if err != nil {
			return nil, fmt.Errorf("FetchInvestments: scanning investment: %w", err)
		}
		inv.FundSourceID = sourceID.String
		inv.Notes = notes.String
		list = append(list, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("FetchInvestments: %w", err)
	}
	return list, nil
}

func (c *Client) InsertInvestment(ctx context.Context, ownerID string, inv domain.Investment) (domain.Investment, error) {
	query := `
		INSERT INTO investments
			(owner_id, name, type, purchase_date, purchase_price, current_value,
			 quantity, status, fund_source_id, notes, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := c.db.QueryRowContext(ctx, query,
		ownerID, inv.Name, inv.Type, inv.PurchaseDate, inv.PurchasePrice, inv.CurrentValue,
		inv.Quantity, inv.Status, nullable(inv.FundSourceID), nullable(inv.Notes), inv.LastUpdated,
	).Scan(&inv.ID)
	if err != nil {
		return domain.Investment{}, fmt.Errorf("InsertInvestment: %w", err)
	}
	return inv, nil
}

func (c *Client) UpdateInvestment(ctx context.Context, ownerID, id string, inv domain.Investment) (domain.Investment, error) {
	query := `
		UPDATE investments
		SET name = $3, type = $4, purchase_date = $5, purchase_price = $6,
		    current_value = $7, quantity = $8, status = $9, fund_source_id = $10,
		    notes = $11, last_updated = $12
		WHERE owner_id = $1 AND id = $2
		RETURNING id`
	err := c.db.QueryRowContext(ctx, query,
		ownerID, id, inv.Name, inv.Type, inv.PurchaseDate, inv.PurchasePrice, inv.CurrentValue,
		inv.Quantity, inv.Status, nullable(inv.FundSourceID), nullable(inv.Notes), inv.LastUpdated,
	).Scan(&inv.ID)
	if err != nil {
		return domain.Investment{}, fmt.Errorf("UpdateInvestment: %w", err)
	}
	return inv, nil
}

func (c *Client) DeleteInvestment(ctx context.Context, ownerID, id string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM investments WHERE owner_id = $1 AND id = $2`, ownerID, id); err != nil {
		return fmt.Errorf("DeleteInvestment: %w", err)
	}
	return nil
}
