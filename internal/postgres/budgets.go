package postgres

import (
	"context"
	"fmt"

	"github.com/ddanilov/homeledger/internal/domain"
)

func (c *Client) FetchBudgets(ctx context.Context, ownerID string) ([]domain.Budget, error) {
	query := `
		SELECT id, category, amount, period, spent
		FROM budgets
		WHERE owner_id = $1
		ORDER BY created_at`
	rows, err := c.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("FetchBudgets: %w", err)
	}
	defer rows.Close()

	var list []domain.Budget
	for rows.Next() {
		var b domain.Budget
		if err := rows.Scan(&b.ID, &b.Category, &b.Amount, &b.Period, &b.Spent); err != nil {
			return nil, fmt.Errorf("FetchBudgets: scanning budget: %w", err)
		}
		list = append(list, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("FetchBudgets: %w", err)
	}
	return list, nil
}

func (c *Client) InsertBudget(ctx context.Context, ownerID string, b domain.Budget) (domain.Budget, error) {
	query := `
		INSERT INTO budgets (owner_id, category, amount, period, spent)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := c.db.QueryRowContext(ctx, query, ownerID, b.Category, b.Amount, b.Period, b.Spent).Scan(&b.ID)
	if err != nil {
		return domain.Budget{}, fmt.Errorf("InsertBudget: %w", err)
	}
	return b, nil
}

func (c *Client) UpdateBudget(ctx context.Context, ownerID, id string, b domain.Budget) (domain.Budget, error) {
	query := `
		UPDATE budgets
		SET category = $3, amount = $4, period = $5, spent = $6
		WHERE owner_id = $1 AND id = $2
		RETURNING id`
	err := c.db.QueryRowContext(ctx, query, ownerID, id, b.Category, b.Amount, b.Period, b.Spent).Scan(&b.ID)
	if err != nil {
		return domain.Budget{}, fmt.Errorf("UpdateBudget: %w", err)
	}
	return b, nil
}

func (c *Client) DeleteBudget(ctx context.Context, ownerID, id string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM budgets WHERE owner_id = $1 AND id = $2`, ownerID, id); err != nil {
		return fmt.Errorf("DeleteBudget: %w", err)
	}
	return nil
}
