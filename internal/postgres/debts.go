package postgres

import (
	"context"
	"fmt"

	"github.com/ddanilov/homeledger/internal/domain"
)

func (c *Client) FetchDebts(ctx context.Context, ownerID string) ([]domain.Debt, error) {
	query := `
		SELECT id, name, amount, interest_rate, minimum_payment, due_date
		FROM debts
		WHERE owner_id = $1
		ORDER BY created_at`
	rows, err := c.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("FetchDebts: %w", err)
	}
	defer rows.Close()

	var list []domain.Debt
	for rows.Next() {
		var d domain.Debt
		if err := rows.Scan(&d.ID, &d.Name, &d.Amount, &d.InterestRate, &d.MinimumPayment, &d.DueDate); err != nil {
			return nil, fmt.Errorf("FetchDebts: scanning debt: %w", err)
		}
		list = append(list, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("FetchDebts: %w", err)
	}
	return list, nil
}

func (c *Client) InsertDebt(ctx context.Context, ownerID string, d domain.Debt) (domain.Debt, error) {
	query := `
		INSERT INTO debts (owner_id, name, amount, interest_rate, minimum_payment, due_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := c.db.QueryRowContext(ctx, query, ownerID, d.Name, d.Amount, d.InterestRate, d.MinimumPayment, d.DueDate).Scan(&d.ID)
	if err != nil {
		return domain.Debt{}, fmt.Errorf("InsertDebt: %w", err)
	}
	return d, nil
}

func (c *Client) UpdateDebt(ctx context.Context, ownerID, id string, d domain.Debt) (domain.Debt, error) {
	query := `
		UPDATE debts
		SET name = $3, amount = $4, interest_rate = $5, minimum_payment = $6, due_date = $7
		WHERE owner_id = $1 AND id = $2
		RETURNING id`
	err := c.db.QueryRowContext(ctx, query, ownerID, id, d.Name, d.Amount, d.InterestRate, d.MinimumPayment, d.DueDate).Scan(&d.ID)
	if err != nil {
		return domain.Debt{}, fmt.Errorf("UpdateDebt: %w", err)
	}
	return d, nil
}

func (c *Client) DeleteDebt(ctx context.Context, ownerID, id string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM debts WHERE owner_id = $1 AND id = $2`, ownerID, id); err != nil {
		return fmt.Errorf("DeleteDebt: %w", err)
	}
	return nil
}
