package postgres

import (
	"context"
	"fmt"

	"github.com/ddanilov/homeledger/internal/domain"
)

func (c *Client) FetchCreditCards(ctx context.Context, ownerID string) ([]domain.CreditCard, error) {
	query := `
		SELECT id, name, bank, credit_limit, cut_off_date, balance
		FROM credit_cards
		WHERE owner_id = $1
		ORDER BY created_at`
	rows, err := c.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("FetchCreditCards: %w", err)
	}
	defer rows.Close()

	var list []domain.CreditCard
	for rows.Next() {
		var card domain.CreditCard
		if err := rows.Scan(&card.ID, &card.Name, &card.Bank, &card.Limit, &card.CutOffDate, &card.Balance); err != nil {
			return nil, fmt.Errorf("FetchCreditCards: scanning card: %w", err)
		}
		list = append(list, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("FetchCreditCards: %w", err)
	}
	return list, nil
}

func (c *Client) InsertCreditCard(ctx context.Context, ownerID string, card domain.CreditCard) (domain.CreditCard, error) {
	query := `
		INSERT INTO credit_cards (owner_id, name, bank, credit_limit, cut_off_date, balance)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := c.db.QueryRowContext(ctx, query, ownerID, card.Name, card.Bank, card.Limit, card.CutOffDate, card.Balance).Scan(&card.ID)
	if err != nil {
		return domain.CreditCard{}, fmt.Errorf("InsertCreditCard: %w", err)
	}
	return card, nil
}

func (c *Client) UpdateCreditCard(ctx context.Context, ownerID, id string, card domain.CreditCard) (domain.CreditCard, error) {
	query := `
		UPDATE credit_cards
		SET name = $3, bank = $4, credit_limit = $5, cut_off_date = $6, balance = $7
		WHERE owner_id = $1 AND id = $2
		RETURNING id`
	err := c.db.QueryRowContext(ctx, query, ownerID, id, card.Name, card.Bank, card.Limit, card.CutOffDate, card.Balance).Scan(&card.ID)
	if err != nil {
		return domain.CreditCard{}, fmt.Errorf("UpdateCreditCard: %w", err)
	}
	return card, nil
}

func (c *Client) DeleteCreditCard(ctx context.Context, ownerID, id string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM credit_cards WHERE owner_id = $1 AND id = $2`, ownerID, id); err != nil {
		return fmt.Errorf("DeleteCreditCard: %w", err)
	}
	return nil
}
