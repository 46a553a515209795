package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ddanilov/homeledger/internal/domain"
)

// FetchTransactions returns every transaction owned by ownerID, most recent
// first.
func (c *Client) FetchTransactions(ctx context.Context, ownerID string) ([]domain.Transaction, error) {
	query := `
		SELECT id, date, amount, kind, category, details, counterparty,
		       credit_card_id, fund_source_id, loan_id
		FROM transactions
		WHERE owner_id = $1
		ORDER BY date DESC`
	rows, err := c.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("FetchTransactions: %w", err)
	}
	defer rows.Close()

	var list []domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("FetchTransactions: %w", err)
		}
		list = append(list, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("FetchTransactions: %w", err)
	}
	return list, nil
}

// InsertTransaction persists tx for ownerID and returns the row with its
// backend-assigned id.
func (c *Client) InsertTransaction(ctx context.Context, ownerID string, tx domain.Transaction) (domain.Transaction, error) {
	query := `
		INSERT INTO transactions
			(owner_id, date, amount, kind, category, details, counterparty,
			 credit_card_id, fund_source_id, loan_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := c.db.QueryRowContext(ctx, query,
		ownerID, tx.Date, tx.Amount, tx.Kind, tx.Category, tx.Details, tx.From,
		nullable(tx.CreditCardID), nullable(tx.FundSourceID), nullable(tx.LoanID),
	).Scan(&tx.ID)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("InsertTransaction: %w", err)
	}
	return tx, nil
}

// UpdateTransaction replaces the stored row matching id with tx and returns
// the persisted row.
func (c *Client) UpdateTransaction(ctx context.Context, ownerID, id string, tx domain.Transaction) (domain.Transaction, error) {
	query := `
		UPDATE transactions
		SET date = $3, amount = $4, kind = $5, category = $6, details = $7,
		    counterparty = $8, credit_card_id = $9, fund_source_id = $10, loan_id = $11
		WHERE owner_id = $1 AND id = $2
		RETURNING id`
	err := c.db.QueryRowContext(ctx, query,
		ownerID, id, tx.Date, tx.Amount, tx.Kind, tx.Category, tx.Details, tx.From,
		nullable(tx.CreditCardID), nullable(tx.FundSourceID), nullable(tx.LoanID),
	).Scan(&tx.ID)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("UpdateTransaction: %w", err)
	}
	return tx, nil
}

// DeleteTransaction removes the row matching id. Deleting an absent row is
// not an error.
func (c *Client) DeleteTransaction(ctx context.Context, ownerID, id string) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM transactions WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("DeleteTransaction: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(r rowScanner) (domain.Transaction, error) {
	var (
		tx                       domain.Transaction
		cardID, sourceID, loanID sql.NullString
	)
	err := r.Scan(&tx.ID, &tx.Date, &tx.Amount, &tx.Kind, &tx.Category,
		&tx.Details, &tx.From, &cardID, &sourceID, &loanID)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("scanning transaction: %w", err)
	}
	tx.CreditCardID = cardID.String
	tx.FundSourceID = sourceID.String
	tx.LoanID = loanID.String
	return tx, nil
}
