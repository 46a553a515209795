package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ddanilov/homeledger/internal/domain"
)

func (c *Client) FetchLoans(ctx context.Context, ownerID string) ([]domain.Loan, error) {
	query := `
		SELECT id, name, lender, type, original_amount, current_balance,
		       interest_rate, monthly_payment, start_date, end_date, status,
		       next_payment_date, fund_source_id
		FROM loans
		WHERE owner_id = $1
		ORDER BY created_at`
	rows, err := c.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("FetchLoans: %w", err)
	}
	defer rows.Close()

	var list []domain.Loan
	for rows.Next() {
		var (
			l        domain.Loan
			sourceID sql.NullString
		)
		err := rows.Scan(&l.ID, &l.Name, &l.Lender, &l.Type, &l.OriginalAmount, &l.CurrentBalance,
			&l.InterestRate, &l.MonthlyPayment, &l.StartDate, &l.EndDate, &l.Status,
			&l.NextPaymentDate, &sourceID)
		if err != nil {
			return nil, fmt.Errorf("FetchLoans: scanning loan: %w", err)
		}
		l.FundSourceID = sourceID.String
		list = append(list, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("FetchLoans: %w", err)
	}
	return list, nil
}

func (c *Client) InsertLoan(ctx context.Context, ownerID string, l domain.Loan) (domain.Loan, error) {
	query := `
		INSERT INTO loans
			(owner_id, name, lender, type, original_amount, current_balance,
			 interest_rate, monthly_payment, start_date, end_date, status,
			 next_payment_date, fund_source_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := c.db.QueryRowContext(ctx, query,
		ownerID, l.Name, l.Lender, l.Type, l.OriginalAmount, l.CurrentBalance,
		l.InterestRate, l.MonthlyPayment, l.StartDate, l.EndDate, l.Status,
		l.NextPaymentDate, nullable(l.FundSourceID),
	).Scan(&l.ID)
	if err != nil {
		return domain.Loan{}, fmt.Errorf("InsertLoan: %w", err)
	}
	return l, nil
}

func (c *Client) UpdateLoan(ctx context.Context, ownerID, id string, l domain.Loan) (domain.Loan, error) {
	query := `
		UPDATE loans
		SET name = $3, lender = $4, type = $5, original_amount = $6,
		    current_balance = $7, interest_rate = $8, monthly_payment = $9,
		    start_date = $10, end_date = $11, status = $12,
		    next_payment_date = $13, fund_source_id = $14
		WHERE owner_id = $1 AND id = $2
		RETURNING id`
	err := c.db.QueryRowContext(ctx, query,
		ownerID, id, l.Name, l.Lender, l.Type, l.OriginalAmount, l.CurrentBalance,
		l.InterestRate, l.MonthlyPayment, l.StartDate, l.EndDate, l.Status,
		l.NextPaymentDate, nullable(l.FundSourceID),
	).Scan(&l.ID)
	if err != nil {
		return domain.Loan{}, fmt.Errorf("UpdateLoan: %w", err)
	}
	return l, nil
}

func (c *Client) DeleteLoan(ctx context.Context, ownerID, id string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM loans WHERE owner_id = $1 AND id = $2`, ownerID, id); err != nil {
		return fmt.Errorf("DeleteLoan: %w", err)
	}
	return nil
}
