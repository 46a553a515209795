package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ddanilov/homeledger/internal/domain"
)

func (c *Client) FetchRecurringRules(ctx context.Context, ownerID string) ([]domain.RecurringRule, error) {
	query := `
		SELECT id, amount, kind, category, details, counterparty,
		       frequency, start_date, last_processed
		FROM recurring_rules
		WHERE owner_id = $1
		ORDER BY created_at`
	rows, err := c.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("FetchRecurringRules: %w", err)
	}
	defer rows.Close()

	var list []domain.RecurringRule
	for rows.Next() {
		var (
			r    domain.RecurringRule
			last sql.NullTime
		)
		err := rows.Scan(&r.ID, &r.Amount, &r.Kind, &r.Category, &r.Details,
			&r.From, &r.Frequency, &r.StartDate, &last)
		if err != nil {
			return nil, fmt.Errorf("FetchRecurringRules: scanning rule: %w", err)
		}
		if last.Valid {
			t := last.Time
			r.LastProcessed = &t
		}
		list = append(list, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("FetchRecurringRules: %w", err)
	}
	return list, nil
}

func (c *Client) InsertRecurringRule(ctx context.Context, ownerID string, r domain.RecurringRule) (domain.RecurringRule, error) {
	query := `
		INSERT INTO recurring_rules
			(owner_id, amount, kind, category, details, counterparty, frequency, start_date, last_processed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := c.db.QueryRowContext(ctx, query,
		ownerID, r.Amount, r.Kind, r.Category, r.Details, r.From,
		r.Frequency, r.StartDate, lastProcessedValue(r.LastProcessed),
	).Scan(&r.ID)
	if err != nil {
		return domain.RecurringRule{}, fmt.Errorf("InsertRecurringRule: %w", err)
	}
	return r, nil
}

func (c *Client) UpdateRecurringRule(ctx context.Context, ownerID, id string, r domain.RecurringRule) (domain.RecurringRule, error) {
	query := `
		UPDATE recurring_rules
		SET amount = $3, kind = $4, category = $5, details = $6, counterparty = $7,
		    frequency = $8, start_date = $9, last_processed = $10
		WHERE owner_id = $1 AND id = $2
		RETURNING id`
	err := c.db.QueryRowContext(ctx, query,
		ownerID, id, r.Amount, r.Kind, r.Category, r.Details, r.From,
		r.Frequency, r.StartDate, lastProcessedValue(r.LastProcessed),
	).Scan(&r.ID)
	if err != nil {
		return domain.RecurringRule{}, fmt.Errorf("UpdateRecurringRule: %w", err)
	}
	return r, nil
}

func (c *Client) DeleteRecurringRule(ctx context.Context, ownerID, id string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM recurring_rules WHERE owner_id = $1 AND id = $2`, ownerID, id); err != nil {
		return fmt.Errorf("DeleteRecurringRule: %w", err)
	}
	return nil
}

func lastProcessedValue(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
