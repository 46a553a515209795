package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ddanilov/homeledger/internal/domain"
)

// FetchUserProfile returns the owner's profile, or nil when none exists yet.
func (c *Client) FetchUserProfile(ctx context.Context, ownerID string) (*domain.UserProfile, error) {
	query := `
		SELECT id, name, email, photo_url, country, currency, theme,
		       monthly_budget_limit, monthly_income_target, savings_goal,
		       notifications_enabled, created_at, updated_at
		FROM user_profiles
		WHERE owner_id = $1`
	var (
		p        domain.UserProfile
		photoURL sql.NullString
	)
	err := c.db.QueryRowContext(ctx, query, ownerID).Scan(
		&p.ID, &p.Name, &p.Email, &photoURL, &p.Country, &p.Currency, &p.Theme,
		&p.MonthlyBudgetLimit, &p.MonthlyIncomeTarget, &p.SavingsGoal,
		&p.NotificationsEnabled, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FetchUserProfile: %w", err)
	}
	p.PhotoURL = photoURL.String
	return &p, nil
}

// SaveUserProfile inserts or replaces the owner's profile and returns the
// persisted row.
func (c *Client) SaveUserProfile(ctx context.Context, ownerID string, p domain.UserProfile) (domain.UserProfile, error) {
	query := `
		INSERT INTO user_profiles
			(owner_id, name, email, photo_url, country, currency, theme,
			 monthly_budget_limit, monthly_income_target, savings_goal,
			 notifications_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
		ON CONFLICT (owner_id) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email, photo_url = EXCLUDED.photo_url,
		    country = EXCLUDED.country, currency = EXCLUDED.currency, theme = EXCLUDED.theme,
		    monthly_budget_limit = EXCLUDED.monthly_budget_limit,
		    monthly_income_target = EXCLUDED.monthly_income_target,
		    savings_goal = EXCLUDED.savings_goal,
		    notifications_enabled = EXCLUDED.notifications_enabled,
		    updated_at = now()
		RETURNING id, created_at, updated_at`
	err := c.db.QueryRowContext(ctx, query,
		ownerID, p.Name, p.Email, nullable(p.PhotoURL), p.Country, p.Currency, p.Theme,
		p.MonthlyBudgetLimit, p.MonthlyIncomeTarget, p.SavingsGoal, p.NotificationsEnabled,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("SaveUserProfile: %w", err)
	}
	return p, nil
}
