package domain

import (
	"time"
)

// UserProfile is the owner's profile and preferences. The store holds at most
// one of these per session.
type UserProfile struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	PhotoURL             string    `json:"photo_url,omitempty"`
	Country              string    `json:"country"`
	Currency             string    `json:"currency"`
	Theme                string    `json:"theme"`
	MonthlyBudgetLimit   float64   `json:"monthly_budget_limit,omitempty"`
	MonthlyIncomeTarget  float64   `json:"monthly_income_target,omitempty"`
	SavingsGoal          float64   `json:"savings_goal,omitempty"`
	NotificationsEnabled bool      `json:"notifications_enabled"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
