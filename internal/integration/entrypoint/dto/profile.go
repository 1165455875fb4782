// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/playbookTV/Kora/internal/domain/entity"
)

// UpdateProfileRequest represents the request body for a partial profile update.
// Absent fields keep their stored values.
type UpdateProfileRequest struct {
	Income         *float64 `json:"income,omitempty"`
	Payday         *int     `json:"payday,omitempty" binding:"omitempty,min=1,max=31"`
	CurrentBalance *float64 `json:"current_balance,omitempty"`
	SavingsGoal    *float64 `json:"savings_goal,omitempty"`
}

// FixedExpenseRequest represents the request body for creating or updating
// a fixed expense.
type FixedExpenseRequest struct {
	Name   string  `json:"name" binding:"required,min=1,max=100"`
	Amount float64 `json:"amount" binding:"required"`
	DueDay *int    `json:"due_day,omitempty" binding:"omitempty,min=1,max=31"`
}

// FixedExpenseResponse represents a fixed expense in API responses.
type FixedExpenseResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount string `json:"amount"`
	DueDay *int   `json:"due_day,omitempty"`
}

// ProfileResponse represents the financial profile in API responses.
type ProfileResponse struct {
	ID             string                 `json:"id"`
	UserID         string                 `json:"user_id"`
	Income         *string                `json:"income,omitempty"`
	Payday         *int                   `json:"payday,omitempty"`
	CurrentBalance string                 `json:"current_balance"`
	SavingsGoal    *string                `json:"savings_goal,omitempty"`
	FixedExpenses  []FixedExpenseResponse `json:"fixed_expenses"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// ToFixedExpenseResponse converts a domain FixedExpense to its DTO.
func ToFixedExpenseResponse(expense *entity.FixedExpense) FixedExpenseResponse {
	return FixedExpenseResponse{
		ID:     expense.ID.String(),
		Name:   expense.Name,
		Amount: expense.Amount.String(),
		DueDay: expense.DueDay,
	}
}

// ToProfileResponse converts a domain UserFinancialProfile to its DTO.
func ToProfileResponse(profile *entity.UserFinancialProfile) ProfileResponse {
	expenses := make([]FixedExpenseResponse, 0, len(profile.FixedExpenses))
	for i := range profile.FixedExpenses {
		expenses = append(expenses, ToFixedExpenseResponse(&profile.FixedExpenses[i]))
	}

	response := ProfileResponse{
		ID:             profile.ID.String(),
		UserID:         profile.UserID.String(),
		Payday:         profile.Payday,
		CurrentBalance: profile.CurrentBalance.String(),
		FixedExpenses:  expenses,
		UpdatedAt:      profile.UpdatedAt,
	}
	if profile.Income != nil {
		income := profile.Income.String()
		response.Income = &income
	}
	if profile.SavingsGoal != nil {
		goal := profile.SavingsGoal.String()
		response.SavingsGoal = &goal
	}
	return response
}
