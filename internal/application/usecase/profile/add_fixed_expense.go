// Package profile contains financial profile use cases.
package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/playbookTV/Kora/internal/application/adapter"
	"github.com/playbookTV/Kora/internal/domain/entity"
	domainerror "github.com/playbookTV/Kora/internal/domain/error"
)

// AddFixedExpenseInput represents the input for adding a fixed expense.
type AddFixedExpenseInput struct {
	UserID uuid.UUID
	Name   string
	Amount decimal.Decimal
	DueDay *int
}

// AddFixedExpenseOutput represents the output of adding a fixed expense.
type AddFixedExpenseOutput struct {
	Expense *entity.FixedExpense
}

// AddFixedExpenseUseCase handles adding fixed expenses to a profile.
type AddFixedExpenseUseCase struct {
	profileRepo adapter.ProfileRepository
}

// NewAddFixedExpenseUseCase creates a new AddFixedExpenseUseCase instance.
func NewAddFixedExpenseUseCase(profileRepo adapter.ProfileRepository) *AddFixedExpenseUseCase {
	return &AddFixedExpenseUseCase{
		profileRepo: profileRepo,
	}
}

// Execute validates and adds a fixed expense to the user's profile.
func (uc *AddFixedExpenseUseCase) Execute(ctx context.Context, input AddFixedExpenseInput) (*AddFixedExpenseOutput, error) {
	if err := validateFixedExpense(input.Name, input.Amount, input.DueDay); err != nil {
		return nil, err
	}

	profile, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewProfileError(
			domainerror.ErrCodeProfileNotFound,
			"financial profile not found",
			domainerror.ErrProfileNotFound,
		)
	}

	expense := entity.NewFixedExpense(profile.ID, strings.TrimSpace(input.Name), input.Amount, input.DueDay)
	if err := uc.profileRepo.AddFixedExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to add fixed expense: %w", err)
	}

	return &AddFixedExpenseOutput{Expense: expense}, nil
}

// validateFixedExpense checks the common fixed expense invariants.
func validateFixedExpense(name string, amount decimal.Decimal, dueDay *int) error {
	if strings.TrimSpace(name) == "" {
		return domainerror.NewProfileError(
			domainerror.ErrCodeEmptyExpenseName,
			"expense name cannot be empty",
			domainerror.ErrEmptyExpenseName,
		)
	}
	if !amount.GreaterThan(decimal.Zero) {
		return domainerror.NewProfileError(
			domainerror.ErrCodeInvalidExpenseAmount,
			"expense amount must be greater than zero",
			domainerror.ErrInvalidExpenseAmount,
		)
	}
	if dueDay != nil && (*dueDay < 1 || *dueDay > 31) {
		return domainerror.NewProfileError(
			domainerror.ErrCodeInvalidDueDay,
			"due day must be between 1 and 31",
			domainerror.ErrInvalidDueDay,
		)
	}
	return nil
}
