// Package profile contains financial profile use cases.
package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/playbookTV/Kora/internal/application/adapter"
	"github.com/playbookTV/Kora/internal/domain/entity"
	domainerror "github.com/playbookTV/Kora/internal/domain/error"
)

// UpdateFixedExpenseInput represents the input for updating a fixed expense.
type UpdateFixedExpenseInput struct {
	UserID    uuid.UUID
	ExpenseID uuid.UUID
	Name      string
	Amount    decimal.Decimal
	DueDay    *int
}

// UpdateFixedExpenseOutput represents the output of updating a fixed expense.
type UpdateFixedExpenseOutput struct {
	Expense *entity.FixedExpense
}

// UpdateFixedExpenseUseCase handles updating fixed expenses.
type UpdateFixedExpenseUseCase struct {
	profileRepo adapter.ProfileRepository
}

// NewUpdateFixedExpenseUseCase creates a new UpdateFixedExpenseUseCase instance.
func NewUpdateFixedExpenseUseCase(profileRepo adapter.ProfileRepository) *UpdateFixedExpenseUseCase {
	return &UpdateFixedExpenseUseCase{
		profileRepo: profileRepo,
	}
}

// Execute validates and updates an existing fixed expense. Ownership is
// verified through the user's profile before any change is applied.
func (uc *UpdateFixedExpenseUseCase) Execute(ctx context.Context, input UpdateFixedExpenseInput) (*UpdateFixedExpenseOutput, error) {
	if err := validateFixedExpense(input.Name, input.Amount, input.DueDay); err != nil {
		return nil, err
	}

	expense, err := uc.findOwnedExpense(ctx, input.UserID, input.ExpenseID)
	if err != nil {
		return nil, err
	}

	expense.Name = strings.TrimSpace(input.Name)
	expense.Amount = input.Amount
	expense.DueDay = input.DueDay
	expense.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.UpdateFixedExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update fixed expense: %w", err)
	}

	return &UpdateFixedExpenseOutput{Expense: expense}, nil
}

func (uc *UpdateFixedExpenseUseCase) findOwnedExpense(ctx context.Context, userID, expenseID uuid.UUID) (*entity.FixedExpense, error) {
	profile, err := uc.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, domainerror.NewProfileError(
			domainerror.ErrCodeProfileNotFound,
			"financial profile not found",
			domainerror.ErrProfileNotFound,
		)
	}

	expense, err := uc.profileRepo.FindFixedExpenseByID(ctx, expenseID)
	if err != nil || expense.ProfileID != profile.ID {
		return nil, domainerror.NewProfileError(
			domainerror.ErrCodeFixedExpenseNotFound,
			"fixed expense not found",
			domainerror.ErrFixedExpenseNotFound,
		)
	}
	return expense, nil
}
