// Package profile contains financial profile use cases.
package profile

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/playbookTV/Kora/internal/application/adapter"
	domainerror "github.com/playbookTV/Kora/internal/domain/error"
)

// DeleteFixedExpenseInput represents the input for deleting a fixed expense.
type DeleteFixedExpenseInput struct {
	UserID    uuid.UUID
	ExpenseID uuid.UUID
}

// DeleteFixedExpenseOutput represents the output of deleting a fixed expense.
type DeleteFixedExpenseOutput struct {
	Message string
}

// DeleteFixedExpenseUseCase handles removing fixed expenses.
type DeleteFixedExpenseUseCase struct {
	profileRepo adapter.ProfileRepository
}

// NewDeleteFixedExpenseUseCase creates a new DeleteFixedExpenseUseCase instance.
func NewDeleteFixedExpenseUseCase(profileRepo adapter.ProfileRepository) *DeleteFixedExpenseUseCase {
	return &DeleteFixedExpenseUseCase{
		profileRepo: profileRepo,
	}
}

// Execute removes a fixed expense after verifying ownership.
func (uc *DeleteFixedExpenseUseCase) Execute(ctx context.Context, input DeleteFixedExpenseInput) (*DeleteFixedExpenseOutput, error) {
	profile, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewProfileError(
			domainerror.ErrCodeProfileNotFound,
			"financial profile not found",
			domainerror.ErrProfileNotFound,
		)
	}

	expense, err := uc.profileRepo.FindFixedExpenseByID(ctx, input.ExpenseID)
	if err != nil || expense.ProfileID != profile.ID {
		return nil, domainerror.NewProfileError(
			domainerror.ErrCodeFixedExpenseNotFound,
			"fixed expense not found",
			domainerror.ErrFixedExpenseNotFound,
		)
	}

	if err := uc.profileRepo.DeleteFixedExpense(ctx, expense.ID); err != nil {
		return nil, fmt.Errorf("failed to delete fixed expense: %w", err)
	}

	return &DeleteFixedExpenseOutput{Message: "Fixed expense deleted"}, nil
}
