// Package profile contains financial profile use cases.
package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/playbookTV/Kora/internal/application/adapter"
	"github.com/playbookTV/Kora/internal/domain/engine/calendar"
	"github.com/playbookTV/Kora/internal/domain/entity"
	domainerror "github.com/playbookTV/Kora/internal/domain/error"
)

// UpdateProfileInput represents the input for updating a financial profile.
// Nil fields are left unchanged.
type UpdateProfileInput struct {
	UserID         uuid.UUID
	Income         *decimal.Decimal
	Payday         *int
	CurrentBalance *decimal.Decimal
	SavingsGoal    *decimal.Decimal
}

// UpdateProfileOutput represents the output of updating a financial profile.
type UpdateProfileOutput struct {
	Profile *entity.UserFinancialProfile
}

// UpdateProfileUseCase handles partial updates to a financial profile.
type UpdateProfileUseCase struct {
	profileRepo adapter.ProfileRepository
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase instance.
func NewUpdateProfileUseCase(profileRepo adapter.ProfileRepository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		profileRepo: profileRepo,
	}
}

// Execute applies the provided fields to the user's financial profile.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	if input.Income != nil && !input.Income.GreaterThan(decimal.Zero) {
		return nil, domainerror.NewProfileError(
			domainerror.ErrCodeInvalidIncome,
			"income must be greater than zero",
			domainerror.ErrInvalidIncome,
		)
	}

	if input.Payday != nil {
		if err := calendar.ValidatePaydayDay(*input.Payday); err != nil {
			return nil, domainerror.NewProfileError(
				domainerror.ErrCodeInvalidPayday,
				"payday day must be between 1 and 31",
				err,
			)
		}
	}

	profile, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewProfileError(
			domainerror.ErrCodeProfileNotFound,
			"financial profile not found",
			domainerror.ErrProfileNotFound,
		)
	}

	if input.Income != nil {
		profile.Income = input.Income
	}
	if input.Payday != nil {
		profile.Payday = input.Payday
	}
	if input.CurrentBalance != nil {
		profile.CurrentBalance = *input.CurrentBalance
	}
	if input.SavingsGoal != nil {
		profile.SavingsGoal = input.SavingsGoal
	}
	profile.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return &UpdateProfileOutput{Profile: profile}, nil
}
