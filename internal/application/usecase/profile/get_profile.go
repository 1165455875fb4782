// Package profile contains financial profile use cases.
package profile

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/playbookTV/Kora/internal/application/adapter"
	"github.com/playbookTV/Kora/internal/domain/entity"
	domainerror "github.com/playbookTV/Kora/internal/domain/error"
)

// GetProfileInput represents the input for retrieving a financial profile.
type GetProfileInput struct {
	UserID uuid.UUID
}

// GetProfileOutput represents the output of retrieving a financial profile.
type GetProfileOutput struct {
	Profile *entity.UserFinancialProfile
}

// GetProfileUseCase handles financial profile retrieval.
type GetProfileUseCase struct {
	profileRepo adapter.ProfileRepository
}

// NewGetProfileUseCase creates a new GetProfileUseCase instance.
func NewGetProfileUseCase(profileRepo adapter.ProfileRepository) *GetProfileUseCase {
	return &GetProfileUseCase{
		profileRepo: profileRepo,
	}
}

// Execute retrieves the user's financial profile with its fixed expenses.
func (uc *GetProfileUseCase) Execute(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	profile, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewProfileError(
			domainerror.ErrCodeProfileNotFound,
			"financial profile not found",
			domainerror.ErrProfileNotFound,
		)
	}
	if profile == nil {
		return nil, fmt.Errorf("profile repository returned nil without error")
	}

	return &GetProfileOutput{Profile: profile}, nil
}
