package pattern

import (
	"context"

	"github.com/google/uuid"

	"github.com/playbookTV/Kora/internal/application/adapter"
	"github.com/playbookTV/Kora/internal/domain/entity"
)

// GetPatternInput identifies whose pattern to fetch.
type GetPatternInput struct {
	UserID uuid.UUID
}

// GetPatternOutput carries the stored spending pattern.
type GetPatternOutput struct {
	Pattern *entity.SpendingPattern
}

// GetPatternUseCase returns the stored behavioral pattern for a user. Users
// without enough history get the neutral default.
type GetPatternUseCase struct {
	patternRepo adapter.PatternRepository
}

// NewGetPatternUseCase creates a new GetPatternUseCase instance.
func NewGetPatternUseCase(patternRepo adapter.PatternRepository) *GetPatternUseCase {
	return &GetPatternUseCase{
		patternRepo: patternRepo,
	}
}

// Execute fetches the pattern.
func (uc *GetPatternUseCase) Execute(ctx context.Context, input GetPatternInput) (*GetPatternOutput, error) {
	pattern, err := uc.patternRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetPatternOutput{Pattern: pattern}, nil
}
