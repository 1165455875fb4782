// Package insight contains read-model use cases built on the financial engine.
package insight

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/playbookTV/Kora/internal/application/adapter"
	"github.com/playbookTV/Kora/internal/domain/engine/safespend"
	domainerror "github.com/playbookTV/Kora/internal/domain/error"
)

// GetFinancialStateInput represents the input for computing the financial state.
// Now defaults to the current time when zero; tests pin it for determinism.
type GetFinancialStateInput struct {
	UserID uuid.UUID
	Now    time.Time
}

// GetFinancialStateOutput represents the computed financial state snapshot.
type GetFinancialStateOutput struct {
	State     safespend.State
	RiskScore int
	Streak    int
}

// GetFinancialStateUseCase derives the full financial state from the profile
// and this month's spending. Every number in the snapshot comes from one
// timestamp, so the answer is internally consistent.
type GetFinancialStateUseCase struct {
	profileRepo     adapter.ProfileRepository
	transactionRepo adapter.TransactionRepository
	patternRepo     adapter.PatternRepository
}

// NewGetFinancialStateUseCase creates a new GetFinancialStateUseCase instance.
func NewGetFinancialStateUseCase(
	profileRepo adapter.ProfileRepository,
	transactionRepo adapter.TransactionRepository,
	patternRepo adapter.PatternRepository,
) *GetFinancialStateUseCase {
	return &GetFinancialStateUseCase{
		profileRepo:     profileRepo,
		transactionRepo: transactionRepo,
		patternRepo:     patternRepo,
	}
}

// Execute computes the financial state for the user at the given moment.
func (uc *GetFinancialStateUseCase) Execute(ctx context.Context, input GetFinancialStateInput) (*GetFinancialStateOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	profile, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewProfileError(
			domainerror.ErrCodeProfileNotFound,
			"financial profile not found",
			domainerror.ErrProfileNotFound,
		)
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	spent, err := uc.transactionRepo.SumByUserAndDateRange(ctx, input.UserID, monthStart, now)
	if err != nil {
		return nil, fmt.Errorf("failed to sum month spending: %w", err)
	}

	state, err := safespend.Compute(*profile, spent, now)
	if err != nil {
		return nil, err
	}

	pattern, err := uc.patternRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load spending pattern: %w", err)
	}

	return &GetFinancialStateOutput{
		State:     state,
		RiskScore: pattern.RiskScore,
		Streak:    pattern.CurrentStreak,
	}, nil
}
