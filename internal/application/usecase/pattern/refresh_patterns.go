// Package pattern contains spending pattern analysis use cases.
package pattern

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/playbookTV/Kora/internal/application/adapter"
	enginepattern "github.com/playbookTV/Kora/internal/domain/engine/pattern"
	"github.com/playbookTV/Kora/internal/domain/engine/safespend"
	"github.com/playbookTV/Kora/internal/domain/entity"
	domainerror "github.com/playbookTV/Kora/internal/domain/error"
)

// analysisWindowDays is how far back the analyzer looks for transactions.
const analysisWindowDays = 90

// RefreshPatternsInput represents the input for refreshing a user's spending pattern.
type RefreshPatternsInput struct {
	UserID uuid.UUID
	Now    time.Time
}

// RefreshPatternsOutput represents the refreshed spending pattern.
type RefreshPatternsOutput struct {
	Pattern *entity.SpendingPattern
}

// RefreshPatternsUseCase recomputes the behavioral pattern and risk score
// from recent transaction history and persists the result.
type RefreshPatternsUseCase struct {
	profileRepo     adapter.ProfileRepository
	transactionRepo adapter.TransactionRepository
	patternRepo     adapter.PatternRepository
}

// NewRefreshPatternsUseCase creates a new RefreshPatternsUseCase instance.
func NewRefreshPatternsUseCase(
	profileRepo adapter.ProfileRepository,
	transactionRepo adapter.TransactionRepository,
	patternRepo adapter.PatternRepository,
) *RefreshPatternsUseCase {
	return &RefreshPatternsUseCase{
		profileRepo:     profileRepo,
		transactionRepo: transactionRepo,
		patternRepo:     patternRepo,
	}
}

// Execute reanalyzes the user's recent spending and saves the updated
// pattern. The risk score is recomputed only when the profile has a payday
// configured; otherwise the analyzer's carry-over score stands.
func (uc *RefreshPatternsUseCase) Execute(ctx context.Context, input RefreshPatternsInput) (*RefreshPatternsOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	prev, err := uc.patternRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load spending pattern: %w", err)
	}

	windowStart := now.AddDate(0, 0, -analysisWindowDays)
	history, err := uc.transactionRepo.FindByUserAndDateRange(ctx, input.UserID, windowStart, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction history: %w", err)
	}

	txns := make([]entity.Transaction, 0, len(history))
	for _, t := range history {
		txns = append(txns, *t)
	}

	updated := enginepattern.Analyze(*prev, txns, now)

	profile, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewProfileError(
			domainerror.ErrCodeProfileNotFound,
			"financial profile not found",
			domainerror.ErrProfileNotFound,
		)
	}

	if profile.Payday != nil {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		spent, err := uc.transactionRepo.SumByUserAndDateRange(ctx, input.UserID, monthStart, now)
		if err != nil {
			return nil, fmt.Errorf("failed to sum month spending: %w", err)
		}

		state, err := safespend.Compute(*profile, spent, now)
		if err != nil {
			return nil, err
		}

		updated.RiskScore = enginepattern.RiskScore(updated, enginepattern.RiskInputs{
			DaysToPayday:   state.DaysToPayday,
			SafeSpendToday: state.SafeSpendToday,
			Balance:        state.Balance,
			SpentThisMonth: state.SpentThisMonth,
			Streak:         updated.CurrentStreak,
		}, now)
	}

	updated.AnalyzedAt = now
	if err := uc.patternRepo.Save(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to save spending pattern: %w", err)
	}

	return &RefreshPatternsOutput{Pattern: &updated}, nil
}
