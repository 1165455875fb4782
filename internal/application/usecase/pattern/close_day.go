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
	domainerror "github.com/playbookTV/Kora/internal/domain/error"
)

// CloseDayInput represents the input for closing out a calendar day.
// Day is interpreted as the UTC calendar day to settle.
type CloseDayInput struct {
	UserID uuid.UUID
	Day    time.Time
}

// CloseDayOutput represents the result of settling the day's streak.
type CloseDayOutput struct {
	Streak    int
	StayedIn  bool
	DaySpend  string
	SafeSpend string
}

// CloseDayUseCase settles the under-budget streak for a finished day.
// The safe spend baseline is reconstructed at the start of the day: the
// current balance plus everything spent during it.
type CloseDayUseCase struct {
	profileRepo     adapter.ProfileRepository
	transactionRepo adapter.TransactionRepository
	patternRepo     adapter.PatternRepository
}

// NewCloseDayUseCase creates a new CloseDayUseCase instance.
func NewCloseDayUseCase(
	profileRepo adapter.ProfileRepository,
	transactionRepo adapter.TransactionRepository,
	patternRepo adapter.PatternRepository,
) *CloseDayUseCase {
	return &CloseDayUseCase{
		profileRepo:     profileRepo,
		transactionRepo: transactionRepo,
		patternRepo:     patternRepo,
	}
}

// Execute advances or resets the user's streak based on whether the day's
// spending stayed within its safe spend allowance.
func (uc *CloseDayUseCase) Execute(ctx context.Context, input CloseDayInput) (*CloseDayOutput, error) {
	dayStart := time.Date(input.Day.Year(), input.Day.Month(), input.Day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	profile, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewProfileError(
			domainerror.ErrCodeProfileNotFound,
			"financial profile not found",
			domainerror.ErrProfileNotFound,
		)
	}
	if profile.Payday == nil {
		return nil, domainerror.NewEngineError(
			domainerror.ErrCodePaydayNotSet,
			"payday is not configured",
			domainerror.ErrPaydayNotSet,
		)
	}

	daySpend, err := uc.transactionRepo.SumByUserAndDateRange(ctx, input.UserID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to sum day spending: %w", err)
	}

	// Balance as it stood at the start of the day.
	startBalance := profile.CurrentBalance.Add(daySpend)

	safeSpend, err := safespend.SafeSpendToday(startBalance, profile.FixedExpenses, dayStart, *profile.Payday)
	if err != nil {
		return nil, err
	}

	pattern, err := uc.patternRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load spending pattern: %w", err)
	}

	pattern.CurrentStreak = enginepattern.AdvanceStreak(pattern.CurrentStreak, daySpend, safeSpend)
	if err := uc.patternRepo.Save(ctx, pattern); err != nil {
		return nil, fmt.Errorf("failed to save spending pattern: %w", err)
	}

	return &CloseDayOutput{
		Streak:    pattern.CurrentStreak,
		StayedIn:  pattern.CurrentStreak > 0,
		DaySpend:  daySpend.String(),
		SafeSpend: safeSpend.String(),
	}, nil
}
