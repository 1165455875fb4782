// Package advisor contains conversational advisor use cases.
package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/playbookTV/Kora/internal/application/adapter"
	"github.com/playbookTV/Kora/internal/domain/engine/safespend"
	domainerror "github.com/playbookTV/Kora/internal/domain/error"
)

// AskAdvisorInput represents the input for asking the advisor a question.
type AskAdvisorInput struct {
	UserID   uuid.UUID
	Question string
	Now      time.Time
}

// AskAdvisorOutput represents the advisor's answer.
type AskAdvisorOutput struct {
	Answer    string
	State     safespend.State
	RiskScore int
	Streak    int
}

// AskAdvisorUseCase answers money questions. All arithmetic happens in the
// engine first; the language model only phrases the precomputed numbers.
type AskAdvisorUseCase struct {
	profileRepo     adapter.ProfileRepository
	transactionRepo adapter.TransactionRepository
	patternRepo     adapter.PatternRepository
	advisorService  adapter.AdvisorService
}

// NewAskAdvisorUseCase creates a new AskAdvisorUseCase instance.
func NewAskAdvisorUseCase(
	profileRepo adapter.ProfileRepository,
	transactionRepo adapter.TransactionRepository,
	patternRepo adapter.PatternRepository,
	advisorService adapter.AdvisorService,
) *AskAdvisorUseCase {
	return &AskAdvisorUseCase{
		profileRepo:     profileRepo,
		transactionRepo: transactionRepo,
		patternRepo:     patternRepo,
		advisorService:  advisorService,
	}
}

// Execute computes the financial state and hands it to the model together
// with the question.
func (uc *AskAdvisorUseCase) Execute(ctx context.Context, input AskAdvisorInput) (*AskAdvisorOutput, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return nil, domainerror.NewAdvisorError(
			domainerror.ErrCodeEmptyQuestion,
			"question cannot be empty",
			domainerror.ErrEmptyQuestion,
		)
	}

	if !uc.advisorService.IsAvailable() {
		return nil, domainerror.NewAdvisorError(
			domainerror.ErrCodeAdvisorUnavailable,
			"advisor service is not available",
			domainerror.ErrAdvisorUnavailable,
		)
	}

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

	categories := make([]string, 0, len(pattern.TopCategories))
	for _, c := range pattern.TopCategories {
		categories = append(categories, c.Category)
	}

	result, err := uc.advisorService.Ask(ctx, &adapter.AdvisorRequest{
		Question:          question,
		DaysToPayday:      state.DaysToPayday,
		Balance:           state.Balance.String(),
		SafeSpendToday:    state.SafeSpendToday.String(),
		FlexibleRemaining: state.FlexibleRemaining.String(),
		TotalFixed:        state.TotalFixed.String(),
		UpcomingBills:     state.UpcomingBills.String(),
		RiskScore:         pattern.RiskScore,
		TopCategories:     categories,
	})
	if err != nil {
		return nil, domainerror.NewAdvisorError(
			domainerror.ErrCodeAdvisorFailed,
			"advisor request failed",
			err,
		)
	}

	return &AskAdvisorOutput{
		Answer:    result.Answer,
		State:     state,
		RiskScore: pattern.RiskScore,
		Streak:    pattern.CurrentStreak,
	}, nil
}
