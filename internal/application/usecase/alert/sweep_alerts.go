// Package alert contains proactive alert use cases.
package alert

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/playbookTV/Kora/internal/application/adapter"
)

// SweepAlertsInput represents the input for an alert sweep across all users.
type SweepAlertsInput struct {
	Now time.Time
}

// SweepAlertsOutput represents the outcome of an alert sweep.
type SweepAlertsOutput struct {
	Evaluated int
	Queued    int
	Debounced int
}

// SweepAlertsUseCase runs the alert evaluation for every user that opted
// into proactive alerts. One user's failure never aborts the sweep.
type SweepAlertsUseCase struct {
	userRepo adapter.UserRepository
	evaluate *EvaluateAlertsUseCase
	logger   *slog.Logger
}

// NewSweepAlertsUseCase creates a new SweepAlertsUseCase instance.
func NewSweepAlertsUseCase(
	userRepo adapter.UserRepository,
	evaluate *EvaluateAlertsUseCase,
	logger *slog.Logger,
) *SweepAlertsUseCase {
	return &SweepAlertsUseCase{
		userRepo: userRepo,
		evaluate: evaluate,
		logger:   logger,
	}
}

// Execute evaluates alerts for all opted-in users.
func (uc *SweepAlertsUseCase) Execute(ctx context.Context, input SweepAlertsInput) (*SweepAlertsOutput, error) {
	users, err := uc.userRepo.FindWithAlertsEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list alert-enabled users: %w", err)
	}

	out := &SweepAlertsOutput{}
	for _, user := range users {
		result, err := uc.evaluate.Execute(ctx, EvaluateAlertsInput{
			UserID: user.ID,
			Now:    input.Now,
		})
		if err != nil {
			uc.logger.Error("alert evaluation failed",
				slog.String("user_id", user.ID.String()),
				slog.String("error", err.Error()))
			continue
		}

		out.Evaluated++
		if result.Queued {
			out.Queued++
		}
		if result.Debounced {
			out.Debounced++
		}
	}

	return out, nil
}
