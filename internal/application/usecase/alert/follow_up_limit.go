// Package alert contains proactive alert use cases.
package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/playbookTV/Kora/internal/application/adapter"
	enginealert "github.com/playbookTV/Kora/internal/domain/engine/alert"
	"github.com/playbookTV/Kora/internal/domain/entity"
	domainerror "github.com/playbookTV/Kora/internal/domain/error"
)

// FollowUpLimitInput represents the input for following up on a spending limit.
// Start and End bound the window the limit covered.
type FollowUpLimitInput struct {
	UserID uuid.UUID
	Limit  decimal.Decimal
	Start  time.Time
	End    time.Time
}

// FollowUpLimitOutput represents the queued follow-up.
type FollowUpLimitOutput struct {
	Alert    *entity.Alert
	WasUnder bool
}

// FollowUpLimitUseCase compares actual spending in a window against a
// previously agreed limit and queues the follow-up alert. Unlike the
// scheduled alerts this one is always caller-triggered, so it bypasses
// the debouncer.
type FollowUpLimitUseCase struct {
	transactionRepo adapter.TransactionRepository
	queueRepo       adapter.AlertQueueRepository
}

// NewFollowUpLimitUseCase creates a new FollowUpLimitUseCase instance.
func NewFollowUpLimitUseCase(
	transactionRepo adapter.TransactionRepository,
	queueRepo adapter.AlertQueueRepository,
) *FollowUpLimitUseCase {
	return &FollowUpLimitUseCase{
		transactionRepo: transactionRepo,
		queueRepo:       queueRepo,
	}
}

// Execute builds and enqueues the limit follow-up alert.
func (uc *FollowUpLimitUseCase) Execute(ctx context.Context, input FollowUpLimitInput) (*FollowUpLimitOutput, error) {
	if !input.Limit.GreaterThan(decimal.Zero) {
		return nil, domainerror.NewAlertError(
			domainerror.ErrCodeInvalidLimit,
			"spending limit must be greater than zero",
			domainerror.ErrInvalidLimit,
		)
	}

	spent, err := uc.transactionRepo.SumByUserAndDateRange(ctx, input.UserID, input.Start, input.End)
	if err != nil {
		return nil, fmt.Errorf("failed to sum window spending: %w", err)
	}

	a := enginealert.LimitFollowUp(input.Limit, spent)

	job := entity.NewAlertJob(input.UserID, *a)
	if err := uc.queueRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to enqueue follow-up: %w", err)
	}

	return &FollowUpLimitOutput{
		Alert:    a,
		WasUnder: a.Data["was_under"] == "true",
	}, nil
}
