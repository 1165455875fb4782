// Package alert contains proactive alert use cases.
package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/playbookTV/Kora/internal/application/adapter"
	enginealert "github.com/playbookTV/Kora/internal/domain/engine/alert"
	"github.com/playbookTV/Kora/internal/domain/engine/safespend"
	"github.com/playbookTV/Kora/internal/domain/entity"
	domainerror "github.com/playbookTV/Kora/internal/domain/error"
)

// debounceTTL maps each alert type to how long repeats are suppressed.
var debounceTTL = map[entity.AlertType]time.Duration{
	entity.AlertDangerZone:     24 * time.Hour,
	entity.AlertWeekendWarning: 72 * time.Hour,
	entity.AlertPaydayCheckin:  24 * time.Hour,
}

// EvaluateAlertsInput represents the input for evaluating a user's alerts.
type EvaluateAlertsInput struct {
	UserID uuid.UUID
	Now    time.Time
}

// EvaluateAlertsOutput represents the outcome of an alert evaluation.
type EvaluateAlertsOutput struct {
	Alert     *entity.Alert
	Queued    bool
	Debounced bool
}

// EvaluateAlertsUseCase runs the alert decision table for one user and
// enqueues the winning alert unless it was recently sent.
type EvaluateAlertsUseCase struct {
	profileRepo     adapter.ProfileRepository
	transactionRepo adapter.TransactionRepository
	patternRepo     adapter.PatternRepository
	queueRepo       adapter.AlertQueueRepository
	debouncer       adapter.AlertDebouncer
	config          enginealert.Config
}

// NewEvaluateAlertsUseCase creates a new EvaluateAlertsUseCase instance.
func NewEvaluateAlertsUseCase(
	profileRepo adapter.ProfileRepository,
	transactionRepo adapter.TransactionRepository,
	patternRepo adapter.PatternRepository,
	queueRepo adapter.AlertQueueRepository,
	debouncer adapter.AlertDebouncer,
	config enginealert.Config,
) *EvaluateAlertsUseCase {
	return &EvaluateAlertsUseCase{
		profileRepo:     profileRepo,
		transactionRepo: transactionRepo,
		patternRepo:     patternRepo,
		queueRepo:       queueRepo,
		debouncer:       debouncer,
		config:          config,
	}
}

// Execute evaluates the decision table against the user's current state.
// Users without a configured payday are silently skipped: there is no
// state to alert on yet.
func (uc *EvaluateAlertsUseCase) Execute(ctx context.Context, input EvaluateAlertsInput) (*EvaluateAlertsOutput, error) {
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
	if profile.Payday == nil {
		return &EvaluateAlertsOutput{}, nil
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

	a := enginealert.Evaluate(state, *pattern, now, uc.config)
	if a == nil {
		return &EvaluateAlertsOutput{}, nil
	}

	suppressed, err := uc.debouncer.IsSuppressed(ctx, input.UserID, a.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to check alert debounce: %w", err)
	}
	if suppressed {
		return &EvaluateAlertsOutput{Alert: a, Debounced: true}, nil
	}

	job := entity.NewAlertJob(input.UserID, *a)
	if err := uc.queueRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to enqueue alert: %w", err)
	}

	ttl, ok := debounceTTL[a.Type]
	if !ok {
		ttl = 24 * time.Hour
	}
	if err := uc.debouncer.MarkSent(ctx, input.UserID, a.Type, ttl); err != nil {
		return nil, fmt.Errorf("failed to mark alert debounce: %w", err)
	}

	return &EvaluateAlertsOutput{Alert: a, Queued: true}, nil
}
