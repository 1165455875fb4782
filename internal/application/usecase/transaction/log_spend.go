// Package transaction contains spending log use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/playbookTV/Kora/internal/application/adapter"
	"github.com/playbookTV/Kora/internal/domain/entity"
	domainerror "github.com/playbookTV/Kora/internal/domain/error"
)

// maxDescriptionLength bounds free-text descriptions from voice and chat input.
const maxDescriptionLength = 500

// LogSpendInput represents the input for logging a spend.
type LogSpendInput struct {
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        *time.Time
	Source      entity.TransactionSource
}

// LogSpendOutput represents the output of logging a spend.
type LogSpendOutput struct {
	Transaction *entity.Transaction
	NewBalance  decimal.Decimal
}

// LogSpendUseCase handles recording a spend and adjusting the running balance.
type LogSpendUseCase struct {
	transactionRepo adapter.TransactionRepository
	profileRepo     adapter.ProfileRepository
}

// NewLogSpendUseCase creates a new LogSpendUseCase instance.
func NewLogSpendUseCase(
	transactionRepo adapter.TransactionRepository,
	profileRepo adapter.ProfileRepository,
) *LogSpendUseCase {
	return &LogSpendUseCase{
		transactionRepo: transactionRepo,
		profileRepo:     profileRepo,
	}
}

// Execute records the spend and decrements the profile's current balance.
// A missing date defaults to now; a missing category defaults to
// "Uncategorized" inside the entity constructor.
func (uc *LogSpendUseCase) Execute(ctx context.Context, input LogSpendInput) (*LogSpendOutput, error) {
	if !input.Amount.GreaterThan(decimal.Zero) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"transaction amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	if len(input.Description) > maxDescriptionLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			"description too long",
			domainerror.ErrDescriptionTooLong,
		)
	}

	date := time.Now().UTC()
	if input.Date != nil {
		if input.Date.After(time.Now().UTC().Add(24 * time.Hour)) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionDate,
				"transaction date cannot be in the future",
				domainerror.ErrInvalidTransactionDate,
			)
		}
		date = input.Date.UTC()
	}

	profile, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewProfileError(
			domainerror.ErrCodeProfileNotFound,
			"financial profile not found",
			domainerror.ErrProfileNotFound,
		)
	}

	txn := entity.NewTransaction(input.UserID, input.Amount, input.Category, input.Description, date, input.Source)
	if err := uc.transactionRepo.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	profile.CurrentBalance = profile.CurrentBalance.Sub(input.Amount)
	profile.UpdatedAt = time.Now().UTC()
	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	return &LogSpendOutput{
		Transaction: txn,
		NewBalance:  profile.CurrentBalance,
	}, nil
}
