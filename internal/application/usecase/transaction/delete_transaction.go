// Package transaction contains spending log use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/playbookTV/Kora/internal/application/adapter"
	domainerror "github.com/playbookTV/Kora/internal/domain/error"
)

// DeleteTransactionInput represents the input for deleting a transaction.
type DeleteTransactionInput struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
}

// DeleteTransactionOutput represents the output of deleting a transaction.
type DeleteTransactionOutput struct {
	Message string
}

// DeleteTransactionUseCase handles undoing a logged spend.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	profileRepo     adapter.ProfileRepository
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	profileRepo adapter.ProfileRepository,
) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionRepo: transactionRepo,
		profileRepo:     profileRepo,
	}
}

// Execute soft-deletes the transaction and restores its amount to the
// profile's current balance.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	txn, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}
	if txn.UserID != input.UserID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to modify transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	if err := uc.transactionRepo.Delete(ctx, txn.ID); err != nil {
		return nil, fmt.Errorf("failed to delete transaction: %w", err)
	}

	profile, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewProfileError(
			domainerror.ErrCodeProfileNotFound,
			"financial profile not found",
			domainerror.ErrProfileNotFound,
		)
	}

	profile.CurrentBalance = profile.CurrentBalance.Add(txn.Amount)
	profile.UpdatedAt = time.Now().UTC()
	if err := uc.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to restore balance: %w", err)
	}

	return &DeleteTransactionOutput{Message: "Transaction deleted"}, nil
}
