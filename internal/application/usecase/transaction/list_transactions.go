// Package transaction contains spending log use cases.
package transaction

import (
	"context"
	"fmt"

	"github.com/playbookTV/Kora/internal/application/adapter"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	Filter     adapter.TransactionFilter
	Pagination adapter.TransactionPagination
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Result *adapter.TransactionListResult
}

// ListTransactionsUseCase handles transaction listing with filters.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute lists transactions for the filter's user with pagination.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if input.Pagination.Page < 1 {
		input.Pagination.Page = 1
	}
	if input.Pagination.Limit < 1 || input.Pagination.Limit > 100 {
		input.Pagination.Limit = 20
	}

	result, err := uc.transactionRepo.FindByFilter(ctx, input.Filter, input.Pagination)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &ListTransactionsOutput{Result: result}, nil
}
