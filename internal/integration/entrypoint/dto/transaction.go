// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/playbookTV/Kora/internal/application/adapter"
	"github.com/playbookTV/Kora/internal/domain/entity"
)

// LogSpendRequest represents the request body for logging a spend.
type LogSpendRequest struct {
	Amount      float64 `json:"amount" binding:"required"`
	Category    string  `json:"category,omitempty" binding:"omitempty,max=100"`
	Description string  `json:"description,omitempty" binding:"omitempty,max=500"`
	Date        *string `json:"date,omitempty"`
	Source      string  `json:"source,omitempty" binding:"omitempty,oneof=manual voice chat"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Amount      string    `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"created_at"`
}

// LogSpendResponse represents the response for logging a spend.
type LogSpendResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	NewBalance  string              `json:"new_balance"`
}

// TransactionPaginationResponse represents pagination information in API responses.
type TransactionPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse         `json:"transactions"`
	Pagination   TransactionPaginationResponse `json:"pagination"`
}

// ToTransactionResponse converts a domain Transaction to a TransactionResponse DTO.
func ToTransactionResponse(txn *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          txn.ID.String(),
		UserID:      txn.UserID.String(),
		Amount:      txn.Amount.String(),
		Category:    txn.Category,
		Description: txn.Description,
		Date:        txn.Date,
		Source:      string(txn.Source),
		CreatedAt:   txn.CreatedAt,
	}
}

// ToTransactionListResponse converts a repository list result to the list response DTO.
func ToTransactionListResponse(result *adapter.TransactionListResult) TransactionListResponse {
	transactions := make([]TransactionResponse, 0, len(result.Transactions))
	for _, txn := range result.Transactions {
		transactions = append(transactions, ToTransactionResponse(txn))
	}

	return TransactionListResponse{
		Transactions: transactions,
		Pagination: TransactionPaginationResponse{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}
}
