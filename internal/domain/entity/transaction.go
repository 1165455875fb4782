// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionSource records how a spend entered the system.
type TransactionSource string

const (
	TransactionSourceManual TransactionSource = "manual"
	TransactionSourceVoice  TransactionSource = "voice"
	TransactionSourceChat   TransactionSource = "chat"
)

// DefaultCategory is assigned when a spend is logged without a category.
const DefaultCategory = "Uncategorized"

// Transaction represents a single spend event. Kora models debits only;
// Amount is always positive and the balance decrement is owned by the
// logging use case, never by the engine.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time // when the spend occurred, not necessarily now
	Source      TransactionSource
	CreatedAt   time.Time
	DeletedAt   *time.Time // soft-delete support
}

// NewTransaction creates a new Transaction entity. An empty category falls
// back to DefaultCategory.
func NewTransaction(userID uuid.UUID, amount decimal.Decimal, category, description string, date time.Time, source TransactionSource) *Transaction {
	if category == "" {
		category = DefaultCategory
	}
	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        date,
		Source:      source,
		CreatedAt:   time.Now().UTC(),
	}
}
