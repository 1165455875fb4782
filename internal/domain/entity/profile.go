// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FixedExpense represents a recurring monthly obligation such as rent or a
// subscription. DueDay is the day of month the expense comes due; nil means
// no fixed due date is tracked, which excludes it from bill windowing.
type FixedExpense struct {
	ID        uuid.UUID
	ProfileID uuid.UUID
	Name      string
	Amount    decimal.Decimal
	DueDay    *int // 1-31 when set
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewFixedExpense creates a new FixedExpense entity.
func NewFixedExpense(profileID uuid.UUID, name string, amount decimal.Decimal, dueDay *int) *FixedExpense {
	now := time.Now().UTC()
	return &FixedExpense{
		ID:        uuid.New(),
		ProfileID: profileID,
		Name:      name,
		Amount:    amount,
		DueDay:    dueDay,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UserFinancialProfile is the aggregate the financial state engine reads.
// Income, Payday and SavingsGoal are nil until the user configures them;
// the engine treats an unset payday as a caller contract violation rather
// than coercing a default.
type UserFinancialProfile struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Income         *decimal.Decimal // monthly, before fixed expenses
	Payday         *int             // 1-31, day of month income arrives
	CurrentBalance decimal.Decimal  // signed
	SavingsGoal    *decimal.Decimal
	FixedExpenses  []FixedExpense
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewUserFinancialProfile creates an empty profile for a freshly registered user.
func NewUserFinancialProfile(userID uuid.UUID) *UserFinancialProfile {
	now := time.Now().UTC()
	return &UserFinancialProfile{
		ID:             uuid.New(),
		UserID:         userID,
		CurrentBalance: decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// TotalFixedExpenses sums the amounts of all fixed expenses on the profile.
func (p *UserFinancialProfile) TotalFixedExpenses() decimal.Decimal {
	total := decimal.Zero
	for _, e := range p.FixedExpenses {
		total = total.Add(e.Amount)
	}
	return total
}
