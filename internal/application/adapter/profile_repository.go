// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/playbookTV/Kora/internal/domain/entity"
)

// ProfileRepository defines the interface for financial profile persistence operations.
type ProfileRepository interface {
	// Create creates a new financial profile for a user.
	Create(ctx context.Context, profile *entity.UserFinancialProfile) error

	// FindByUserID retrieves a user's financial profile with its fixed expenses.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserFinancialProfile, error)

	// Update updates an existing financial profile.
	Update(ctx context.Context, profile *entity.UserFinancialProfile) error

	// AddFixedExpense adds a fixed expense to a profile.
	AddFixedExpense(ctx context.Context, expense *entity.FixedExpense) error

	// UpdateFixedExpense updates an existing fixed expense.
	UpdateFixedExpense(ctx context.Context, expense *entity.FixedExpense) error

	// DeleteFixedExpense removes a fixed expense from a profile.
	DeleteFixedExpense(ctx context.Context, id uuid.UUID) error

	// FindFixedExpenseByID retrieves a fixed expense by its ID.
	FindFixedExpenseByID(ctx context.Context, id uuid.UUID) (*entity.FixedExpense, error)
}
