// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/playbookTV/Kora/internal/domain/entity"
)

// PatternRepository defines the interface for spending pattern persistence operations.
type PatternRepository interface {
	// Save upserts the spending pattern for a user.
	Save(ctx context.Context, pattern *entity.SpendingPattern) error

	// FindByUserID retrieves the stored spending pattern for a user.
	// Implementations return a default pattern when none has been computed yet.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.SpendingPattern, error)
}
