// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/playbookTV/Kora/internal/domain/entity"
)

// AlertQueueRepository defines the interface for alert queue persistence operations.
type AlertQueueRepository interface {
	// Create adds a new alert job to the queue.
	Create(ctx context.Context, job *entity.AlertJob) error

	// GetPendingJobs retrieves jobs ready to be processed, ordered by scheduled_at.
	GetPendingJobs(ctx context.Context, limit int) ([]*entity.AlertJob, error)

	// Update saves changes to an alert job.
	Update(ctx context.Context, job *entity.AlertJob) error

	// GetByID retrieves a specific job by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.AlertJob, error)

	// GetByUser retrieves jobs for a specific user (for testing/debugging).
	GetByUser(ctx context.Context, userID uuid.UUID) ([]*entity.AlertJob, error)

	// DeleteOldSentJobs removes sent jobs older than the specified number of days.
	DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error)
}
