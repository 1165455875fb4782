// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/playbookTV/Kora/internal/domain/entity"
)

// SendAlertInput represents the input for delivering an alert to a user.
type SendAlertInput struct {
	To    string
	Name  string
	Alert entity.Alert
}

// SendAlertResult represents the result of delivering an alert.
type SendAlertResult struct {
	ProviderID string
}

// AlertSender defines the interface for delivering alerts via an external provider.
type AlertSender interface {
	// Send delivers an alert via the notification provider (e.g., Resend).
	Send(ctx context.Context, input SendAlertInput) (*SendAlertResult, error)
}

// AlertDebouncer defines the interface for suppressing duplicate alerts.
// A debounce key is the pair (user, alert type); once marked, the same pair
// stays suppressed until the TTL expires.
type AlertDebouncer interface {
	// IsSuppressed reports whether an alert of this type was recently sent
	// to the user.
	IsSuppressed(ctx context.Context, userID uuid.UUID, alertType entity.AlertType) (bool, error)

	// MarkSent records that an alert of this type was sent to the user,
	// suppressing further alerts of the same type for the TTL.
	MarkSent(ctx context.Context, userID uuid.UUID, alertType entity.AlertType, ttl time.Duration) error
}
