// Package notification delivers proactive alerts to users.
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/playbookTV/Kora/internal/application/adapter"
	"github.com/playbookTV/Kora/internal/domain/entity"
)

// redisDebouncer implements the adapter.AlertDebouncer interface on Redis.
// Each sent alert sets a key "alert:<user>:<type>" with the TTL; presence
// of the key means the alert is suppressed.
type redisDebouncer struct {
	client *redis.Client
}

// NewRedisDebouncer creates a new Redis-backed alert debouncer.
func NewRedisDebouncer(client *redis.Client) adapter.AlertDebouncer {
	return &redisDebouncer{
		client: client,
	}
}

// IsSuppressed reports whether an alert of this type was recently sent to the user.
func (d *redisDebouncer) IsSuppressed(ctx context.Context, userID uuid.UUID, alertType entity.AlertType) (bool, error) {
	count, err := d.client.Exists(ctx, debounceKey(userID, alertType)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check debounce key: %w", err)
	}
	return count > 0, nil
}

// MarkSent records that an alert of this type was sent to the user.
func (d *redisDebouncer) MarkSent(ctx context.Context, userID uuid.UUID, alertType entity.AlertType, ttl time.Duration) error {
	if err := d.client.Set(ctx, debounceKey(userID, alertType), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to set debounce key: %w", err)
	}
	return nil
}

func debounceKey(userID uuid.UUID, alertType entity.AlertType) string {
	return fmt.Sprintf("alert:%s:%s", userID, alertType)
}

// noopDebouncer never suppresses anything. Used when Redis is unavailable
// so alert evaluation can keep working, at the cost of possible repeats.
type noopDebouncer struct{}

// NewNoopDebouncer creates a debouncer that never suppresses.
func NewNoopDebouncer() adapter.AlertDebouncer {
	return noopDebouncer{}
}

func (noopDebouncer) IsSuppressed(ctx context.Context, userID uuid.UUID, alertType entity.AlertType) (bool, error) {
	return false, nil
}

func (noopDebouncer) MarkSent(ctx context.Context, userID uuid.UUID, alertType entity.AlertType, ttl time.Duration) error {
	return nil
}
