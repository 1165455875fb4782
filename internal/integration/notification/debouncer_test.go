package notification

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playbookTV/Kora/internal/domain/entity"
)

func newTestDebouncer(t *testing.T) (*miniredis.Miniredis, *redisDebouncer) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, &redisDebouncer{client: client}
}

func TestDebouncerSuppressesAfterMark(t *testing.T) {
	mr, d := newTestDebouncer(t)
	ctx := context.Background()
	userID := uuid.New()

	suppressed, err := d.IsSuppressed(ctx, userID, entity.AlertDangerZone)
	require.NoError(t, err)
	assert.False(t, suppressed)

	require.NoError(t, d.MarkSent(ctx, userID, entity.AlertDangerZone, 24*time.Hour))

	suppressed, err = d.IsSuppressed(ctx, userID, entity.AlertDangerZone)
	require.NoError(t, err)
	assert.True(t, suppressed)

	// Other alert types and other users stay unsuppressed.
	suppressed, err = d.IsSuppressed(ctx, userID, entity.AlertPaydayCheckin)
	require.NoError(t, err)
	assert.False(t, suppressed)

	suppressed, err = d.IsSuppressed(ctx, uuid.New(), entity.AlertDangerZone)
	require.NoError(t, err)
	assert.False(t, suppressed)

	// TTL expiry clears the suppression.
	mr.FastForward(25 * time.Hour)
	suppressed, err = d.IsSuppressed(ctx, userID, entity.AlertDangerZone)
	require.NoError(t, err)
	assert.False(t, suppressed)
}
