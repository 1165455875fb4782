package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playbookTV/Kora/internal/domain/entity"
)

type memoryQueue struct {
	jobs map[uuid.UUID]*entity.AlertJob
}

func newMemoryQueue() *memoryQueue {
	return &memoryQueue{jobs: make(map[uuid.UUID]*entity.AlertJob)}
}

func (q *memoryQueue) Create(ctx context.Context, job *entity.AlertJob) error {
	q.jobs[job.ID] = job
	return nil
}

func (q *memoryQueue) GetPendingJobs(ctx context.Context, limit int) ([]*entity.AlertJob, error) {
	var pending []*entity.AlertJob
	for _, job := range q.jobs {
		if job.Status == entity.AlertJobStatusPending && !job.ScheduledAt.After(time.Now().UTC()) {
			pending = append(pending, job)
		}
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (q *memoryQueue) Update(ctx context.Context, job *entity.AlertJob) error {
	q.jobs[job.ID] = job
	return nil
}

func (q *memoryQueue) GetByID(ctx context.Context, id uuid.UUID) (*entity.AlertJob, error) {
	job, ok := q.jobs[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return job, nil
}

func (q *memoryQueue) GetByUser(ctx context.Context, userID uuid.UUID) ([]*entity.AlertJob, error) {
	var jobs []*entity.AlertJob
	for _, job := range q.jobs {
		if job.UserID == userID {
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

func (q *memoryQueue) DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error) {
	return 0, nil
}

type memoryUsers struct {
	users map[uuid.UUID]*entity.User
}

func (u *memoryUsers) Create(ctx context.Context, user *entity.User) error { return nil }

func (u *memoryUsers) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := u.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func (u *memoryUsers) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, errors.New("user not found")
}

func (u *memoryUsers) FindAll(ctx context.Context) ([]*entity.User, error) {
	var users []*entity.User
	for _, user := range u.users {
		users = append(users, user)
	}
	return users, nil
}

func (u *memoryUsers) FindWithAlertsEnabled(ctx context.Context) ([]*entity.User, error) {
	var users []*entity.User
	for _, user := range u.users {
		if user.AlertsEnabled {
			users = append(users, user)
		}
	}
	return users, nil
}

func (u *memoryUsers) Update(ctx context.Context, user *entity.User) error { return nil }

func (u *memoryUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func newTestUser() *entity.User {
	user := entity.NewUser("ada@example.com", "Ada", "hash", time.Now().UTC())
	return user
}

func testAlert() entity.Alert {
	return entity.Alert{
		Type:  entity.AlertDangerZone,
		Title: "Danger zone",
		Body:  "Money is tight until payday.",
		Data:  map[string]string{"balance": "9000"},
	}
}

func TestWorkerDeliversPendingJob(t *testing.T) {
	user := newTestUser()
	queue := newMemoryQueue()
	sender := NewMockAlertSender()
	users := &memoryUsers{users: map[uuid.UUID]*entity.User{user.ID: user}}

	job := entity.NewAlertJob(user.ID, testAlert())
	job.ScheduledAt = time.Now().UTC().Add(-time.Second)
	require.NoError(t, queue.Create(context.Background(), job))

	w := NewWorker(queue, users, sender, DefaultWorkerConfig())
	w.ProcessNow(context.Background())

	require.Len(t, sender.SentAlerts, 1)
	assert.Equal(t, "ada@example.com", sender.SentAlerts[0].To)
	assert.Equal(t, entity.AlertDangerZone, sender.SentAlerts[0].Alert.Type)
	assert.Equal(t, entity.AlertJobStatusSent, queue.jobs[job.ID].Status)
}

func TestWorkerRetriesTemporaryFailure(t *testing.T) {
	user := newTestUser()
	queue := newMemoryQueue()
	sender := NewMockAlertSender()
	sender.SetFailure(errors.New("rate limited"), false)
	users := &memoryUsers{users: map[uuid.UUID]*entity.User{user.ID: user}}

	job := entity.NewAlertJob(user.ID, testAlert())
	job.ScheduledAt = time.Now().UTC().Add(-time.Second)
	require.NoError(t, queue.Create(context.Background(), job))

	w := NewWorker(queue, users, sender, DefaultWorkerConfig())
	w.ProcessNow(context.Background())

	stored := queue.jobs[job.ID]
	assert.Equal(t, entity.AlertJobStatusPending, stored.Status)
	assert.Equal(t, 1, stored.Attempts)
	assert.True(t, stored.ScheduledAt.After(time.Now().UTC()))
}

func TestWorkerDropsPermanentFailure(t *testing.T) {
	user := newTestUser()
	queue := newMemoryQueue()
	sender := NewMockAlertSender()
	sender.SetFailure(errors.New("invalid recipient"), true)
	users := &memoryUsers{users: map[uuid.UUID]*entity.User{user.ID: user}}

	job := entity.NewAlertJob(user.ID, testAlert())
	job.ScheduledAt = time.Now().UTC().Add(-time.Second)
	require.NoError(t, queue.Create(context.Background(), job))

	w := NewWorker(queue, users, sender, DefaultWorkerConfig())
	w.ProcessNow(context.Background())

	assert.Equal(t, entity.AlertJobStatusFailed, queue.jobs[job.ID].Status)
}

func TestWorkerSkipsOptedOutUser(t *testing.T) {
	user := newTestUser()
	user.AlertsEnabled = false
	queue := newMemoryQueue()
	sender := NewMockAlertSender()
	users := &memoryUsers{users: map[uuid.UUID]*entity.User{user.ID: user}}

	job := entity.NewAlertJob(user.ID, testAlert())
	job.ScheduledAt = time.Now().UTC().Add(-time.Second)
	require.NoError(t, queue.Create(context.Background(), job))

	w := NewWorker(queue, users, sender, DefaultWorkerConfig())
	w.ProcessNow(context.Background())

	assert.Empty(t, sender.SentAlerts)
	assert.Equal(t, entity.AlertJobStatusFailed, queue.jobs[job.ID].Status)
}
