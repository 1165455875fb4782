package alert

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playbookTV/Kora/internal/application/adapter"
	enginealert "github.com/playbookTV/Kora/internal/domain/engine/alert"
	"github.com/playbookTV/Kora/internal/domain/entity"
)

type fakeProfileRepo struct {
	profile *entity.UserFinancialProfile
	err     error
}

func (f *fakeProfileRepo) Create(ctx context.Context, p *entity.UserFinancialProfile) error {
	return nil
}

func (f *fakeProfileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserFinancialProfile, error) {
	return f.profile, f.err
}

func (f *fakeProfileRepo) Update(ctx context.Context, p *entity.UserFinancialProfile) error {
	return nil
}

func (f *fakeProfileRepo) AddFixedExpense(ctx context.Context, e *entity.FixedExpense) error {
	return nil
}

func (f *fakeProfileRepo) UpdateFixedExpense(ctx context.Context, e *entity.FixedExpense) error {
	return nil
}

func (f *fakeProfileRepo) DeleteFixedExpense(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeProfileRepo) FindFixedExpenseByID(ctx context.Context, id uuid.UUID) (*entity.FixedExpense, error) {
	return nil, nil
}

type fakeTransactionRepo struct {
	sum decimal.Decimal
}

func (f *fakeTransactionRepo) Create(ctx context.Context, t *entity.Transaction) error { return nil }

func (f *fakeTransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	return nil, nil
}

func (f *fakeTransactionRepo) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, p adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	return &adapter.TransactionListResult{}, nil
}

func (f *fakeTransactionRepo) FindByUserAndDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.Transaction, error) {
	return nil, nil
}

func (f *fakeTransactionRepo) SumByUserAndDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	return f.sum, nil
}

func (f *fakeTransactionRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeTransactionRepo) ExistsByIDAndUser(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	return false, nil
}

type fakePatternRepo struct {
	pattern *entity.SpendingPattern
	saved   *entity.SpendingPattern
}

func (f *fakePatternRepo) Save(ctx context.Context, p *entity.SpendingPattern) error {
	f.saved = p
	return nil
}

func (f *fakePatternRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.SpendingPattern, error) {
	if f.pattern == nil {
		p := entity.DefaultSpendingPattern(userID)
		return &p, nil
	}
	return f.pattern, nil
}

type fakeQueueRepo struct {
	jobs []*entity.AlertJob
}

func (f *fakeQueueRepo) Create(ctx context.Context, job *entity.AlertJob) error {
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakeQueueRepo) GetPendingJobs(ctx context.Context, limit int) ([]*entity.AlertJob, error) {
	return f.jobs, nil
}

func (f *fakeQueueRepo) Update(ctx context.Context, job *entity.AlertJob) error { return nil }

func (f *fakeQueueRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.AlertJob, error) {
	return nil, nil
}

func (f *fakeQueueRepo) GetByUser(ctx context.Context, userID uuid.UUID) ([]*entity.AlertJob, error) {
	return f.jobs, nil
}

func (f *fakeQueueRepo) DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error) {
	return 0, nil
}

type fakeDebouncer struct {
	suppressed bool
	marked     []entity.AlertType
}

func (f *fakeDebouncer) IsSuppressed(ctx context.Context, userID uuid.UUID, t entity.AlertType) (bool, error) {
	return f.suppressed, nil
}

func (f *fakeDebouncer) MarkSent(ctx context.Context, userID uuid.UUID, t entity.AlertType, ttl time.Duration) error {
	f.marked = append(f.marked, t)
	return nil
}

func tightProfile(userID uuid.UUID) *entity.UserFinancialProfile {
	payday := 25
	income := decimal.NewFromInt(300000)
	p := entity.NewUserFinancialProfile(userID)
	p.Payday = &payday
	p.Income = &income
	p.CurrentBalance = decimal.NewFromInt(9000)
	return p
}

func TestEvaluateAlertsQueuesDangerZone(t *testing.T) {
	userID := uuid.New()
	queue := &fakeQueueRepo{}
	debouncer := &fakeDebouncer{}

	uc := NewEvaluateAlertsUseCase(
		&fakeProfileRepo{profile: tightProfile(userID)},
		&fakeTransactionRepo{sum: decimal.NewFromInt(40000)},
		&fakePatternRepo{},
		queue,
		debouncer,
		enginealert.DefaultConfig(),
	)

	// 5 days to payday, tiny balance: danger zone.
	now := time.Date(2025, time.June, 20, 12, 0, 0, 0, time.UTC)
	out, err := uc.Execute(context.Background(), EvaluateAlertsInput{UserID: userID, Now: now})
	require.NoError(t, err)
	require.NotNil(t, out.Alert)
	assert.True(t, out.Queued)
	assert.Equal(t, entity.AlertDangerZone, out.Alert.Type)

	require.Len(t, queue.jobs, 1)
	assert.Equal(t, userID, queue.jobs[0].UserID)
	assert.Equal(t, entity.AlertJobStatusPending, queue.jobs[0].Status)
	assert.Equal(t, []entity.AlertType{entity.AlertDangerZone}, debouncer.marked)
}

func TestEvaluateAlertsDebounced(t *testing.T) {
	userID := uuid.New()
	queue := &fakeQueueRepo{}

	uc := NewEvaluateAlertsUseCase(
		&fakeProfileRepo{profile: tightProfile(userID)},
		&fakeTransactionRepo{sum: decimal.NewFromInt(40000)},
		&fakePatternRepo{},
		queue,
		&fakeDebouncer{suppressed: true},
		enginealert.DefaultConfig(),
	)

	now := time.Date(2025, time.June, 20, 12, 0, 0, 0, time.UTC)
	out, err := uc.Execute(context.Background(), EvaluateAlertsInput{UserID: userID, Now: now})
	require.NoError(t, err)
	assert.True(t, out.Debounced)
	assert.False(t, out.Queued)
	assert.Empty(t, queue.jobs)
}

func TestEvaluateAlertsSkipsUnconfiguredProfile(t *testing.T) {
	userID := uuid.New()
	profile := entity.NewUserFinancialProfile(userID)
	queue := &fakeQueueRepo{}

	uc := NewEvaluateAlertsUseCase(
		&fakeProfileRepo{profile: profile},
		&fakeTransactionRepo{},
		&fakePatternRepo{},
		queue,
		&fakeDebouncer{},
		enginealert.DefaultConfig(),
	)

	out, err := uc.Execute(context.Background(), EvaluateAlertsInput{UserID: userID})
	require.NoError(t, err)
	assert.Nil(t, out.Alert)
	assert.Empty(t, queue.jobs)
}

func TestFollowUpLimitQueuesAlert(t *testing.T) {
	userID := uuid.New()
	queue := &fakeQueueRepo{}

	uc := NewFollowUpLimitUseCase(
		&fakeTransactionRepo{sum: decimal.NewFromInt(12000)},
		queue,
	)

	start := time.Date(2025, time.June, 20, 18, 0, 0, 0, time.UTC)
	out, err := uc.Execute(context.Background(), FollowUpLimitInput{
		UserID: userID,
		Limit:  decimal.NewFromInt(15000),
		Start:  start,
		End:    start.AddDate(0, 0, 3),
	})
	require.NoError(t, err)
	assert.True(t, out.WasUnder)
	assert.Equal(t, "3000", out.Alert.Data["under_by"])
	require.Len(t, queue.jobs, 1)
	assert.Equal(t, entity.AlertLimitFollowup, queue.jobs[0].Alert.Type)
}

func TestFollowUpLimitRejectsNonPositiveLimit(t *testing.T) {
	uc := NewFollowUpLimitUseCase(&fakeTransactionRepo{}, &fakeQueueRepo{})

	_, err := uc.Execute(context.Background(), FollowUpLimitInput{
		UserID: uuid.New(),
		Limit:  decimal.Zero,
	})
	assert.Error(t, err)
}
