package pattern

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playbookTV/Kora/internal/application/adapter"
	"github.com/playbookTV/Kora/internal/domain/entity"
)

type fakeProfileRepo struct {
	profile *entity.UserFinancialProfile
}

func (f *fakeProfileRepo) Create(ctx context.Context, p *entity.UserFinancialProfile) error {
	return nil
}

func (f *fakeProfileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserFinancialProfile, error) {
	return f.profile, nil
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
	sum  decimal.Decimal
	txns []*entity.Transaction
}

func (f *fakeTransactionRepo) Create(ctx context.Context, t *entity.Transaction) error { return nil }

func (f *fakeTransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	return nil, nil
}

func (f *fakeTransactionRepo) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, p adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	return &adapter.TransactionListResult{}, nil
}

func (f *fakeTransactionRepo) FindByUserAndDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.Transaction, error) {
	return f.txns, nil
}

func (f *fakeTransactionRepo) SumByUserAndDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	return f.sum, nil
}

func (f *fakeTransactionRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeTransactionRepo) ExistsByIDAndUser(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	return false, nil
}

type fakePatternRepo struct {
	pattern entity.SpendingPattern
	saved   *entity.SpendingPattern
}

func (f *fakePatternRepo) Save(ctx context.Context, p *entity.SpendingPattern) error {
	f.saved = p
	return nil
}

func (f *fakePatternRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.SpendingPattern, error) {
	p := f.pattern
	return &p, nil
}

func configuredProfile(userID uuid.UUID, balance int64) *entity.UserFinancialProfile {
	payday := 25
	income := decimal.NewFromInt(300000)
	p := entity.NewUserFinancialProfile(userID)
	p.Payday = &payday
	p.Income = &income
	p.CurrentBalance = decimal.NewFromInt(balance)
	return p
}

func TestCloseDayAdvancesStreak(t *testing.T) {
	userID := uuid.New()
	prev := entity.DefaultSpendingPattern(userID)
	prev.CurrentStreak = 4
	patterns := &fakePatternRepo{pattern: prev}

	// End-of-day balance 16200, spent 1800 during the day. Start balance
	// was 18000; with payday in 5 days the allowance was 3600.
	uc := NewCloseDayUseCase(
		&fakeProfileRepo{profile: configuredProfile(userID, 16200)},
		&fakeTransactionRepo{sum: decimal.NewFromInt(1800)},
		patterns,
	)

	day := time.Date(2025, time.June, 20, 23, 59, 0, 0, time.UTC)
	out, err := uc.Execute(context.Background(), CloseDayInput{UserID: userID, Day: day})
	require.NoError(t, err)
	assert.Equal(t, 5, out.Streak)
	assert.True(t, out.StayedIn)
	assert.Equal(t, "3600", out.SafeSpend)

	require.NotNil(t, patterns.saved)
	assert.Equal(t, 5, patterns.saved.CurrentStreak)
}

func TestCloseDayResetsStreakOnOverspend(t *testing.T) {
	userID := uuid.New()
	prev := entity.DefaultSpendingPattern(userID)
	prev.CurrentStreak = 9
	patterns := &fakePatternRepo{pattern: prev}

	// Spent 5000 against a 3600 allowance.
	uc := NewCloseDayUseCase(
		&fakeProfileRepo{profile: configuredProfile(userID, 13000)},
		&fakeTransactionRepo{sum: decimal.NewFromInt(5000)},
		patterns,
	)

	day := time.Date(2025, time.June, 20, 23, 59, 0, 0, time.UTC)
	out, err := uc.Execute(context.Background(), CloseDayInput{UserID: userID, Day: day})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Streak)
	assert.False(t, out.StayedIn)
}

func TestCloseDayRequiresPayday(t *testing.T) {
	userID := uuid.New()
	uc := NewCloseDayUseCase(
		&fakeProfileRepo{profile: entity.NewUserFinancialProfile(userID)},
		&fakeTransactionRepo{},
		&fakePatternRepo{pattern: entity.DefaultSpendingPattern(userID)},
	)

	_, err := uc.Execute(context.Background(), CloseDayInput{UserID: userID, Day: time.Now()})
	assert.Error(t, err)
}

func TestRefreshPatternsPersistsAnalysis(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2025, time.June, 20, 3, 0, 0, 0, time.UTC)

	// Eight transactions across the window so the analyzer engages.
	txns := make([]*entity.Transaction, 0, 8)
	for i := 0; i < 8; i++ {
		date := now.AddDate(0, 0, -(i + 1))
		txns = append(txns, entity.NewTransaction(
			userID, decimal.NewFromInt(1000), "Food", "", date, entity.TransactionSourceManual,
		))
	}

	patterns := &fakePatternRepo{pattern: entity.DefaultSpendingPattern(userID)}
	uc := NewRefreshPatternsUseCase(
		&fakeProfileRepo{profile: configuredProfile(userID, 50000)},
		&fakeTransactionRepo{sum: decimal.NewFromInt(8000), txns: txns},
		patterns,
	)

	out, err := uc.Execute(context.Background(), RefreshPatternsInput{UserID: userID, Now: now})
	require.NoError(t, err)
	require.NotNil(t, patterns.saved)
	assert.Equal(t, now, out.Pattern.AnalyzedAt)
	assert.True(t, out.Pattern.AvgDailySpend.GreaterThan(decimal.Zero))
	assert.GreaterOrEqual(t, out.Pattern.RiskScore, 0)
	assert.LessOrEqual(t, out.Pattern.RiskScore, 100)
}
