package pattern

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playbookTV/Kora/internal/domain/entity"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// txnOn builds a spend of the given amount on a date with the wanted weekday.
func txnOn(t *testing.T, weekday time.Weekday, amount int64, category string) entity.Transaction {
	t.Helper()
	// 2025-06-01 is a Sunday.
	base := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	date := base.AddDate(0, 0, int(weekday-time.Sunday))
	require.Equal(t, weekday, date.Weekday())

	return entity.Transaction{
		ID:       uuid.New(),
		Amount:   dec(amount),
		Category: category,
		Date:     date,
	}
}

func TestAnalyzeInsufficientData(t *testing.T) {
	userID := uuid.New()
	prev := entity.DefaultSpendingPattern(userID)
	prev.CurrentStreak = 4
	today := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)

	got := Analyze(prev, nil, today)
	assert.Equal(t, prev, got, "empty history returns prior pattern")

	six := make([]entity.Transaction, 6)
	for i := range six {
		six[i] = txnOn(t, time.Monday, 100, "Food")
	}
	got = Analyze(prev, six, today)
	assert.Equal(t, prev, got, "six transactions are still insufficient")
}

func TestAnalyzeWeekdayAverages(t *testing.T) {
	prev := entity.DefaultSpendingPattern(uuid.New())
	today := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)

	txns := []entity.Transaction{
		txnOn(t, time.Monday, 100, "Food"),
		txnOn(t, time.Monday, 300, "Food"),
		txnOn(t, time.Tuesday, 50, "Transport"),
		txnOn(t, time.Wednesday, 50, "Transport"),
		txnOn(t, time.Thursday, 50, "Transport"),
		txnOn(t, time.Saturday, 600, "Nightlife"),
		txnOn(t, time.Sunday, 400, "Food"),
	}

	got := Analyze(prev, txns, today)

	assert.True(t, got.AvgByWeekday[time.Monday].Equal(dec(200)))
	assert.True(t, got.AvgByWeekday[time.Tuesday].Equal(dec(50)))
	assert.True(t, got.AvgByWeekday[time.Friday].IsZero(), "no transactions on Friday")
	assert.Equal(t, today, got.AnalyzedAt)
}

func TestAnalyzeHighRiskDaysAndTriggers(t *testing.T) {
	prev := entity.DefaultSpendingPattern(uuid.New())
	today := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)

	// Heavy Friday and Saturday spending against light weekdays.
	txns := []entity.Transaction{
		txnOn(t, time.Monday, 50, "Food"),
		txnOn(t, time.Tuesday, 50, "Food"),
		txnOn(t, time.Wednesday, 50, "Food"),
		txnOn(t, time.Thursday, 50, "Food"),
		txnOn(t, time.Friday, 900, "Nightlife"),
		txnOn(t, time.Saturday, 800, "Nightlife"),
		txnOn(t, time.Sunday, 100, "Food"),
	}

	got := Analyze(prev, txns, today)

	assert.Contains(t, got.HighRiskDays, time.Friday)
	assert.Contains(t, got.HighRiskDays, time.Saturday)
	assert.NotContains(t, got.HighRiskDays, time.Monday)

	// Weekend mean (900+800+100)/3 = 600 vs weekday mean 50.
	assert.True(t, got.AvgWeekendSpend.Equal(dec(600)))
	assert.True(t, got.AvgWeekdaySpend.Equal(dec(50)))
	assert.True(t, got.HasTrigger(entity.TriggerWeekendSpending))
	assert.True(t, got.HasTrigger(entity.TriggerFridayEvening))
}

func TestAnalyzeTopCategories(t *testing.T) {
	prev := entity.DefaultSpendingPattern(uuid.New())
	today := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)

	var txns []entity.Transaction
	for i := 0; i < 7; i++ {
		txns = append(txns, txnOn(t, time.Weekday(i%7), 10, fmt.Sprintf("Cat%d", i)))
	}
	// Make one category dominate.
	txns = append(txns, txnOn(t, time.Monday, 1000, "Rent"))

	got := Analyze(prev, txns, today)

	require.Len(t, got.TopCategories, 5, "ranking is capped at five")
	assert.Equal(t, "Rent", got.TopCategories[0].Category)
	assert.True(t, got.TopCategories[0].AvgMonthly.Equal(dec(1000)))
	for _, c := range got.TopCategories {
		assert.Equal(t, entity.TrendStable, c.Trend)
	}
}

func TestAnalyzeCarriesStreak(t *testing.T) {
	prev := entity.DefaultSpendingPattern(uuid.New())
	prev.CurrentStreak = 5
	today := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)

	txns := make([]entity.Transaction, 8)
	for i := range txns {
		txns[i] = txnOn(t, time.Weekday(i%7), 100, "Food")
	}

	got := Analyze(prev, txns, today)
	assert.Equal(t, 5, got.CurrentStreak, "streak only advances at day close")
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	prev := entity.DefaultSpendingPattern(uuid.New())
	today := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)

	txns := []entity.Transaction{
		txnOn(t, time.Monday, 120, "Food"),
		txnOn(t, time.Tuesday, 80, "Transport"),
		txnOn(t, time.Wednesday, 45, "Food"),
		txnOn(t, time.Thursday, 220, "Shopping"),
		txnOn(t, time.Friday, 700, "Nightlife"),
		txnOn(t, time.Saturday, 350, "Nightlife"),
		txnOn(t, time.Sunday, 90, "Food"),
	}

	first := Analyze(prev, txns, today)
	second := Analyze(prev, txns, today)
	assert.Equal(t, first, second)
}

func TestRiskScoreBounds(t *testing.T) {
	p := entity.DefaultSpendingPattern(uuid.New())
	today := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)

	// Worst case stays within 100.
	p.HighRiskDays = []time.Weekday{today.Weekday()}
	worst := RiskScore(p, RiskInputs{
		DaysToPayday:   2,
		SafeSpendToday: dec(500),
		Balance:        dec(1000),
		SpentThisMonth: dec(900),
	}, today)
	assert.LessOrEqual(t, worst, 100)
	assert.GreaterOrEqual(t, worst, 0)

	// Best case stays at or above 0.
	best := RiskScore(entity.DefaultSpendingPattern(uuid.New()), RiskInputs{
		DaysToPayday:   20,
		SafeSpendToday: dec(50000),
		Balance:        dec(500000),
		SpentThisMonth: dec(1000),
		Streak:         10,
	}, today)
	assert.GreaterOrEqual(t, best, 0)
	assert.LessOrEqual(t, best, 100)
}

func TestRiskScoreAdjustments(t *testing.T) {
	p := entity.DefaultSpendingPattern(uuid.New())
	today := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC) // a Friday

	tests := []struct {
		name string
		in   RiskInputs
		want int
	}{
		{
			name: "payday close and safe spend tiny",
			in:   RiskInputs{DaysToPayday: 3, SafeSpendToday: dec(500), Balance: dec(10000), SpentThisMonth: dec(1000)},
			want: 50 + 20 + 25,
		},
		{
			name: "payday within a week",
			in:   RiskInputs{DaysToPayday: 6, SafeSpendToday: dec(3000), Balance: dec(10000), SpentThisMonth: dec(1000)},
			want: 50 + 10 + 10,
		},
		{
			name: "far from payday with a healthy buffer",
			in:   RiskInputs{DaysToPayday: 20, SafeSpendToday: dec(30000), Balance: dec(100000), SpentThisMonth: dec(1000)},
			want: 50 - 10 - 15,
		},
		{
			name: "long streak discounts risk",
			in:   RiskInputs{DaysToPayday: 10, SafeSpendToday: dec(10000), Balance: dec(100000), SpentThisMonth: dec(1000), Streak: 8},
			want: 50 - 15,
		},
		{
			name: "month-to-date spend above 80 percent of balance",
			in:   RiskInputs{DaysToPayday: 10, SafeSpendToday: dec(10000), Balance: dec(10000), SpentThisMonth: dec(9000)},
			want: 50 + 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RiskScore(p, tt.in, today))
		})
	}
}

func TestRiskScoreHighRiskToday(t *testing.T) {
	today := time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC)
	p := entity.DefaultSpendingPattern(uuid.New())
	p.HighRiskDays = []time.Weekday{today.Weekday()}

	in := RiskInputs{DaysToPayday: 10, SafeSpendToday: dec(10000), Balance: dec(100000), SpentThisMonth: dec(1000)}
	assert.Equal(t, 50+15, RiskScore(p, in, today))
}

func TestAdvanceStreak(t *testing.T) {
	assert.Equal(t, 1, AdvanceStreak(0, dec(100), dec(200)))
	assert.Equal(t, 6, AdvanceStreak(5, dec(100), dec(200)))
	assert.Equal(t, 0, AdvanceStreak(5, dec(300), dec(200)))
	assert.Equal(t, 0, AdvanceStreak(5, dec(200), dec(200)), "spend equal to safe spend breaks the streak")
}
