package safespend

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playbookTV/Kora/internal/domain/entity"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func intPtr(v int) *int { return &v }

func expense(name string, amount int64, dueDay *int) entity.FixedExpense {
	return entity.FixedExpense{
		ID:     uuid.New(),
		Name:   name,
		Amount: dec(amount),
		DueDay: dueDay,
	}
}

func TestTotalFixed(t *testing.T) {
	assert.True(t, TotalFixed(nil).IsZero())
	assert.True(t, TotalFixed([]entity.FixedExpense{}).IsZero())

	expenses := []entity.FixedExpense{
		expense("rent", 1400, intPtr(1)),
		expense("internet", 100, nil),
	}
	assert.True(t, TotalFixed(expenses).Equal(dec(1500)))
}

func TestUpcomingBillsSameMonthWindow(t *testing.T) {
	today := date(2025, time.June, 10)
	expenses := []entity.FixedExpense{
		expense("due today", 100, intPtr(10)),       // excluded: boundary
		expense("due on payday", 200, intPtr(25)),   // excluded: boundary
		expense("inside window", 300, intPtr(15)),   // included
		expense("already due", 400, intPtr(5)),      // excluded: passed
		expense("no due day", 500, nil),             // excluded: untracked
		expense("after payday", 600, intPtr(28)),    // excluded: after payday
	}

	got, err := UpcomingBills(expenses, today, 25)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec(300)), "got %s", got)
}

func TestUpcomingBillsWrapAroundWindow(t *testing.T) {
	// Payday already passed this month; window covers the rest of this
	// month plus the early part of next month before payday.
	today := date(2025, time.June, 27)
	expenses := []entity.FixedExpense{
		expense("later this month", 100, intPtr(29)), // included
		expense("early next month", 200, intPtr(3)),  // included
		expense("due on payday", 300, intPtr(21)),    // excluded
		expense("due today", 400, intPtr(27)),        // excluded: boundary
		expense("mid next month", 500, intPtr(22)),   // excluded: after payday
	}

	got, err := UpcomingBills(expenses, today, 21)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec(300)), "got %s", got)
}

func TestSafeSpendTodayShortCircuit(t *testing.T) {
	// One day to payday: the full balance is available, no averaging.
	expenses := []entity.FixedExpense{expense("rent", 1400, intPtr(1))}

	got, err := SafeSpendToday(dec(200), expenses, date(2025, time.June, 20), 21)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec(200)), "got %s", got)

	// Payday is today: same short-circuit.
	got, err = SafeSpendToday(dec(5000), expenses, date(2025, time.June, 21), 21)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec(5000)), "got %s", got)
}

func TestSafeSpendTodayAverages(t *testing.T) {
	// No due-dates tracked: nothing reserved, plain division rounded down.
	expenses := []entity.FixedExpense{
		expense("rent", 1400, nil),
		expense("power", 90, nil),
	}

	got, err := SafeSpendToday(dec(1630), expenses, date(2025, time.June, 12), 21)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec(181)), "floor(1630/9) = 181, got %s", got)
}

func TestSafeSpendTodayReservesUpcomingBills(t *testing.T) {
	expenses := []entity.FixedExpense{expense("rent", 500, intPtr(15))}

	// 10 days to payday, 500 reserved: floor((1630-500)/10) = 113.
	got, err := SafeSpendToday(dec(1630), expenses, date(2025, time.June, 11), 21)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec(113)), "got %s", got)
}

func TestSafeSpendTodayNeverNegative(t *testing.T) {
	expenses := []entity.FixedExpense{expense("rent", 5000, intPtr(15))}

	got, err := SafeSpendToday(dec(100), expenses, date(2025, time.June, 10), 21)
	require.NoError(t, err)
	assert.True(t, got.IsZero(), "got %s", got)

	got, err = SafeSpendToday(decimal.Zero, nil, date(2025, time.June, 10), 21)
	require.NoError(t, err)
	assert.True(t, got.GreaterThanOrEqual(decimal.Zero))
}

func TestSafeSpendTodayInvalidPayday(t *testing.T) {
	_, err := SafeSpendToday(dec(100), nil, date(2025, time.June, 10), 0)
	assert.Error(t, err)
}

func TestFlexibleRemaining(t *testing.T) {
	got := FlexibleRemaining(dec(300000), dec(120000), dec(50000))
	assert.True(t, got.Equal(dec(130000)))

	// Deliberately not clamped: overspend shows as a negative remainder.
	got = FlexibleRemaining(dec(100000), dec(60000), dec(70000))
	assert.True(t, got.Equal(dec(-30000)))
}

func TestComputeRequiresPayday(t *testing.T) {
	profile := entity.UserFinancialProfile{
		ID:             uuid.New(),
		CurrentBalance: dec(1000),
	}

	_, err := Compute(profile, decimal.Zero, date(2025, time.June, 12))
	assert.Error(t, err)
}

func TestComputeFullState(t *testing.T) {
	income := dec(250000)
	profile := entity.UserFinancialProfile{
		ID:             uuid.New(),
		Income:         &income,
		Payday:         intPtr(21),
		CurrentBalance: dec(1630),
		FixedExpenses: []entity.FixedExpense{
			expense("rent", 1400, nil),
		},
	}

	state, err := Compute(profile, dec(40000), date(2025, time.June, 12))
	require.NoError(t, err)

	assert.Equal(t, 9, state.DaysToPayday)
	assert.True(t, state.UpcomingBills.IsZero())
	assert.True(t, state.SafeSpendToday.Equal(dec(181)))
	assert.True(t, state.TotalFixed.Equal(dec(1400)))
	assert.True(t, state.FlexibleIncome.Equal(dec(248600)))
	assert.True(t, state.FlexibleRemaining.Equal(dec(208600)))
}

func TestComputeIsIdempotent(t *testing.T) {
	income := dec(250000)
	profile := entity.UserFinancialProfile{
		ID:             uuid.New(),
		Income:         &income,
		Payday:         intPtr(25),
		CurrentBalance: dec(98765),
		FixedExpenses: []entity.FixedExpense{
			expense("rent", 45000, intPtr(2)),
			expense("data", 15000, intPtr(18)),
		},
	}
	today := date(2025, time.June, 10)

	first, err := Compute(profile, dec(12000), today)
	require.NoError(t, err)
	second, err := Compute(profile, dec(12000), today)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
