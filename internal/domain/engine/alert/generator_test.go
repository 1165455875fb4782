package alert

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playbookTV/Kora/internal/domain/engine/safespend"
	"github.com/playbookTV/Kora/internal/domain/entity"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// fridayEvening is 2025-06-20 19:00 UTC, a Friday inside the default
// evening window.
var fridayEvening = time.Date(2025, time.June, 20, 19, 0, 0, 0, time.UTC)

func tightState() safespend.State {
	return safespend.State{
		Today:          fridayEvening,
		PaydayDay:      25,
		DaysToPayday:   5,
		Balance:        dec(9000),
		SafeSpendToday: dec(1800),
		TotalFixed:     dec(120000),
		FlexibleIncome: dec(130000),
	}
}

func TestDangerZone(t *testing.T) {
	cfg := DefaultConfig()

	a := DangerZone(tightState(), cfg)
	require.NotNil(t, a)
	assert.Equal(t, entity.AlertDangerZone, a.Type)
	assert.Equal(t, "9000", a.Data["balance"])
	assert.Equal(t, "5", a.Data["days_to_payday"])
	assert.Equal(t, "1800", a.Data["safe_spend_today"])

	// Comfortable safe spend: no alert.
	state := tightState()
	state.SafeSpendToday = dec(5000)
	assert.Nil(t, DangerZone(state, cfg), "threshold boundary is exclusive")

	// Payday too far out: no alert even with a tiny safe spend.
	state = tightState()
	state.DaysToPayday = 8
	assert.Nil(t, DangerZone(state, cfg))
}

func TestWeekendWarning(t *testing.T) {
	cfg := DefaultConfig()
	p := entity.DefaultSpendingPattern(uuid.New())
	p.OverspendTriggers = []string{entity.TriggerWeekendSpending}

	state := tightState()
	state.SafeSpendToday = dec(6000) // out of the danger zone

	a := WeekendWarning(state, p, fridayEvening, cfg)
	require.NotNil(t, a)
	assert.Equal(t, entity.AlertWeekendWarning, a.Type)
	// min(3, daysToPayday=5) = 3 days of safe spend.
	assert.Equal(t, "18000", a.Data["suggested_limit"])

	// Limit is capped by days left before payday.
	state.DaysToPayday = 2
	a = WeekendWarning(state, p, fridayEvening, cfg)
	require.NotNil(t, a)
	assert.Equal(t, "12000", a.Data["suggested_limit"])

	// Not a Friday.
	thursday := fridayEvening.AddDate(0, 0, -1)
	assert.Nil(t, WeekendWarning(state, p, thursday, cfg))

	// Friday afternoon, outside the evening window.
	afternoon := time.Date(2025, time.June, 20, 15, 0, 0, 0, time.UTC)
	assert.Nil(t, WeekendWarning(state, p, afternoon, cfg))

	// No weekend overspending pattern.
	calm := entity.DefaultSpendingPattern(uuid.New())
	assert.Nil(t, WeekendWarning(state, calm, fridayEvening, cfg))
}

func TestPaydayCheckin(t *testing.T) {
	cfg := DefaultConfig()
	state := tightState()

	paydayMorning := time.Date(2025, time.June, 25, 8, 0, 0, 0, time.UTC)
	a := PaydayCheckin(state, paydayMorning, cfg)
	require.NotNil(t, a)
	assert.Equal(t, entity.AlertPaydayCheckin, a.Type)
	assert.Equal(t, "130000", a.Data["flexible_income"])
	assert.Equal(t, "120000", a.Data["total_fixed"])

	// Wrong day of month.
	assert.Nil(t, PaydayCheckin(state, fridayEvening, cfg))

	// Payday but outside the morning window.
	paydayNoon := time.Date(2025, time.June, 25, 12, 0, 0, 0, time.UTC)
	assert.Nil(t, PaydayCheckin(state, paydayNoon, cfg))
}

func TestEvaluatePriorityOrder(t *testing.T) {
	cfg := DefaultConfig()
	p := entity.DefaultSpendingPattern(uuid.New())
	p.OverspendTriggers = []string{entity.TriggerWeekendSpending}

	// Danger zone and weekend warning both apply on a tight Friday
	// evening; danger zone wins.
	state := tightState()
	a := Evaluate(state, p, fridayEvening, cfg)
	require.NotNil(t, a)
	assert.Equal(t, entity.AlertDangerZone, a.Type)

	// With the danger zone cleared the weekend warning surfaces.
	state.SafeSpendToday = dec(6000)
	a = Evaluate(state, p, fridayEvening, cfg)
	require.NotNil(t, a)
	assert.Equal(t, entity.AlertWeekendWarning, a.Type)

	// Nothing applies on a quiet mid-month afternoon.
	state.DaysToPayday = 12
	quiet := time.Date(2025, time.June, 13, 14, 0, 0, 0, time.UTC)
	assert.Nil(t, Evaluate(state, entity.DefaultSpendingPattern(uuid.New()), quiet, cfg))
}

func TestLimitFollowUp(t *testing.T) {
	a := LimitFollowUp(dec(15000), dec(12000))
	require.NotNil(t, a)
	assert.Equal(t, entity.AlertLimitFollowup, a.Type)
	assert.Equal(t, "true", a.Data["was_under"])
	assert.Equal(t, "3000", a.Data["under_by"])

	a = LimitFollowUp(dec(15000), dec(20000))
	assert.Equal(t, "false", a.Data["was_under"])
	assert.Equal(t, "5000", a.Data["over_by"])

	// Spending exactly the limit counts as staying under it.
	a = LimitFollowUp(dec(15000), dec(15000))
	assert.Equal(t, "true", a.Data["was_under"])
	assert.Equal(t, "0", a.Data["under_by"])
}
