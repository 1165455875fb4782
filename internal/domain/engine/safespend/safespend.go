// Package safespend implements the financial state engine: the pure
// calculations that turn a profile, its fixed expenses and a balance into
// the Safe Spend Today figure and related derived metrics.
//
// Every function threads "today" as an explicit parameter, never mutates
// its inputs and never performs I/O. Identical inputs produce identical
// results on every host.
package safespend

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/playbookTV/Kora/internal/domain/engine/calendar"
	"github.com/playbookTV/Kora/internal/domain/entity"
	domainerror "github.com/playbookTV/Kora/internal/domain/error"
)

// TotalFixed sums the amounts of the given fixed expenses. An empty list
// sums to zero.
func TotalFixed(expenses []entity.FixedExpense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// UpcomingBills sums every expense whose due day falls strictly between
// today and the next payday. Bills due exactly today or exactly on payday
// are excluded: the former is already due, the latter is covered by the
// incoming pay. Expenses without a tracked due day cannot be scheduled and
// are skipped.
func UpcomingBills(expenses []entity.FixedExpense, today time.Time, paydayDay int) (decimal.Decimal, error) {
	if err := calendar.ValidatePaydayDay(paydayDay); err != nil {
		return decimal.Zero, err
	}

	currentDay := today.Day()
	total := decimal.Zero
	for _, e := range expenses {
		if e.DueDay == nil {
			continue
		}
		due := *e.DueDay
		if currentDay < paydayDay {
			// Same-month window: (currentDay, paydayDay) exclusive on both ends.
			if due > currentDay && due < paydayDay {
				total = total.Add(e.Amount)
			}
		} else {
			// Wrap-around window: rest of this month, or early next month
			// before payday.
			if due > currentDay || due < paydayDay {
				total = total.Add(e.Amount)
			}
		}
	}
	return total, nil
}

// SafeSpendToday computes the maximum amount that can be spent today
// without jeopardizing bills due before the next payday.
//
// With at most one day to payday the whole balance is available; averaging
// over less than one day is meaningless. Otherwise the upcoming bills are
// reserved out of the balance and the remainder is spread evenly over the
// days left, rounded down so the figure never authorizes overspending.
func SafeSpendToday(balance decimal.Decimal, expenses []entity.FixedExpense, today time.Time, paydayDay int) (decimal.Decimal, error) {
	days, err := calendar.DaysToPayday(today, paydayDay)
	if err != nil {
		return decimal.Zero, err
	}

	if days <= 1 {
		return balance, nil
	}

	bills, err := UpcomingBills(expenses, today, paydayDay)
	if err != nil {
		return decimal.Zero, err
	}

	effective := balance.Sub(bills)
	if effective.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}

	return effective.Div(decimal.NewFromInt(int64(days))).Floor(), nil
}

// FlexibleRemaining returns income minus fixed expenses minus month-to-date
// spending. The result is deliberately not clamped: a negative value is the
// signal callers use to warn that the flexible budget is exhausted.
func FlexibleRemaining(income, totalFixed, spentThisMonth decimal.Decimal) decimal.Decimal {
	return income.Sub(totalFixed).Sub(spentThisMonth)
}

// State is the complete financial snapshot computed from a single
// timestamp. Bill windowing and payday distance always agree about whether
// payday has passed because both derive from the same "today".
type State struct {
	Today             time.Time
	PaydayDay         int
	DaysToPayday      int
	Balance           decimal.Decimal
	TotalFixed        decimal.Decimal
	UpcomingBills     decimal.Decimal
	SafeSpendToday    decimal.Decimal
	FlexibleIncome    decimal.Decimal
	FlexibleRemaining decimal.Decimal
	SpentThisMonth    decimal.Decimal
}

// Compute derives the full financial state for a profile. The profile must
// have a payday configured; income is optional and leaves the flexible
// figures at zero when unset.
func Compute(profile entity.UserFinancialProfile, spentThisMonth decimal.Decimal, today time.Time) (State, error) {
	if profile.Payday == nil {
		return State{}, domainerror.NewEngineError(
			domainerror.ErrCodePaydayNotSet,
			"cannot compute safe spend without a payday",
			domainerror.ErrPaydayNotSet,
		)
	}
	paydayDay := *profile.Payday

	days, err := calendar.DaysToPayday(today, paydayDay)
	if err != nil {
		return State{}, err
	}

	bills, err := UpcomingBills(profile.FixedExpenses, today, paydayDay)
	if err != nil {
		return State{}, err
	}

	safe, err := SafeSpendToday(profile.CurrentBalance, profile.FixedExpenses, today, paydayDay)
	if err != nil {
		return State{}, err
	}

	totalFixed := TotalFixed(profile.FixedExpenses)

	state := State{
		Today:          today,
		PaydayDay:      paydayDay,
		DaysToPayday:   days,
		Balance:        profile.CurrentBalance,
		TotalFixed:     totalFixed,
		UpcomingBills:  bills,
		SafeSpendToday: safe,
		SpentThisMonth: spentThisMonth,
	}

	if profile.Income != nil {
		state.FlexibleIncome = profile.Income.Sub(totalFixed)
		state.FlexibleRemaining = FlexibleRemaining(*profile.Income, totalFixed, spentThisMonth)
	}

	return state, nil
}
