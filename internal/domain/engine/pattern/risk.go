package pattern

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/playbookTV/Kora/internal/domain/entity"
)

// RiskInputs carries the financial context the risk score is judged
// against. All values come from the same snapshot as "today".
type RiskInputs struct {
	DaysToPayday   int
	SafeSpendToday decimal.Decimal
	Balance        decimal.Decimal
	SpentThisMonth decimal.Decimal
	Streak         int
}

const riskBase = 50

// RiskScore computes the 0-100 overspend risk heuristic: a base of 50 with
// additive threshold adjustments. Intentionally simple and auditable, not a
// statistical model; the same inputs and "today" always reproduce the same
// score.
func RiskScore(p entity.SpendingPattern, in RiskInputs, today time.Time) int {
	score := riskBase

	switch {
	case in.DaysToPayday <= 3:
		score += 20
	case in.DaysToPayday <= 7:
		score += 10
	case in.DaysToPayday > 14:
		score -= 10
	}

	switch {
	case in.SafeSpendToday.LessThan(decimal.NewFromInt(1000)):
		score += 25
	case in.SafeSpendToday.LessThan(decimal.NewFromInt(5000)):
		score += 10
	case in.SafeSpendToday.GreaterThan(decimal.NewFromInt(20000)):
		score -= 15
	}

	if p.IsHighRiskDay(today.Weekday()) {
		score += 15
	}

	if in.Balance.GreaterThan(decimal.Zero) &&
		in.SpentThisMonth.GreaterThan(in.Balance.Mul(decimal.RequireFromString("0.8"))) {
		score += 20
	}

	switch {
	case in.Streak >= 7:
		score -= 15
	case in.Streak >= 3:
		score -= 5
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// AdvanceStreak returns the new streak after a day closes: incremented when
// the day's spend stayed under its Safe Spend figure, reset to zero
// otherwise. The caller is responsible for invoking this once per elapsed
// day; the analyzer holds no timer.
func AdvanceStreak(streak int, spent, safeSpend decimal.Decimal) int {
	if spent.LessThan(safeSpend) {
		return streak + 1
	}
	return 0
}
