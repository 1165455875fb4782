// Package pattern implements the spending pattern analyzer: behavioral
// signals derived from a transaction history, the additive risk score and
// the under-safe-spend day streak.
//
// Analysis is a single fold over the transaction list; no mutable
// accumulator escapes. The same transactions and the same "today" always
// yield the same pattern.
package pattern

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/playbookTV/Kora/internal/domain/entity"
)

const (
	// minTransactions is the minimum history size for a meaningful analysis.
	// Below it the previous pattern is returned unchanged rather than
	// overwritten with noise.
	minTransactions = 7

	// highRiskMultiplier flags weekdays whose average exceeds this multiple
	// of the mean weekday average. Fixed policy threshold, not derived.
	highRiskMultiplier = "1.3"

	// weekendTriggerMultiplier flags weekend overspending when the weekend
	// average exceeds this multiple of the weekday average.
	weekendTriggerMultiplier = "1.5"

	// topCategoryLimit bounds the category ranking.
	topCategoryLimit = 5
)

// weekendDays groups Friday with the calendar weekend for risk purposes.
var weekendDays = map[time.Weekday]bool{
	time.Friday:   true,
	time.Saturday: true,
	time.Sunday:   true,
}

// Analyze derives a fresh SpendingPattern from the transaction history.
// With fewer than seven transactions the previous pattern is returned
// unchanged. The current streak is carried over from prev; it only
// advances through AdvanceStreak at day close.
func Analyze(prev entity.SpendingPattern, txns []entity.Transaction, today time.Time) entity.SpendingPattern {
	if len(txns) < minTransactions {
		return prev
	}

	byWeekday := map[time.Weekday]bucket{}
	byCategory := map[string]bucket{}
	days := map[string]bool{}
	weekendTotal, weekdayTotal := decimal.Zero, decimal.Zero
	var weekendCount, weekdayCount int64
	grandTotal := decimal.Zero

	for _, t := range txns {
		wd := t.Date.Weekday()
		b := byWeekday[wd]
		b.total = b.total.Add(t.Amount)
		b.count++
		byWeekday[wd] = b

		c := byCategory[t.Category]
		c.total = c.total.Add(t.Amount)
		c.count++
		byCategory[t.Category] = c

		if weekendDays[wd] {
			weekendTotal = weekendTotal.Add(t.Amount)
			weekendCount++
		} else {
			weekdayTotal = weekdayTotal.Add(t.Amount)
			weekdayCount++
		}

		grandTotal = grandTotal.Add(t.Amount)
		days[t.Date.Format("2006-01-02")] = true
	}

	avgByWeekday := make(map[time.Weekday]decimal.Decimal, 7)
	sumOfAverages := decimal.Zero
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		avg := decimal.Zero
		if b, ok := byWeekday[wd]; ok && b.count > 0 {
			avg = b.total.Div(decimal.NewFromInt(b.count))
		}
		avgByWeekday[wd] = avg
		sumOfAverages = sumOfAverages.Add(avg)
	}
	meanOfAverages := sumOfAverages.Div(decimal.NewFromInt(7))

	riskThreshold := meanOfAverages.Mul(decimal.RequireFromString(highRiskMultiplier))
	var highRiskDays []time.Weekday
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if avgByWeekday[wd].GreaterThan(riskThreshold) && avgByWeekday[wd].GreaterThan(decimal.Zero) {
			highRiskDays = append(highRiskDays, wd)
		}
	}

	avgWeekend := decimal.Zero
	if weekendCount > 0 {
		avgWeekend = weekendTotal.Div(decimal.NewFromInt(weekendCount))
	}
	avgWeekday := decimal.Zero
	if weekdayCount > 0 {
		avgWeekday = weekdayTotal.Div(decimal.NewFromInt(weekdayCount))
	}

	var triggers []string
	if avgWeekend.GreaterThan(avgWeekday.Mul(decimal.RequireFromString(weekendTriggerMultiplier))) {
		triggers = append(triggers, entity.TriggerWeekendSpending)
	}
	for _, d := range highRiskDays {
		if d == time.Friday {
			triggers = append(triggers, entity.TriggerFridayEvening)
			break
		}
	}

	avgDaily := decimal.Zero
	if len(days) > 0 {
		avgDaily = grandTotal.Div(decimal.NewFromInt(int64(len(days))))
	}

	return entity.SpendingPattern{
		UserID:            prev.UserID,
		AvgDailySpend:     avgDaily,
		AvgWeekendSpend:   avgWeekend,
		AvgWeekdaySpend:   avgWeekday,
		AvgByWeekday:      avgByWeekday,
		HighRiskDays:      highRiskDays,
		OverspendTriggers: triggers,
		TopCategories:     topCategories(byCategory),
		RiskScore:         prev.RiskScore,
		CurrentStreak:     prev.CurrentStreak,
		AnalyzedAt:        today,
	}
}

// bucket accumulates a running total and count during the analysis fold.
type bucket struct {
	total decimal.Decimal
	count int64
}

// topCategories ranks categories by total spend, descending, capped at
// five. Trend stays "stable" until month-over-month history is modeled.
func topCategories(byCategory map[string]bucket) []entity.CategorySpend {
	ranked := make([]entity.CategorySpend, 0, len(byCategory))
	for cat, b := range byCategory {
		ranked = append(ranked, entity.CategorySpend{
			Category:   cat,
			AvgMonthly: b.total,
			Trend:      entity.TrendStable,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].AvgMonthly.Equal(ranked[j].AvgMonthly) {
			return ranked[i].Category < ranked[j].Category
		}
		return ranked[i].AvgMonthly.GreaterThan(ranked[j].AvgMonthly)
	})

	if len(ranked) > topCategoryLimit {
		ranked = ranked[:topCategoryLimit]
	}
	return ranked
}
