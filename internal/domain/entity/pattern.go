// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Overspend trigger identifiers surfaced by the pattern analyzer.
const (
	TriggerWeekendSpending = "weekend_spending"
	TriggerFridayEvening   = "friday_evening"
)

// CategoryTrend describes the direction of a category's spend over time.
// Trend computation needs month-over-month history that is not modeled yet,
// so the analyzer emits "stable" for every category.
type CategoryTrend string

const (
	TrendStable CategoryTrend = "stable"
	TrendUp     CategoryTrend = "up"
	TrendDown   CategoryTrend = "down"
)

// CategorySpend is one entry of the top-categories ranking.
type CategorySpend struct {
	Category   string
	AvgMonthly decimal.Decimal
	Trend      CategoryTrend
}

// SpendingPattern is the derived behavioral snapshot of a user's transaction
// history. It is a recomputable cache: analyzing the same transaction list
// with the same "today" always produces the same pattern.
type SpendingPattern struct {
	UserID            uuid.UUID
	AvgDailySpend     decimal.Decimal
	AvgWeekendSpend   decimal.Decimal
	AvgWeekdaySpend   decimal.Decimal
	AvgByWeekday      map[time.Weekday]decimal.Decimal
	HighRiskDays      []time.Weekday
	OverspendTriggers []string
	TopCategories     []CategorySpend
	RiskScore         int // 0-100, higher = riskier
	CurrentStreak     int // consecutive days closed under Safe Spend
	AnalyzedAt        time.Time
}

// DefaultSpendingPattern returns the neutral pattern used before enough
// transaction history exists to analyze.
func DefaultSpendingPattern(userID uuid.UUID) SpendingPattern {
	return SpendingPattern{
		UserID:          userID,
		AvgDailySpend:   decimal.Zero,
		AvgWeekendSpend: decimal.Zero,
		AvgWeekdaySpend: decimal.Zero,
		AvgByWeekday:    map[time.Weekday]decimal.Decimal{},
		RiskScore:       50,
	}
}

// HasTrigger reports whether the given overspend trigger is present.
func (p SpendingPattern) HasTrigger(trigger string) bool {
	for _, t := range p.OverspendTriggers {
		if t == trigger {
			return true
		}
	}
	return false
}

// IsHighRiskDay reports whether the given weekday is flagged high-risk.
func (p SpendingPattern) IsHighRiskDay(day time.Weekday) bool {
	for _, d := range p.HighRiskDays {
		if d == day {
			return true
		}
	}
	return false
}
