// Package alert implements the proactive alert generator: a small decision
// table evaluated against the current financial state and spending pattern.
// Each rule is a pure function of its inputs plus the caller-supplied "now";
// rules return nil when they do not apply and never error. Delivery,
// scheduling and debouncing belong to the caller.
package alert

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/playbookTV/Kora/internal/domain/engine/safespend"
	"github.com/playbookTV/Kora/internal/domain/entity"
)

// Config holds the tunable alert thresholds and local-time windows.
type Config struct {
	// DangerZoneThreshold is the safe-spend level below which the danger
	// zone rule fires when payday is near.
	DangerZoneThreshold decimal.Decimal

	// EveningStartHour/EveningEndHour bound the Friday weekend-warning
	// window (inclusive start, exclusive end).
	EveningStartHour int
	EveningEndHour   int

	// MorningStartHour/MorningEndHour bound the payday check-in window.
	MorningStartHour int
	MorningEndHour   int
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		DangerZoneThreshold: decimal.NewFromInt(5000),
		EveningStartHour:    18,
		EveningEndHour:      23,
		MorningStartHour:    6,
		MorningEndHour:      10,
	}
}

// Evaluate runs the decision table in fixed priority order
// (danger zone, then weekend warning, then payday check-in) and returns
// the first applicable alert, or nil when none fire.
func Evaluate(state safespend.State, p entity.SpendingPattern, now time.Time, cfg Config) *entity.Alert {
	if a := DangerZone(state, cfg); a != nil {
		return a
	}
	if a := WeekendWarning(state, p, now, cfg); a != nil {
		return a
	}
	if a := PaydayCheckin(state, now, cfg); a != nil {
		return a
	}
	return nil
}

// DangerZone fires when few days remain to payday and safe spend has
// dropped below the configured threshold.
func DangerZone(state safespend.State, cfg Config) *entity.Alert {
	if state.DaysToPayday > 7 || state.SafeSpendToday.GreaterThanOrEqual(cfg.DangerZoneThreshold) {
		return nil
	}

	return &entity.Alert{
		Type:  entity.AlertDangerZone,
		Title: "Danger zone",
		Body:  "Money is tight until payday.",
		Data: map[string]string{
			"balance":          state.Balance.String(),
			"days_to_payday":   strconv.Itoa(state.DaysToPayday),
			"safe_spend_today": state.SafeSpendToday.String(),
		},
	}
}

// WeekendWarning fires on Friday evenings for users with a weekend
// overspending pattern. The suggested limit spreads safe spend across the
// weekend, capped by the days actually left before payday.
func WeekendWarning(state safespend.State, p entity.SpendingPattern, now time.Time, cfg Config) *entity.Alert {
	if now.Weekday() != time.Friday {
		return nil
	}
	if now.Hour() < cfg.EveningStartHour || now.Hour() >= cfg.EveningEndHour {
		return nil
	}
	if !p.HasTrigger(entity.TriggerWeekendSpending) {
		return nil
	}

	days := state.DaysToPayday
	if days > 3 {
		days = 3
	}
	limit := state.SafeSpendToday.Mul(decimal.NewFromInt(int64(days)))

	return &entity.Alert{
		Type:  entity.AlertWeekendWarning,
		Title: "Weekend ahead",
		Body:  "Weekends are where your budget slips.",
		Data: map[string]string{
			"suggested_limit":  limit.String(),
			"safe_spend_today": state.SafeSpendToday.String(),
			"days_to_payday":   strconv.Itoa(state.DaysToPayday),
		},
	}
}

// PaydayCheckin fires on the morning of payday with the flexible income
// figure for the fresh month.
func PaydayCheckin(state safespend.State, now time.Time, cfg Config) *entity.Alert {
	if now.Day() != state.PaydayDay {
		return nil
	}
	if now.Hour() < cfg.MorningStartHour || now.Hour() >= cfg.MorningEndHour {
		return nil
	}

	return &entity.Alert{
		Type:  entity.AlertPaydayCheckin,
		Title: "Payday check-in",
		Body:  "You just got paid. Here is your flexible income.",
		Data: map[string]string{
			"flexible_income": state.FlexibleIncome.String(),
			"total_fixed":     state.TotalFixed.String(),
		},
	}
}

// LimitFollowUp builds the follow-up payload for a previously set spending
// limit. It is only ever caller-triggered: the generator never decides on
// its own to revisit a limit.
func LimitFollowUp(limit, actualSpent decimal.Decimal) *entity.Alert {
	diff := limit.Sub(actualSpent)
	wasUnder := diff.GreaterThanOrEqual(decimal.Zero)

	data := map[string]string{
		"limit":     limit.String(),
		"spent":     actualSpent.String(),
		"was_under": "false",
	}
	if wasUnder {
		data["was_under"] = "true"
		data["under_by"] = diff.String()
	} else {
		data["over_by"] = diff.Neg().String()
	}

	return &entity.Alert{
		Type:  entity.AlertLimitFollowup,
		Title: "Limit follow-up",
		Body:  "Checking in on the limit you set.",
		Data:  data,
	}
}

