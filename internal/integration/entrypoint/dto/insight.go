// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/playbookTV/Kora/internal/domain/engine/safespend"
	"github.com/playbookTV/Kora/internal/domain/entity"
)

// FinancialStateResponse represents the computed state snapshot for a user.
type FinancialStateResponse struct {
	Today             string `json:"today"`
	PaydayDay         int    `json:"payday_day"`
	DaysToPayday      int    `json:"days_to_payday"`
	Balance           string `json:"balance"`
	TotalFixed        string `json:"total_fixed"`
	UpcomingBills     string `json:"upcoming_bills"`
	SafeSpendToday    string `json:"safe_spend_today"`
	FlexibleIncome    string `json:"flexible_income"`
	FlexibleRemaining string `json:"flexible_remaining"`
	SpentThisMonth    string `json:"spent_this_month"`
	RiskScore         int    `json:"risk_score"`
	Streak            int    `json:"streak"`
}

// CategorySpendResponse represents one category aggregate in the pattern.
type CategorySpendResponse struct {
	Category   string `json:"category"`
	AvgMonthly string `json:"avg_monthly"`
	Trend      string `json:"trend"`
}

// SpendingPatternResponse represents the behavioral pattern snapshot.
type SpendingPatternResponse struct {
	AvgDailySpend     string                  `json:"avg_daily_spend"`
	AvgWeekendSpend   string                  `json:"avg_weekend_spend"`
	AvgWeekdaySpend   string                  `json:"avg_weekday_spend"`
	HighRiskDays      []string                `json:"high_risk_days"`
	OverspendTriggers []string                `json:"overspend_triggers"`
	TopCategories     []CategorySpendResponse `json:"top_categories"`
	RiskScore         int                     `json:"risk_score"`
	CurrentStreak     int                     `json:"current_streak"`
	AnalyzedAt        time.Time               `json:"analyzed_at"`
}

// CloseDayResponse represents the outcome of settling a day's streak.
type CloseDayResponse struct {
	Streak    int    `json:"streak"`
	StayedIn  bool   `json:"stayed_in"`
	DaySpend  string `json:"day_spend"`
	SafeSpend string `json:"safe_spend"`
}

// ToFinancialStateResponse converts a computed state, risk score and streak
// into the API response.
func ToFinancialStateResponse(state safespend.State, riskScore, streak int) FinancialStateResponse {
	return FinancialStateResponse{
		Today:             state.Today.Format("2006-01-02"),
		PaydayDay:         state.PaydayDay,
		DaysToPayday:      state.DaysToPayday,
		Balance:           state.Balance.String(),
		TotalFixed:        state.TotalFixed.String(),
		UpcomingBills:     state.UpcomingBills.String(),
		SafeSpendToday:    state.SafeSpendToday.String(),
		FlexibleIncome:    state.FlexibleIncome.String(),
		FlexibleRemaining: state.FlexibleRemaining.String(),
		SpentThisMonth:    state.SpentThisMonth.String(),
		RiskScore:         riskScore,
		Streak:            streak,
	}
}

// ToSpendingPatternResponse converts a domain SpendingPattern to its DTO.
func ToSpendingPatternResponse(pattern *entity.SpendingPattern) SpendingPatternResponse {
	highRisk := make([]string, 0, len(pattern.HighRiskDays))
	for _, day := range pattern.HighRiskDays {
		highRisk = append(highRisk, day.String())
	}

	categories := make([]CategorySpendResponse, 0, len(pattern.TopCategories))
	for _, category := range pattern.TopCategories {
		categories = append(categories, CategorySpendResponse{
			Category:   category.Category,
			AvgMonthly: category.AvgMonthly.String(),
			Trend:      string(category.Trend),
		})
	}

	triggers := pattern.OverspendTriggers
	if triggers == nil {
		triggers = []string{}
	}

	return SpendingPatternResponse{
		AvgDailySpend:     pattern.AvgDailySpend.String(),
		AvgWeekendSpend:   pattern.AvgWeekendSpend.String(),
		AvgWeekdaySpend:   pattern.AvgWeekdaySpend.String(),
		HighRiskDays:      highRisk,
		OverspendTriggers: triggers,
		TopCategories:     categories,
		RiskScore:         pattern.RiskScore,
		CurrentStreak:     pattern.CurrentStreak,
		AnalyzedAt:        pattern.AnalyzedAt,
	}
}
