// Package model defines database models for persistence layer.
package model

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/playbookTV/Kora/internal/domain/entity"
)

// PatternModel represents the spending_patterns table in the database.
// The per-weekday breakdown, risk day list, triggers and category ranking
// are stored as JSON so the analyzer's output round-trips without schema
// churn.
type PatternModel struct {
	UserID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AvgDailySpend     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	AvgWeekendSpend   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	AvgWeekdaySpend   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	AvgByWeekday      string          `gorm:"type:jsonb;not null;default:'{}'"`
	HighRiskDays      string          `gorm:"type:jsonb;not null;default:'[]'"`
	OverspendTriggers string          `gorm:"type:jsonb;not null;default:'[]'"`
	TopCategories     string          `gorm:"type:jsonb;not null;default:'[]'"`
	RiskScore         int             `gorm:"not null;default:50"`
	CurrentStreak     int             `gorm:"not null;default:0"`
	AnalyzedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for the PatternModel.
func (PatternModel) TableName() string {
	return "spending_patterns"
}

// categorySpendJSON is the serialized form of a ranked category.
type categorySpendJSON struct {
	Category   string          `json:"category"`
	AvgMonthly decimal.Decimal `json:"avg_monthly"`
	Trend      string          `json:"trend"`
}

// ToEntity converts a PatternModel to a domain SpendingPattern entity.
func (m *PatternModel) ToEntity() *entity.SpendingPattern {
	p := entity.DefaultSpendingPattern(m.UserID)
	p.AvgDailySpend = m.AvgDailySpend
	p.AvgWeekendSpend = m.AvgWeekendSpend
	p.AvgWeekdaySpend = m.AvgWeekdaySpend
	p.RiskScore = m.RiskScore
	p.CurrentStreak = m.CurrentStreak
	p.AnalyzedAt = m.AnalyzedAt

	var byWeekday map[int]decimal.Decimal
	if err := json.Unmarshal([]byte(m.AvgByWeekday), &byWeekday); err != nil {
		slog.Warn("Failed to unmarshal weekday averages", "error", err, "user_id", m.UserID)
	}
	p.AvgByWeekday = make(map[time.Weekday]decimal.Decimal, len(byWeekday))
	for day, avg := range byWeekday {
		p.AvgByWeekday[time.Weekday(day)] = avg
	}

	var riskDays []int
	if err := json.Unmarshal([]byte(m.HighRiskDays), &riskDays); err != nil {
		slog.Warn("Failed to unmarshal high risk days", "error", err, "user_id", m.UserID)
	}
	p.HighRiskDays = make([]time.Weekday, 0, len(riskDays))
	for _, day := range riskDays {
		p.HighRiskDays = append(p.HighRiskDays, time.Weekday(day))
	}

	if err := json.Unmarshal([]byte(m.OverspendTriggers), &p.OverspendTriggers); err != nil {
		slog.Warn("Failed to unmarshal overspend triggers", "error", err, "user_id", m.UserID)
	}

	var categories []categorySpendJSON
	if err := json.Unmarshal([]byte(m.TopCategories), &categories); err != nil {
		slog.Warn("Failed to unmarshal top categories", "error", err, "user_id", m.UserID)
	}
	p.TopCategories = make([]entity.CategorySpend, 0, len(categories))
	for _, c := range categories {
		p.TopCategories = append(p.TopCategories, entity.CategorySpend{
			Category:   c.Category,
			AvgMonthly: c.AvgMonthly,
			Trend:      entity.CategoryTrend(c.Trend),
		})
	}

	return &p
}

// PatternFromEntity creates a PatternModel from a domain SpendingPattern entity.
func PatternFromEntity(p *entity.SpendingPattern) *PatternModel {
	byWeekday := make(map[int]decimal.Decimal, len(p.AvgByWeekday))
	for day, avg := range p.AvgByWeekday {
		byWeekday[int(day)] = avg
	}

	riskDays := make([]int, 0, len(p.HighRiskDays))
	for _, day := range p.HighRiskDays {
		riskDays = append(riskDays, int(day))
	}

	categories := make([]categorySpendJSON, 0, len(p.TopCategories))
	for _, c := range p.TopCategories {
		categories = append(categories, categorySpendJSON{
			Category:   c.Category,
			AvgMonthly: c.AvgMonthly,
			Trend:      string(c.Trend),
		})
	}

	return &PatternModel{
		UserID:            p.UserID,
		AvgDailySpend:     p.AvgDailySpend,
		AvgWeekendSpend:   p.AvgWeekendSpend,
		AvgWeekdaySpend:   p.AvgWeekdaySpend,
		AvgByWeekday:      marshalOrEmpty(byWeekday, "{}"),
		HighRiskDays:      marshalOrEmpty(riskDays, "[]"),
		OverspendTriggers: marshalOrEmpty(p.OverspendTriggers, "[]"),
		TopCategories:     marshalOrEmpty(categories, "[]"),
		RiskScore:         p.RiskScore,
		CurrentStreak:     p.CurrentStreak,
		AnalyzedAt:        p.AnalyzedAt,
	}
}

// marshalOrEmpty serializes v, falling back to the given empty literal.
func marshalOrEmpty(v any, empty string) string {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("Failed to marshal pattern field", "error", err)
		return empty
	}
	return string(data)
}
