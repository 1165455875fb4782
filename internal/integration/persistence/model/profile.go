// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/playbookTV/Kora/internal/domain/entity"
)

// ProfileModel represents the financial_profiles table in the database.
type ProfileModel struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID        `gorm:"type:uuid;uniqueIndex;not null"`
	Income         *decimal.Decimal `gorm:"type:decimal(15,2)"`
	Payday         *int             `gorm:"type:integer"`
	CurrentBalance decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0"`
	SavingsGoal    *decimal.Decimal `gorm:"type:decimal(15,2)"`
	CreatedAt      time.Time        `gorm:"not null"`
	UpdatedAt      time.Time        `gorm:"not null"`

	FixedExpenses []FixedExpenseModel `gorm:"foreignKey:ProfileID;references:ID"`
}

// TableName returns the table name for the ProfileModel.
func (ProfileModel) TableName() string {
	return "financial_profiles"
}

// ToEntity converts a ProfileModel to a domain UserFinancialProfile entity.
func (m *ProfileModel) ToEntity() *entity.UserFinancialProfile {
	expenses := make([]entity.FixedExpense, 0, len(m.FixedExpenses))
	for i := range m.FixedExpenses {
		expenses = append(expenses, *m.FixedExpenses[i].ToEntity())
	}

	return &entity.UserFinancialProfile{
		ID:             m.ID,
		UserID:         m.UserID,
		Income:         m.Income,
		Payday:         m.Payday,
		CurrentBalance: m.CurrentBalance,
		SavingsGoal:    m.SavingsGoal,
		FixedExpenses:  expenses,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// ProfileFromEntity creates a ProfileModel from a domain UserFinancialProfile entity.
// Fixed expenses are persisted through their own repository methods and are
// intentionally left out.
func ProfileFromEntity(profile *entity.UserFinancialProfile) *ProfileModel {
	return &ProfileModel{
		ID:             profile.ID,
		UserID:         profile.UserID,
		Income:         profile.Income,
		Payday:         profile.Payday,
		CurrentBalance: profile.CurrentBalance,
		SavingsGoal:    profile.SavingsGoal,
		CreatedAt:      profile.CreatedAt,
		UpdatedAt:      profile.UpdatedAt,
	}
}

// FixedExpenseModel represents the fixed_expenses table in the database.
type FixedExpenseModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProfileID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Name      string          `gorm:"type:varchar(100);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	DueDay    *int            `gorm:"type:integer"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the FixedExpenseModel.
func (FixedExpenseModel) TableName() string {
	return "fixed_expenses"
}

// ToEntity converts a FixedExpenseModel to a domain FixedExpense entity.
func (m *FixedExpenseModel) ToEntity() *entity.FixedExpense {
	return &entity.FixedExpense{
		ID:        m.ID,
		ProfileID: m.ProfileID,
		Name:      m.Name,
		Amount:    m.Amount,
		DueDay:    m.DueDay,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FixedExpenseFromEntity creates a FixedExpenseModel from a domain FixedExpense entity.
func FixedExpenseFromEntity(expense *entity.FixedExpense) *FixedExpenseModel {
	return &FixedExpenseModel{
		ID:        expense.ID,
		ProfileID: expense.ProfileID,
		Name:      expense.Name,
		Amount:    expense.Amount,
		DueDay:    expense.DueDay,
		CreatedAt: expense.CreatedAt,
		UpdatedAt: expense.UpdatedAt,
	}
}
