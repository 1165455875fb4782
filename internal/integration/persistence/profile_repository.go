// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/playbookTV/Kora/internal/application/adapter"
	"github.com/playbookTV/Kora/internal/domain/entity"
	domainerror "github.com/playbookTV/Kora/internal/domain/error"
	"github.com/playbookTV/Kora/internal/integration/persistence/model"
)

// profileRepository implements the adapter.ProfileRepository interface.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository instance.
func NewProfileRepository(db *gorm.DB) adapter.ProfileRepository {
	return &profileRepository{
		db: db,
	}
}

// Create creates a new financial profile for a user.
func (r *profileRepository) Create(ctx context.Context, profile *entity.UserFinancialProfile) error {
	profileModel := model.ProfileFromEntity(profile)
	result := r.db.WithContext(ctx).Create(profileModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByUserID retrieves a user's financial profile with its fixed expenses.
func (r *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserFinancialProfile, error) {
	var profileModel model.ProfileModel
	result := r.db.WithContext(ctx).
		Preload("FixedExpenses").
		Where("user_id = ?", userID).
		First(&profileModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrProfileNotFound
		}
		return nil, result.Error
	}
	return profileModel.ToEntity(), nil
}

// Update updates an existing financial profile.
func (r *profileRepository) Update(ctx context.Context, profile *entity.UserFinancialProfile) error {
	profileModel := model.ProfileFromEntity(profile)
	result := r.db.WithContext(ctx).Save(profileModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// AddFixedExpense adds a fixed expense to a profile.
func (r *profileRepository) AddFixedExpense(ctx context.Context, expense *entity.FixedExpense) error {
	expenseModel := model.FixedExpenseFromEntity(expense)
	result := r.db.WithContext(ctx).Create(expenseModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// UpdateFixedExpense updates an existing fixed expense.
func (r *profileRepository) UpdateFixedExpense(ctx context.Context, expense *entity.FixedExpense) error {
	expenseModel := model.FixedExpenseFromEntity(expense)
	result := r.db.WithContext(ctx).Save(expenseModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// DeleteFixedExpense removes a fixed expense from a profile.
func (r *profileRepository) DeleteFixedExpense(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.FixedExpenseModel{}, "id = ?", id)
	return result.Error
}

// FindFixedExpenseByID retrieves a fixed expense by its ID.
func (r *profileRepository) FindFixedExpenseByID(ctx context.Context, id uuid.UUID) (*entity.FixedExpense, error) {
	var expenseModel model.FixedExpenseModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&expenseModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrFixedExpenseNotFound
		}
		return nil, result.Error
	}
	return expenseModel.ToEntity(), nil
}
