// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/playbookTV/Kora/internal/application/adapter"
	"github.com/playbookTV/Kora/internal/domain/entity"
	"github.com/playbookTV/Kora/internal/integration/persistence/model"
)

// patternRepository implements the adapter.PatternRepository interface.
type patternRepository struct {
	db *gorm.DB
}

// NewPatternRepository creates a new pattern repository instance.
func NewPatternRepository(db *gorm.DB) adapter.PatternRepository {
	return &patternRepository{
		db: db,
	}
}

// Save upserts the spending pattern for a user.
func (r *patternRepository) Save(ctx context.Context, pattern *entity.SpendingPattern) error {
	patternModel := model.PatternFromEntity(pattern)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(patternModel)
	return result.Error
}

// FindByUserID retrieves the stored spending pattern for a user. A user
// without a computed pattern gets the default one back.
func (r *patternRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.SpendingPattern, error) {
	var patternModel model.PatternModel
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&patternModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			p := entity.DefaultSpendingPattern(userID)
			return &p, nil
		}
		return nil, result.Error
	}
	return patternModel.ToEntity(), nil
}
