package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// settingsRepository implements the adapter.SettingsRepository interface.
type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository instance.
func NewSettingsRepository(db *gorm.DB) adapter.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the settings of a user or ErrSettingsNotFound.
func (r *settingsRepository) Get(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	var settingsModel model.UserSettingsModel
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&settingsModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrSettingsNotFound
		}
		return nil, result.Error
	}
	return settingsModel.ToEntity(), nil
}

// Merge upserts the patched columns. A missing row is created with defaults
// for every other column; an empty patch only ensures the row exists.
func (r *settingsRepository) Merge(ctx context.Context, userID uuid.UUID, patch adapter.SettingsPatch) error {
	row := model.UserSettingsFromEntity(entity.NewUserSettings(userID))

	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}
	if patch.MonthlyIncome != nil {
		row.MonthlyIncome = *patch.MonthlyIncome
		onConflict = clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"monthly_income", "updated_at"}),
		}
	}

	return r.db.WithContext(ctx).Clauses(onConflict).Create(row).Error
}

// SaveFixedExpenses writes the items and their total in a single upsert.
func (r *settingsRepository) SaveFixedExpenses(ctx context.Context, userID uuid.UUID, items []entity.FixedExpenseItem, total decimal.Decimal) error {
	row := &model.UserSettingsModel{
		UserID:             userID,
		MonthlyIncome:      decimal.Zero,
		FixedExpensesTotal: total,
		FixedExpenseItems:  model.FixedExpenseRecords(items),
		UpdatedAt:          time.Now().UTC(),
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"fixed_expense_items", "fixed_expenses_total", "updated_at"}),
	}).Create(row).Error
}

// Delete removes the settings of a user.
func (r *settingsRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.UserSettingsModel{}).Error
}
