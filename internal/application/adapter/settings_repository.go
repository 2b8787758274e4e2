package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// SettingsPatch carries the settings fields to change. Nil fields are left untouched.
type SettingsPatch struct {
	MonthlyIncome *decimal.Decimal
}

// IsEmpty reports whether the patch changes nothing.
func (p SettingsPatch) IsEmpty() bool {
	return p.MonthlyIncome == nil
}

// SettingsRepository is the per-user settings store.
type SettingsRepository interface {
	// Get returns the settings of a user, or ErrSettingsNotFound.
	Get(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error)

	// Merge applies patch to the stored record, creating it with defaults first if absent.
	Merge(ctx context.Context, userID uuid.UUID, patch SettingsPatch) error

	// SaveFixedExpenses writes the item list and its total together in one atomic update,
	// creating the record if absent.
	SaveFixedExpenses(ctx context.Context, userID uuid.UUID, items []entity.FixedExpenseItem, total decimal.Decimal) error

	// Delete removes the settings of a user.
	Delete(ctx context.Context, userID uuid.UUID) error
}
