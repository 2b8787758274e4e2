package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// FixedExpenseItemRecord is the stored form of one fixed expense item.
type FixedExpenseItemRecord struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
}

// UserSettingsModel represents the user_settings table. Fixed items live in
// a JSON column next to their total so both change in one statement.
type UserSettingsModel struct {
	UserID             uuid.UUID                `gorm:"type:uuid;primaryKey"`
	MonthlyIncome      decimal.Decimal          `gorm:"type:decimal(15,2);not null"`
	FixedExpensesTotal decimal.Decimal          `gorm:"type:decimal(15,2);not null"`
	FixedExpenseItems  []FixedExpenseItemRecord `gorm:"type:text;serializer:json"`
	UpdatedAt          time.Time                `gorm:"not null"`
}

// TableName returns the table name for the UserSettingsModel.
func (UserSettingsModel) TableName() string {
	return "user_settings"
}

// ToEntity converts a UserSettingsModel to a domain UserSettings entity.
func (m *UserSettingsModel) ToEntity() *entity.UserSettings {
	items := make([]entity.FixedExpenseItem, 0, len(m.FixedExpenseItems))
	for _, r := range m.FixedExpenseItems {
		items = append(items, entity.FixedExpenseItem{
			ID:       r.ID,
			Name:     r.Name,
			Amount:   r.Amount,
			Category: entity.ExpenseCategory(r.Category),
		})
	}
	return &entity.UserSettings{
		UserID:             m.UserID,
		MonthlyIncome:      m.MonthlyIncome,
		FixedExpensesTotal: m.FixedExpensesTotal,
		FixedExpenseItems:  items,
		UpdatedAt:          m.UpdatedAt,
	}
}

// FixedExpenseRecords converts items into their stored form.
func FixedExpenseRecords(items []entity.FixedExpenseItem) []FixedExpenseItemRecord {
	records := make([]FixedExpenseItemRecord, 0, len(items))
	for _, item := range items {
		records = append(records, FixedExpenseItemRecord{
			ID:       item.ID,
			Name:     item.Name,
			Amount:   item.Amount,
			Category: string(item.Category),
		})
	}
	return records
}

// UserSettingsFromEntity creates a UserSettingsModel from a domain UserSettings entity.
func UserSettingsFromEntity(s *entity.UserSettings) *UserSettingsModel {
	return &UserSettingsModel{
		UserID:             s.UserID,
		MonthlyIncome:      s.MonthlyIncome,
		FixedExpensesTotal: s.FixedExpensesTotal,
		FixedExpenseItems:  FixedExpenseRecords(s.FixedExpenseItems),
		UpdatedAt:          s.UpdatedAt,
	}
}
