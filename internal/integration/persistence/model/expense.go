package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_expenses_user_date"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Category    string          `gorm:"type:varchar(50);not null"`
	Description string          `gorm:"type:varchar(255);not null"`
	OccurredOn  string          `gorm:"type:varchar(40);not null;index:idx_expenses_user_date"`
	Source      string          `gorm:"type:varchar(10);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	return &entity.Expense{
		ID:          m.ID,
		UserID:      m.UserID,
		Amount:      m.Amount,
		Category:    entity.ExpenseCategory(m.Category),
		Description: m.Description,
		OccurredOn:  m.OccurredOn,
		Source:      entity.ExpenseSource(m.Source),
		CreatedAt:   m.CreatedAt,
	}
}

// ExpenseFromEntity creates an ExpenseModel from a domain Expense entity.
func ExpenseFromEntity(e *entity.Expense) *ExpenseModel {
	return &ExpenseModel{
		ID:          e.ID,
		UserID:      e.UserID,
		Amount:      e.Amount,
		Category:    string(e.Category),
		Description: e.Description,
		OccurredOn:  e.OccurredOn,
		Source:      string(e.Source),
		CreatedAt:   e.CreatedAt,
	}
}
