package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultFixedExpensesTotal is the fixed monthly cost assumed when a user
// has no itemized fixed expenses. It is never zero.
var DefaultFixedExpensesTotal = decimal.NewFromInt(5000)

// FixedExpenseItem is a recurring monthly cost such as rent or a subscription.
type FixedExpenseItem struct {
	ID       uuid.UUID
	Name     string
	Amount   decimal.Decimal
	Category ExpenseCategory
}

// UserSettings holds the per-user income and fixed expense configuration.
type UserSettings struct {
	UserID             uuid.UUID
	MonthlyIncome      decimal.Decimal
	FixedExpensesTotal decimal.Decimal
	FixedExpenseItems  []FixedExpenseItem
	UpdatedAt          time.Time
}

// NewUserSettings returns the settings a user starts with.
func NewUserSettings(userID uuid.UUID) *UserSettings {
	return &UserSettings{
		UserID:             userID,
		MonthlyIncome:      decimal.Zero,
		FixedExpensesTotal: DefaultFixedExpensesTotal,
		FixedExpenseItems:  []FixedExpenseItem{},
		UpdatedAt:          time.Now().UTC(),
	}
}

// EffectiveFixedTotal returns the fixed total used by calculations.
// An empty item list always yields DefaultFixedExpensesTotal.
func (s *UserSettings) EffectiveFixedTotal() decimal.Decimal {
	if len(s.FixedExpenseItems) == 0 {
		return DefaultFixedExpensesTotal
	}
	return s.FixedExpensesTotal
}

// RecomputeFixedTotal sets FixedExpensesTotal from the item list.
func (s *UserSettings) RecomputeFixedTotal() {
	if len(s.FixedExpenseItems) == 0 {
		s.FixedExpensesTotal = DefaultFixedExpensesTotal
		return
	}
	total := decimal.Zero
	for _, item := range s.FixedExpenseItems {
		total = total.Add(item.Amount)
	}
	s.FixedExpensesTotal = total
}

// FindFixedExpense returns the index of the item with the given id, or -1.
func (s *UserSettings) FindFixedExpense(id uuid.UUID) int {
	for i, item := range s.FixedExpenseItems {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so mutations can be discarded on failure.
func (s *UserSettings) Clone() *UserSettings {
	clone := *s
	clone.FixedExpenseItems = make([]FixedExpenseItem, len(s.FixedExpenseItems))
	copy(clone.FixedExpenseItems, s.FixedExpenseItems)
	return &clone
}
