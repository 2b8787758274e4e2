package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OccurredOnLayout is the calendar date layout used for Expense.OccurredOn.
const OccurredOnLayout = "2006-01-02"

// ExpenseSource records which entry path created an expense.
type ExpenseSource string

const (
	ExpenseSourceManual ExpenseSource = "manual"
	ExpenseSourceVoice  ExpenseSource = "voice"
)

// Expense is a single spending record. Expenses are never edited, only
// created and deleted.
type Expense struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Category    ExpenseCategory
	Description string
	// OccurredOn is kept as text; rows with an unparseable value are
	// ignored by aggregation rather than rejected on read.
	OccurredOn string
	Source     ExpenseSource
	CreatedAt  time.Time
}

// NewExpense creates a new Expense owned by userID.
func NewExpense(userID uuid.UUID, amount decimal.Decimal, category ExpenseCategory, description string, occurredOn time.Time, source ExpenseSource) *Expense {
	return &Expense{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      amount,
		Category:    category,
		Description: description,
		OccurredOn:  occurredOn.Format(OccurredOnLayout),
		Source:      source,
		CreatedAt:   time.Now().UTC(),
	}
}

// IsOwnedBy checks if the expense belongs to the given user.
func (e *Expense) IsOwnedBy(userID uuid.UUID) bool {
	return e.UserID == userID
}
