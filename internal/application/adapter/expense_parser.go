package adapter

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ErrNotParsed is returned by an ExpenseParser that cannot read the transcript.
var ErrNotParsed = errors.New("transcript not understood")

// ParsedExpense is the structured result of reading a spoken or typed command.
type ParsedExpense struct {
	Amount      decimal.Decimal
	Category    entity.ExpenseCategory
	Description string
}

// ExpenseParser turns a free-text command such as "add 250 to food" into an expense draft.
type ExpenseParser interface {
	Parse(ctx context.Context, transcript string) (*ParsedExpense, error)
}
