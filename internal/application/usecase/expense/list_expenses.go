package expense

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/dashboard"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// ListExpensesInput represents the input for listing expenses. A nil
// Period lists everything.
type ListExpensesInput struct {
	UserID uuid.UUID
	Period *valueobject.Period
}

// ListExpensesOutput represents the output of listing expenses.
type ListExpensesOutput struct {
	Expenses []*entity.Expense
	Total    int
}

// ListExpensesUseCase lists a user's expenses, newest first.
type ListExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(expenseRepo adapter.ExpenseRepository) *ListExpensesUseCase {
	return &ListExpensesUseCase{expenseRepo: expenseRepo}
}

// Execute returns the expenses, optionally narrowed to a period.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
	if input.Period != nil {
		if err := input.Period.Validate(); err != nil {
			return nil, domainerror.NewExpenseError(domainerror.ErrCodeInvalidExpensePeriod, err.Error(), domainerror.ErrInvalidPeriod)
		}
	}

	expenses, err := uc.expenseRepo.ListByUser(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewExpenseFetchError(fmt.Errorf("failed to list expenses: %w", err))
	}

	if input.Period != nil {
		expenses = dashboard.FilterByPeriod(expenses, *input.Period)
	}

	return &ListExpensesOutput{
		Expenses: expenses,
		Total:    len(expenses),
	}, nil
}
