// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// MaxDescriptionLength is the maximum allowed length for expense descriptions.
const MaxDescriptionLength = 255

// CreateExpenseInput represents the input for expense creation.
type CreateExpenseInput struct {
	UserID      uuid.UUID
	Amount      *decimal.Decimal
	Category    entity.ExpenseCategory
	Description string
	OccurredOn  string
	Source      entity.ExpenseSource
}

// CreateExpenseOutput represents the output of expense creation.
type CreateExpenseOutput struct {
	Expense *entity.Expense
}

// CreateExpenseUseCase handles expense creation logic.
type CreateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	publisher   adapter.EventPublisher
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
func NewCreateExpenseUseCase(expenseRepo adapter.ExpenseRepository, publisher adapter.EventPublisher) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{
		expenseRepo: expenseRepo,
		publisher:   publisher,
	}
}

// Execute validates and stores a new expense. Nothing is written when
// validation fails.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*CreateExpenseOutput, error) {
	occurredOn, err := validateCreateInput(&input)
	if err != nil {
		return nil, err
	}

	source := input.Source
	if source == "" {
		source = entity.ExpenseSourceManual
	}

	expense := entity.NewExpense(input.UserID, *input.Amount, input.Category, input.Description, occurredOn, source)
	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, domainerror.NewExpensePersistError(fmt.Errorf("failed to create expense: %w", err))
	}

	slog.Info("Expense created",
		"expenseID", expense.ID,
		"userID", expense.UserID,
		"category", expense.Category,
		"source", expense.Source,
	)

	publish(ctx, uc.publisher, adapter.NewDomainEvent(adapter.EventExpenseCreated, expense.UserID, expense.ID, map[string]any{
		"amount":      expense.Amount.String(),
		"category":    string(expense.Category),
		"occurred_on": expense.OccurredOn,
	}))

	return &CreateExpenseOutput{Expense: expense}, nil
}

// validateCreateInput checks every field and returns the parsed date.
func validateCreateInput(input *CreateExpenseInput) (time.Time, error) {
	input.Description = strings.TrimSpace(input.Description)

	if input.Amount == nil || input.Amount.IsNegative() {
		return time.Time{}, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseAmount,
			"amount is required and must be zero or positive",
			domainerror.ErrInvalidExpenseAmount,
		)
	}

	if !input.Category.IsValidExpenseCategory() {
		return time.Time{}, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseCategory,
			fmt.Sprintf("category %q is not supported", input.Category),
			domainerror.ErrInvalidExpenseCategory,
		)
	}

	if input.Description == "" {
		return time.Time{}, domainerror.NewExpenseError(
			domainerror.ErrCodeEmptyExpenseDescription,
			"description is required",
			domainerror.ErrEmptyExpenseDescription,
		)
	}

	if len(input.Description) > MaxDescriptionLength {
		return time.Time{}, domainerror.NewExpenseError(
			domainerror.ErrCodeExpenseDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrExpenseDescriptionTooLong,
		)
	}

	occurredOn, err := time.Parse(entity.OccurredOnLayout, input.OccurredOn)
	if err != nil {
		return time.Time{}, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidOccurredOn,
			"date must be a valid YYYY-MM-DD calendar date",
			domainerror.ErrInvalidOccurredOn,
		)
	}

	return occurredOn, nil
}

// publish emits an event without failing the caller.
func publish(ctx context.Context, publisher adapter.EventPublisher, event adapter.DomainEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish event", "type", event.Type, "userID", event.UserID, "error", err)
	}
}
