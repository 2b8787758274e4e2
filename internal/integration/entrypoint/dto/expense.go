package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CreateExpenseRequest represents the request body for expense creation.
// Fields are validated by the use case so every rule has its own error code.
type CreateExpenseRequest struct {
	Amount      *float64 `json:"amount"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	OccurredOn  string   `json:"occurredOn"`
}

// VoiceExpenseRequest carries a spoken or typed expense command.
type VoiceExpenseRequest struct {
	Transcript string `json:"transcript" binding:"required"`
}

// ExpenseResponse represents a single expense in API responses.
type ExpenseResponse struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	OccurredOn  string    `json:"occurredOn"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ExpenseListResponse represents a list of expenses.
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Total    int               `json:"total"`
}

// VoiceExpenseResponse is the expense created from a transcript.
type VoiceExpenseResponse struct {
	Expense    ExpenseResponse `json:"expense"`
	Transcript string          `json:"transcript"`
}

// ToCreateExpenseInput converts the request into use case input.
func (r CreateExpenseRequest) ToCreateExpenseInput(userID uuid.UUID) expense.CreateExpenseInput {
	return expense.CreateExpenseInput{
		UserID:      userID,
		Amount:      decimalPtr(r.Amount),
		Category:    entity.ExpenseCategory(r.Category),
		Description: r.Description,
		OccurredOn:  r.OccurredOn,
		Source:      entity.ExpenseSourceManual,
	}
}

// ToExpenseResponse converts a domain Expense entity to an ExpenseResponse DTO.
func ToExpenseResponse(e *entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID.String(),
		Amount:      toFloat(e.Amount),
		Category:    string(e.Category),
		Description: e.Description,
		OccurredOn:  e.OccurredOn,
		Source:      string(e.Source),
		CreatedAt:   e.CreatedAt,
	}
}

// ToExpenseListResponse converts the list output.
func ToExpenseListResponse(output *expense.ListExpensesOutput) ExpenseListResponse {
	expenses := make([]ExpenseResponse, 0, len(output.Expenses))
	for _, e := range output.Expenses {
		expenses = append(expenses, ToExpenseResponse(e))
	}
	return ExpenseListResponse{Expenses: expenses, Total: output.Total}
}
