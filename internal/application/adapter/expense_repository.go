// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ExpenseRepository is the expense store. It performs no date filtering;
// range selection happens in the dashboard aggregation.
type ExpenseRepository interface {
	// ListByUser returns every expense of a user, newest occurredOn first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Expense, error)

	// GetByID retrieves an expense by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)

	// Create stores a new expense.
	Create(ctx context.Context, expense *entity.Expense) error

	// Delete permanently removes an expense owned by userID.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// DeleteAllByUser removes every expense of a user.
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error
}
