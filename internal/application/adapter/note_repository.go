package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// QuickNoteRepository defines persistence for sticky notes.
type QuickNoteRepository interface {
	// ListByUser returns the notes of a user, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.QuickNote, error)

	FindByID(ctx context.Context, id uuid.UUID) (*entity.QuickNote, error)
	Create(ctx context.Context, note *entity.QuickNote) error
	Update(ctx context.Context, note *entity.QuickNote) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error
}

// WaterReminderRepository defines persistence for hydration reminder preferences.
type WaterReminderRepository interface {
	// Get returns ErrReminderNotFound when the user never saved preferences.
	Get(ctx context.Context, userID uuid.UUID) (*entity.WaterReminder, error)

	// Save inserts or replaces the reminder of its user.
	Save(ctx context.Context, reminder *entity.WaterReminder) error

	Delete(ctx context.Context, userID uuid.UUID) error
}
