// Package reminder contains the water reminder use cases.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// Interval bounds in minutes.
const (
	MinIntervalMinutes = 15
	MaxIntervalMinutes = 240
)

func load(ctx context.Context, repo adapter.WaterReminderRepository, userID uuid.UUID) (*entity.WaterReminder, error) {
	reminder, err := repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrReminderNotFound) {
			return entity.NewWaterReminder(userID), nil
		}
		return nil, domainerror.NewReminderFetchError(fmt.Errorf("failed to get reminder: %w", err))
	}
	return reminder, nil
}

// GetReminderUseCase returns the saved reminder or the defaults.
type GetReminderUseCase struct {
	repo adapter.WaterReminderRepository
}

// NewGetReminderUseCase creates a new GetReminderUseCase instance.
func NewGetReminderUseCase(repo adapter.WaterReminderRepository) *GetReminderUseCase {
	return &GetReminderUseCase{repo: repo}
}

// Execute loads the reminder of the user.
func (uc *GetReminderUseCase) Execute(ctx context.Context, userID uuid.UUID) (*entity.WaterReminder, error) {
	return load(ctx, uc.repo, userID)
}

// UpdateReminderInput carries the fields to replace. Nil fields are unchanged.
type UpdateReminderInput struct {
	UserID          uuid.UUID
	Enabled         *bool
	IntervalMinutes *int
	StartTime       *string
	EndTime         *string
}

// UpdateReminderUseCase saves reminder preferences.
type UpdateReminderUseCase struct {
	repo adapter.WaterReminderRepository
}

// NewUpdateReminderUseCase creates a new UpdateReminderUseCase instance.
func NewUpdateReminderUseCase(repo adapter.WaterReminderRepository) *UpdateReminderUseCase {
	return &UpdateReminderUseCase{repo: repo}
}

// Execute validates and stores the new preferences.
func (uc *UpdateReminderUseCase) Execute(ctx context.Context, input UpdateReminderInput) (*entity.WaterReminder, error) {
	if input.IntervalMinutes != nil {
		if *input.IntervalMinutes < MinIntervalMinutes || *input.IntervalMinutes > MaxIntervalMinutes {
			return nil, domainerror.NewReminderError(
				domainerror.ErrCodeInvalidReminderInterval,
				fmt.Sprintf("interval must be between %d and %d minutes", MinIntervalMinutes, MaxIntervalMinutes),
				domainerror.ErrInvalidReminderInterval,
			)
		}
	}
	for _, value := range []*string{input.StartTime, input.EndTime} {
		if value == nil {
			continue
		}
		if _, err := entity.ParseClock(*value); err != nil {
			return nil, domainerror.NewReminderError(domainerror.ErrCodeInvalidReminderTime, err.Error(), domainerror.ErrInvalidReminderTime)
		}
	}

	reminder, err := load(ctx, uc.repo, input.UserID)
	if err != nil {
		return nil, err
	}
	if input.Enabled != nil {
		reminder.Enabled = *input.Enabled
	}
	if input.IntervalMinutes != nil {
		reminder.IntervalMinutes = *input.IntervalMinutes
	}
	if input.StartTime != nil {
		reminder.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		reminder.EndTime = *input.EndTime
	}
	reminder.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Save(ctx, reminder); err != nil {
		return nil, domainerror.NewReminderPersistError(fmt.Errorf("failed to save reminder: %w", err))
	}

	slog.Info("Water reminder updated", "userID", input.UserID, "enabled", reminder.Enabled)
	return reminder, nil
}

// ReminderStatus describes the reminder at a moment in time.
type ReminderStatus struct {
	Reminder       *entity.WaterReminder
	WithinWindow   bool
	NextReminderAt *time.Time
}

// GetReminderStatusUseCase tells a client whether to show a reminder now.
type GetReminderStatusUseCase struct {
	repo adapter.WaterReminderRepository
	now  func() time.Time
}

// NewGetReminderStatusUseCase creates a new GetReminderStatusUseCase instance.
func NewGetReminderStatusUseCase(repo adapter.WaterReminderRepository, now func() time.Time) *GetReminderStatusUseCase {
	if now == nil {
		now = time.Now
	}
	return &GetReminderStatusUseCase{repo: repo, now: now}
}

// Execute evaluates the reminder against the clock.
func (uc *GetReminderStatusUseCase) Execute(ctx context.Context, userID uuid.UUID) (*ReminderStatus, error) {
	reminder, err := load(ctx, uc.repo, userID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	status := &ReminderStatus{
		Reminder:     reminder,
		WithinWindow: reminder.Enabled && reminder.IsWithinWindow(now),
	}
	if next, ok := reminder.NextReminderAt(now); ok {
		status.NextReminderAt = &next
	}
	return status, nil
}
