package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/usecase/reminder"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// UpdateReminderRequest carries the reminder fields to replace.
type UpdateReminderRequest struct {
	Enabled         *bool   `json:"enabled"`
	IntervalMinutes *int    `json:"intervalMinutes"`
	StartTime       *string `json:"startTime"`
	EndTime         *string `json:"endTime"`
}

// ReminderResponse represents the water reminder preferences.
type ReminderResponse struct {
	Enabled         bool      `json:"enabled"`
	IntervalMinutes int       `json:"intervalMinutes"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ReminderStatusResponse tells a client whether a reminder is due.
type ReminderStatusResponse struct {
	Reminder       ReminderResponse `json:"reminder"`
	WithinWindow   bool             `json:"withinWindow"`
	NextReminderAt *time.Time       `json:"nextReminderAt"`
}

// ToUpdateReminderInput converts the request into use case input.
func (r UpdateReminderRequest) ToUpdateReminderInput(userID uuid.UUID) reminder.UpdateReminderInput {
	return reminder.UpdateReminderInput{
		UserID:          userID,
		Enabled:         r.Enabled,
		IntervalMinutes: r.IntervalMinutes,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
	}
}

// ToReminderResponse converts the domain reminder.
func ToReminderResponse(r *entity.WaterReminder) ReminderResponse {
	return ReminderResponse{
		Enabled:         r.Enabled,
		IntervalMinutes: r.IntervalMinutes,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		UpdatedAt:       r.UpdatedAt,
	}
}

// ToReminderStatusResponse converts the reminder status.
func ToReminderStatusResponse(status *reminder.ReminderStatus) ReminderStatusResponse {
	return ReminderStatusResponse{
		Reminder:       ToReminderResponse(status.Reminder),
		WithinWindow:   status.WithinWindow,
		NextReminderAt: status.NextReminderAt,
	}
}
