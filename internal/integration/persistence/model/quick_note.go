package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// QuickNoteModel represents the quick_notes table in the database.
type QuickNoteModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Text      string    `gorm:"type:text;not null"`
	Image     string    `gorm:"type:text"`
	Color     string    `gorm:"type:varchar(10);not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the QuickNoteModel.
func (QuickNoteModel) TableName() string {
	return "quick_notes"
}

// ToEntity converts a QuickNoteModel to a domain QuickNote entity.
func (m *QuickNoteModel) ToEntity() *entity.QuickNote {
	return &entity.QuickNote{
		ID:        m.ID,
		UserID:    m.UserID,
		Text:      m.Text,
		Image:     m.Image,
		Color:     entity.NoteColor(m.Color),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// QuickNoteFromEntity creates a QuickNoteModel from a domain QuickNote entity.
func QuickNoteFromEntity(n *entity.QuickNote) *QuickNoteModel {
	return &QuickNoteModel{
		ID:        n.ID,
		UserID:    n.UserID,
		Text:      n.Text,
		Image:     n.Image,
		Color:     string(n.Color),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// WaterReminderModel represents the water_reminders table in the database.
type WaterReminderModel struct {
	UserID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Enabled         bool      `gorm:"not null"`
	IntervalMinutes int       `gorm:"not null"`
	StartTime       string    `gorm:"type:varchar(5);not null"`
	EndTime         string    `gorm:"type:varchar(5);not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for the WaterReminderModel.
func (WaterReminderModel) TableName() string {
	return "water_reminders"
}

// ToEntity converts a WaterReminderModel to a domain WaterReminder entity.
func (m *WaterReminderModel) ToEntity() *entity.WaterReminder {
	return &entity.WaterReminder{
		UserID:          m.UserID,
		Enabled:         m.Enabled,
		IntervalMinutes: m.IntervalMinutes,
		StartTime:       m.StartTime,
		EndTime:         m.EndTime,
		UpdatedAt:       m.UpdatedAt,
	}
}

// WaterReminderFromEntity creates a WaterReminderModel from a domain WaterReminder entity.
func WaterReminderFromEntity(r *entity.WaterReminder) *WaterReminderModel {
	return &WaterReminderModel{
		UserID:          r.UserID,
		Enabled:         r.Enabled,
		IntervalMinutes: r.IntervalMinutes,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		UpdatedAt:       r.UpdatedAt,
	}
}
