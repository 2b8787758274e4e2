package entity

import (
	"time"

	"github.com/google/uuid"
)

// NoteColor is the background color of a quick note.
type NoteColor string

const (
	NoteColorYellow NoteColor = "yellow"
	NoteColorPink   NoteColor = "pink"
	NoteColorBlue   NoteColor = "blue"
	NoteColorGreen  NoteColor = "green"
	NoteColorPurple NoteColor = "purple"
	NoteColorOrange NoteColor = "orange"
)

// IsValid checks if the note color is one of the supported colors.
func (c NoteColor) IsValid() bool {
	switch c {
	case NoteColorYellow, NoteColorPink, NoteColorBlue, NoteColorGreen, NoteColorPurple, NoteColorOrange:
		return true
	}
	return false
}

// QuickNote is a sticky note kept next to the dashboard.
type QuickNote struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Text      string
	Image     string
	Color     NoteColor
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewQuickNote creates a note, defaulting the color to yellow.
func NewQuickNote(userID uuid.UUID, text, image string, color NoteColor) *QuickNote {
	if color == "" {
		color = NoteColorYellow
	}
	now := time.Now().UTC()
	return &QuickNote{
		ID:        uuid.New(),
		UserID:    userID,
		Text:      text,
		Image:     image,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
