package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/usecase/note"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CreateNoteRequest represents the request body for note creation.
type CreateNoteRequest struct {
	Text  string `json:"text"`
	Image string `json:"image"`
	Color string `json:"color"`
}

// UpdateNoteRequest carries the note fields to replace.
type UpdateNoteRequest struct {
	Text  *string `json:"text"`
	Image *string `json:"image"`
	Color *string `json:"color"`
}

// NoteResponse represents a quick note.
type NoteResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Image     string    `json:"image,omitempty"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteListResponse represents the user's notes, newest first.
type NoteListResponse struct {
	Notes []NoteResponse `json:"notes"`
}

// ToCreateNoteInput converts the request into use case input.
func (r CreateNoteRequest) ToCreateNoteInput(userID uuid.UUID) note.CreateNoteInput {
	return note.CreateNoteInput{
		UserID: userID,
		Text:   r.Text,
		Image:  r.Image,
		Color:  entity.NoteColor(r.Color),
	}
}

// ToUpdateNoteInput converts the request into use case input.
func (r UpdateNoteRequest) ToUpdateNoteInput(userID, noteID uuid.UUID) note.UpdateNoteInput {
	input := note.UpdateNoteInput{
		UserID: userID,
		NoteID: noteID,
		Text:   r.Text,
		Image:  r.Image,
	}
	if r.Color != nil {
		color := entity.NoteColor(*r.Color)
		input.Color = &color
	}
	return input
}

// ToNoteResponse converts a domain note.
func ToNoteResponse(n *entity.QuickNote) NoteResponse {
	return NoteResponse{
		ID:        n.ID.String(),
		Text:      n.Text,
		Image:     n.Image,
		Color:     string(n.Color),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// ToNoteListResponse converts a list of notes.
func ToNoteListResponse(notes []*entity.QuickNote) NoteListResponse {
	out := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, ToNoteResponse(n))
	}
	return NoteListResponse{Notes: out}
}
