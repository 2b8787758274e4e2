// Package note contains the quick note use cases.
package note

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// Note limits.
const (
	MaxNoteTextLength = 2000
	MaxNoteImageBytes = 2 * 1024 * 1024
)

func validateText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", domainerror.NewNoteError(domainerror.ErrCodeEmptyNoteText, "text is required", domainerror.ErrEmptyNoteText)
	}
	if len(text) > MaxNoteTextLength {
		return "", domainerror.NewNoteError(
			domainerror.ErrCodeNoteTextTooLong,
			fmt.Sprintf("text must not exceed %d characters", MaxNoteTextLength),
			domainerror.ErrNoteTextTooLong,
		)
	}
	return text, nil
}

func validateImage(image string) error {
	if len(image) > MaxNoteImageBytes {
		return domainerror.NewNoteError(domainerror.ErrCodeNoteImageTooLarge, "image must not exceed 2MB", domainerror.ErrNoteImageTooLarge)
	}
	return nil
}

func validateColor(color entity.NoteColor) error {
	if color != "" && !color.IsValid() {
		return domainerror.NewNoteError(
			domainerror.ErrCodeInvalidNoteColor,
			fmt.Sprintf("color %q is not supported", color),
			domainerror.ErrInvalidNoteColor,
		)
	}
	return nil
}

// findOwned loads a note and hides notes of other users behind not found.
func findOwned(ctx context.Context, repo adapter.QuickNoteRepository, id, userID uuid.UUID) (*entity.QuickNote, error) {
	note, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrNoteNotFound) {
			return nil, domainerror.NewNoteError(domainerror.ErrCodeNoteNotFound, "note not found", domainerror.ErrNoteNotFound)
		}
		return nil, domainerror.NewNoteFetchError(fmt.Errorf("failed to get note: %w", err))
	}
	if note.UserID != userID {
		return nil, domainerror.NewNoteError(domainerror.ErrCodeNoteNotFound, "note not found", domainerror.ErrNoteNotFound)
	}
	return note, nil
}

// ListNotesUseCase returns the notes of a user.
type ListNotesUseCase struct {
	repo adapter.QuickNoteRepository
}

// NewListNotesUseCase creates a new ListNotesUseCase instance.
func NewListNotesUseCase(repo adapter.QuickNoteRepository) *ListNotesUseCase {
	return &ListNotesUseCase{repo: repo}
}

// Execute lists the notes, newest first.
func (uc *ListNotesUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*entity.QuickNote, error) {
	notes, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, domainerror.NewNoteFetchError(fmt.Errorf("failed to list notes: %w", err))
	}
	return notes, nil
}

// CreateNoteInput represents the input for creating a note.
type CreateNoteInput struct {
	UserID uuid.UUID
	Text   string
	Image  string
	Color  entity.NoteColor
}

// CreateNoteUseCase creates a quick note.
type CreateNoteUseCase struct {
	repo adapter.QuickNoteRepository
}

// NewCreateNoteUseCase creates a new CreateNoteUseCase instance.
func NewCreateNoteUseCase(repo adapter.QuickNoteRepository) *CreateNoteUseCase {
	return &CreateNoteUseCase{repo: repo}
}

// Execute validates and stores the note.
func (uc *CreateNoteUseCase) Execute(ctx context.Context, input CreateNoteInput) (*entity.QuickNote, error) {
	text, err := validateText(input.Text)
	if err != nil {
		return nil, err
	}
	if err := validateImage(input.Image); err != nil {
		return nil, err
	}
	if err := validateColor(input.Color); err != nil {
		return nil, err
	}

	note := entity.NewQuickNote(input.UserID, text, input.Image, input.Color)
	if err := uc.repo.Create(ctx, note); err != nil {
		return nil, domainerror.NewNotePersistError(fmt.Errorf("failed to create note: %w", err))
	}

	slog.Info("Note created", "userID", input.UserID, "noteID", note.ID)
	return note, nil
}

// UpdateNoteInput carries the fields to replace. Nil fields are unchanged;
// an empty Image removes the picture.
type UpdateNoteInput struct {
	UserID uuid.UUID
	NoteID uuid.UUID
	Text   *string
	Image  *string
	Color  *entity.NoteColor
}

// UpdateNoteUseCase edits a quick note.
type UpdateNoteUseCase struct {
	repo adapter.QuickNoteRepository
}

// NewUpdateNoteUseCase creates a new UpdateNoteUseCase instance.
func NewUpdateNoteUseCase(repo adapter.QuickNoteRepository) *UpdateNoteUseCase {
	return &UpdateNoteUseCase{repo: repo}
}

// Execute applies the changes to the note.
func (uc *UpdateNoteUseCase) Execute(ctx context.Context, input UpdateNoteInput) (*entity.QuickNote, error) {
	note, err := findOwned(ctx, uc.repo, input.NoteID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Text != nil {
		text, err := validateText(*input.Text)
		if err != nil {
			return nil, err
		}
		note.Text = text
	}
	if input.Image != nil {
		if err := validateImage(*input.Image); err != nil {
			return nil, err
		}
		note.Image = *input.Image
	}
	if input.Color != nil {
		if !input.Color.IsValid() {
			return nil, domainerror.NewNoteError(
				domainerror.ErrCodeInvalidNoteColor,
				fmt.Sprintf("color %q is not supported", *input.Color),
				domainerror.ErrInvalidNoteColor,
			)
		}
		note.Color = *input.Color
	}
	note.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, note); err != nil {
		return nil, domainerror.NewNotePersistError(fmt.Errorf("failed to update note: %w", err))
	}
	return note, nil
}

// DeleteNoteUseCase removes a quick note.
type DeleteNoteUseCase struct {
	repo adapter.QuickNoteRepository
}

// NewDeleteNoteUseCase creates a new DeleteNoteUseCase instance.
func NewDeleteNoteUseCase(repo adapter.QuickNoteRepository) *DeleteNoteUseCase {
	return &DeleteNoteUseCase{repo: repo}
}

// Execute deletes the note when it belongs to the user.
func (uc *DeleteNoteUseCase) Execute(ctx context.Context, userID, noteID uuid.UUID) error {
	if _, err := findOwned(ctx, uc.repo, noteID, userID); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, noteID); err != nil {
		return domainerror.NewNotePersistError(fmt.Errorf("failed to delete note: %w", err))
	}
	slog.Info("Note deleted", "userID", userID, "noteID", noteID)
	return nil
}
