package note

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

type fakeNoteRepo struct {
	notes     map[uuid.UUID]*entity.QuickNote
	createErr error
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: map[uuid.UUID]*entity.QuickNote{}}
}

func (f *fakeNoteRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.QuickNote, error) {
	var out []*entity.QuickNote
	for _, n := range f.notes {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNoteRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.QuickNote, error) {
	n, ok := f.notes[id]
	if !ok {
		return nil, domainerror.ErrNoteNotFound
	}
	copied := *n
	return &copied, nil
}

func (f *fakeNoteRepo) Create(ctx context.Context, note *entity.QuickNote) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.notes[note.ID] = note
	return nil
}

func (f *fakeNoteRepo) Update(ctx context.Context, note *entity.QuickNote) error {
	f.notes[note.ID] = note
	return nil
}

func (f *fakeNoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.notes, id)
	return nil
}

func (f *fakeNoteRepo) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func noteCode(err error) domainerror.NoteErrorCode {
	var noteErr *domainerror.NoteError
	if errors.As(err, &noteErr) {
		return noteErr.Code
	}
	return ""
}

func TestCreateNoteUseCase(t *testing.T) {
	tests := []struct {
		name      string
		input     CreateNoteInput
		wantCode  domainerror.NoteErrorCode
		wantColor entity.NoteColor
	}{
		{"default color", CreateNoteInput{Text: "buy milk"}, "", entity.NoteColorYellow},
		{"explicit color", CreateNoteInput{Text: "pay rent", Color: entity.NoteColorBlue}, "", entity.NoteColorBlue},
		{"blank text", CreateNoteInput{Text: "  "}, domainerror.ErrCodeEmptyNoteText, ""},
		{"text too long", CreateNoteInput{Text: strings.Repeat("x", MaxNoteTextLength+1)}, domainerror.ErrCodeNoteTextTooLong, ""},
		{"image too large", CreateNoteInput{Text: "a", Image: strings.Repeat("i", MaxNoteImageBytes+1)}, domainerror.ErrCodeNoteImageTooLarge, ""},
		{"unknown color", CreateNoteInput{Text: "a", Color: "teal"}, domainerror.ErrCodeInvalidNoteColor, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeNoteRepo()
			tt.input.UserID = uuid.New()

			note, err := NewCreateNoteUseCase(repo).Execute(context.Background(), tt.input)
			if tt.wantCode != "" {
				if got := noteCode(err); got != tt.wantCode {
					t.Errorf("code = %q, want %q", got, tt.wantCode)
				}
				if len(repo.notes) != 0 {
					t.Error("expected nothing stored")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if note.Color != tt.wantColor {
				t.Errorf("color = %q, want %q", note.Color, tt.wantColor)
			}
		})
	}
}

func TestCreateNoteUseCase_PersistError(t *testing.T) {
	repo := newFakeNoteRepo()
	repo.createErr = errors.New("boom")

	_, err := NewCreateNoteUseCase(repo).Execute(context.Background(), CreateNoteInput{UserID: uuid.New(), Text: "x"})
	if !domainerror.IsPersistError(err) {
		t.Errorf("expected persist error, got %v", err)
	}
}

func TestUpdateAndDeleteNote_Ownership(t *testing.T) {
	ctx := context.Background()
	repo := newFakeNoteRepo()
	owner := uuid.New()
	stranger := uuid.New()

	note, err := NewCreateNoteUseCase(repo).Execute(ctx, CreateNoteInput{UserID: owner, Text: "groceries"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	text := "groceries and bread"
	color := entity.NoteColorGreen
	updated, err := NewUpdateNoteUseCase(repo).Execute(ctx, UpdateNoteInput{UserID: owner, NoteID: note.ID, Text: &text, Color: &color})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Text != text || updated.Color != color {
		t.Errorf("updated = %+v", updated)
	}

	bad := entity.NoteColor("")
	if _, err := NewUpdateNoteUseCase(repo).Execute(ctx, UpdateNoteInput{UserID: owner, NoteID: note.ID, Color: &bad}); noteCode(err) != domainerror.ErrCodeInvalidNoteColor {
		t.Errorf("expected invalid color, got %v", err)
	}

	if _, err := NewUpdateNoteUseCase(repo).Execute(ctx, UpdateNoteInput{UserID: stranger, NoteID: note.ID, Text: &text}); noteCode(err) != domainerror.ErrCodeNoteNotFound {
		t.Errorf("stranger update: expected not found, got %v", err)
	}
	if err := NewDeleteNoteUseCase(repo).Execute(ctx, stranger, note.ID); noteCode(err) != domainerror.ErrCodeNoteNotFound {
		t.Errorf("stranger delete: expected not found, got %v", err)
	}
	if err := NewDeleteNoteUseCase(repo).Execute(ctx, owner, note.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	notes, err := NewListNotesUseCase(repo).Execute(ctx, owner)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("notes = %d, want 0", len(notes))
	}
}
