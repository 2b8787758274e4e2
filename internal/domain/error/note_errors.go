package error

import "errors"

// Quick note domain errors.
var (
	ErrNoteNotFound      = errors.New("note not found")
	ErrEmptyNoteText     = errors.New("note text is required")
	ErrNoteTextTooLong   = errors.New("note text too long")
	ErrNoteImageTooLarge = errors.New("note image too large")
	ErrInvalidNoteColor  = errors.New("invalid note color")
)

// NoteErrorCode defines error codes for quick note errors.
type NoteErrorCode string

const (
	ErrCodeNoteNotFound      NoteErrorCode = "NOTE-010001"
	ErrCodeEmptyNoteText     NoteErrorCode = "NOTE-010002"
	ErrCodeNoteTextTooLong   NoteErrorCode = "NOTE-010003"
	ErrCodeNoteImageTooLarge NoteErrorCode = "NOTE-010004"
	ErrCodeInvalidNoteColor  NoteErrorCode = "NOTE-010005"

	ErrCodeNoteFetchFailed   NoteErrorCode = "NOTE-020001"
	ErrCodeNotePersistFailed NoteErrorCode = "NOTE-030001"
)

// NoteError represents a quick note error with code and message.
type NoteError struct {
	Code    NoteErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *NoteError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *NoteError) Unwrap() error {
	return e.Err
}

// NewNoteError creates a new NoteError with the given code and message.
func NewNoteError(code NoteErrorCode, message string, err error) *NoteError {
	return &NoteError{Code: code, Message: message, Err: err}
}

// NewNoteFetchError wraps a failed note store read.
func NewNoteFetchError(err error) *NoteError {
	return NewNoteError(ErrCodeNoteFetchFailed, "failed to load notes", storeFailure(ErrFetchFailed, err))
}

// NewNotePersistError wraps a failed note store write.
func NewNotePersistError(err error) *NoteError {
	return NewNoteError(ErrCodeNotePersistFailed, "failed to save note", storeFailure(ErrPersistFailed, err))
}
