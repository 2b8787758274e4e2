package error

import "errors"

// Water reminder domain errors.
var (
	ErrReminderNotFound        = errors.New("reminder not found")
	ErrInvalidReminderInterval = errors.New("interval must be between 15 and 240 minutes")
	ErrInvalidReminderTime     = errors.New("time must use the HH:MM format")
)

// ReminderErrorCode defines error codes for water reminder errors.
type ReminderErrorCode string

const (
	ErrCodeInvalidReminderInterval ReminderErrorCode = "RMD-010001"
	ErrCodeInvalidReminderTime     ReminderErrorCode = "RMD-010002"

	ErrCodeReminderFetchFailed   ReminderErrorCode = "RMD-020001"
	ErrCodeReminderPersistFailed ReminderErrorCode = "RMD-030001"
)

// ReminderError represents a water reminder error with code and message.
type ReminderError struct {
	Code    ReminderErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReminderError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReminderError) Unwrap() error {
	return e.Err
}

// NewReminderError creates a new ReminderError with the given code and message.
func NewReminderError(code ReminderErrorCode, message string, err error) *ReminderError {
	return &ReminderError{Code: code, Message: message, Err: err}
}

// NewReminderFetchError wraps a failed reminder store read.
func NewReminderFetchError(err error) *ReminderError {
	return NewReminderError(ErrCodeReminderFetchFailed, "failed to load reminder", storeFailure(ErrFetchFailed, err))
}

// NewReminderPersistError wraps a failed reminder store write.
func NewReminderPersistError(err error) *ReminderError {
	return NewReminderError(ErrCodeReminderPersistFailed, "failed to save reminder", storeFailure(ErrPersistFailed, err))
}
