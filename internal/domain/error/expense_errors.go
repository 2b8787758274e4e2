package error

import "errors"

// Expense domain errors.
var (
	// ErrExpenseNotFound is returned when an expense does not exist.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrNotAuthorizedToModifyExpense is returned when the expense belongs to another user.
	ErrNotAuthorizedToModifyExpense = errors.New("not authorized to modify expense")

	// ErrInvalidExpenseAmount is returned for missing or negative amounts.
	ErrInvalidExpenseAmount = errors.New("amount must be zero or positive")

	// ErrInvalidExpenseCategory is returned when the category is not in the closed list.
	ErrInvalidExpenseCategory = errors.New("invalid expense category")

	// ErrEmptyExpenseDescription is returned when the description is blank.
	ErrEmptyExpenseDescription = errors.New("description is required")

	// ErrExpenseDescriptionTooLong is returned when the description exceeds 255 characters.
	ErrExpenseDescriptionTooLong = errors.New("description too long")

	// ErrInvalidOccurredOn is returned when the date is not a YYYY-MM-DD calendar date.
	ErrInvalidOccurredOn = errors.New("date must be a valid YYYY-MM-DD calendar date")

	// ErrUnrecognizedVoiceCommand is returned when a transcript cannot be turned into an expense.
	ErrUnrecognizedVoiceCommand = errors.New("could not understand expense command")
)

// ExpenseErrorCode defines error codes for expense errors.
// Format: EXP-XXYYYY where XX is category and YYYY is specific error.
type ExpenseErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidExpenseAmount      ExpenseErrorCode = "EXP-010001"
	ErrCodeInvalidExpenseCategory    ExpenseErrorCode = "EXP-010002"
	ErrCodeEmptyExpenseDescription   ExpenseErrorCode = "EXP-010003"
	ErrCodeExpenseDescriptionTooLong ExpenseErrorCode = "EXP-010004"
	ErrCodeInvalidOccurredOn         ExpenseErrorCode = "EXP-010005"
	ErrCodeUnrecognizedVoiceCommand  ExpenseErrorCode = "EXP-010006"
	ErrCodeExpenseNotFound           ExpenseErrorCode = "EXP-010007"
	ErrCodeNotAuthorizedExpense      ExpenseErrorCode = "EXP-010008"
	ErrCodeInvalidExpensePeriod      ExpenseErrorCode = "EXP-010009"

	// Store errors
	ErrCodeExpenseFetchFailed   ExpenseErrorCode = "EXP-020001"
	ErrCodeExpensePersistFailed ExpenseErrorCode = "EXP-030001"
)

// ExpenseError represents an expense error with code and message.
type ExpenseError struct {
	Code    ExpenseErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExpenseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExpenseError) Unwrap() error {
	return e.Err
}

// NewExpenseError creates a new ExpenseError with the given code and message.
func NewExpenseError(code ExpenseErrorCode, message string, err error) *ExpenseError {
	return &ExpenseError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewExpenseFetchError wraps a failed expense store read.
func NewExpenseFetchError(err error) *ExpenseError {
	return NewExpenseError(ErrCodeExpenseFetchFailed, "failed to load expenses", storeFailure(ErrFetchFailed, err))
}

// NewExpensePersistError wraps a failed expense store write.
func NewExpensePersistError(err error) *ExpenseError {
	return NewExpenseError(ErrCodeExpensePersistFailed, "failed to save expense", storeFailure(ErrPersistFailed, err))
}
