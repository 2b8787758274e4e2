package error

import "errors"

// Settings domain errors.
var (
	// ErrSettingsNotFound is returned by the store when a user has no settings record yet.
	ErrSettingsNotFound = errors.New("settings not found")

	// ErrInvalidMonthlyIncome is returned for negative income.
	ErrInvalidMonthlyIncome = errors.New("monthly income must be zero or positive")

	// ErrFixedExpenseNotFound is returned when no item has the given id.
	ErrFixedExpenseNotFound = errors.New("fixed expense not found")

	// ErrInvalidFixedExpenseAmount is returned for missing or negative item amounts.
	ErrInvalidFixedExpenseAmount = errors.New("fixed expense amount must be zero or positive")

	// ErrEmptyFixedExpenseName is returned when the item name is blank.
	ErrEmptyFixedExpenseName = errors.New("fixed expense name is required")

	// ErrInvalidFixedExpenseCategory is returned when the category is not a fixed category.
	ErrInvalidFixedExpenseCategory = errors.New("invalid fixed expense category")

	// ErrEmptySettingsPatch is returned when an update carries no fields.
	ErrEmptySettingsPatch = errors.New("at least one field must be provided")
)

// SettingsErrorCode defines error codes for settings errors.
// Format: SET-XXYYYY where XX is category and YYYY is specific error.
type SettingsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidMonthlyIncome        SettingsErrorCode = "SET-010001"
	ErrCodeFixedExpenseNotFound        SettingsErrorCode = "SET-010002"
	ErrCodeInvalidFixedExpenseAmount   SettingsErrorCode = "SET-010003"
	ErrCodeEmptyFixedExpenseName       SettingsErrorCode = "SET-010004"
	ErrCodeInvalidFixedExpenseCategory SettingsErrorCode = "SET-010005"
	ErrCodeEmptySettingsPatch          SettingsErrorCode = "SET-010006"

	// Store errors
	ErrCodeSettingsFetchFailed   SettingsErrorCode = "SET-020001"
	ErrCodeSettingsPersistFailed SettingsErrorCode = "SET-030001"
)

// SettingsError represents a settings error with code and message.
type SettingsError struct {
	Code    SettingsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SettingsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SettingsError) Unwrap() error {
	return e.Err
}

// NewSettingsError creates a new SettingsError with the given code and message.
func NewSettingsError(code SettingsErrorCode, message string, err error) *SettingsError {
	return &SettingsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewSettingsFetchError wraps a failed settings store read.
func NewSettingsFetchError(err error) *SettingsError {
	return NewSettingsError(ErrCodeSettingsFetchFailed, "failed to load settings", storeFailure(ErrFetchFailed, err))
}

// NewSettingsPersistError wraps a failed settings store write.
func NewSettingsPersistError(err error) *SettingsError {
	return NewSettingsError(ErrCodeSettingsPersistFailed, "failed to save settings", storeFailure(ErrPersistFailed, err))
}
