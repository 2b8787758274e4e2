package error

import "errors"

// Dashboard domain errors.
var (
	// ErrInvalidPeriod is returned when the requested period cannot be resolved.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrAmbiguousPeriod is returned when more than one period form is requested.
	ErrAmbiguousPeriod = errors.New("use either month and year, year, or weekOf")

	// ErrInvalidDateFormat is returned when date format is invalid.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
)

// DashboardErrorCode defines error codes for dashboard errors.
// Format: DSH-XXYYYY where XX is category and YYYY is specific error.
type DashboardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPeriod     DashboardErrorCode = "DSH-010001"
	ErrCodeAmbiguousPeriod   DashboardErrorCode = "DSH-010002"
	ErrCodeInvalidDateFormat DashboardErrorCode = "DSH-010003"

	// Store errors
	ErrCodeDashboardFetchFailed DashboardErrorCode = "DSH-020001"
)

// DashboardError represents a dashboard error with code and message.
type DashboardError struct {
	Code    DashboardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DashboardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DashboardError) Unwrap() error {
	return e.Err
}

// NewDashboardError creates a new DashboardError with the given code and message.
func NewDashboardError(code DashboardErrorCode, message string, err error) *DashboardError {
	return &DashboardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewDashboardFetchError wraps a failed read while loading dashboard data.
func NewDashboardFetchError(err error) *DashboardError {
	return NewDashboardError(ErrCodeDashboardFetchFailed, "failed to load dashboard data", storeFailure(ErrFetchFailed, err))
}
