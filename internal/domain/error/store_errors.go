// Package error defines domain-specific errors for the Expense Tracker application.
package error

import "errors"

// Store failure classes shared by every feature. Feature errors wrap one of
// these so callers can tell a failed read from a failed write with errors.Is.
var (
	// ErrFetchFailed is returned when reading from a store fails.
	ErrFetchFailed = errors.New("store read failed")

	// ErrPersistFailed is returned when writing to a store fails.
	ErrPersistFailed = errors.New("store write failed")
)

// IsFetchError reports whether err is a failed store read.
func IsFetchError(err error) bool {
	return errors.Is(err, ErrFetchFailed)
}

// IsPersistError reports whether err is a failed store write.
func IsPersistError(err error) bool {
	return errors.Is(err, ErrPersistFailed)
}

// storeFailure joins a store class sentinel with its cause so both match errors.Is.
func storeFailure(class, cause error) error {
	if cause == nil {
		return class
	}
	return errors.Join(class, cause)
}
