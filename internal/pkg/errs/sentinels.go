package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound      = errors.New("object not found")
	ErrValueIsInvalid      = errors.New("value is invalid")
	ErrValueIsOutOfRange   = errors.New("value is out of range")
	ErrValueIsRequired     = errors.New("value is required")
	ErrQuantityIsInvalid   = errors.New("quantity is invalid")
	ErrInvalidTransition   = errors.New("invalid transition")
	ErrConsistencyDrift    = errors.New("consistency drift")
	ErrTransactionConflict = errors.New("transaction conflict")
)

// IsRetryable reports whether the error came from the transaction layer and the
// whole operation may be retried as-is.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransactionConflict)
}

// IsClientError reports whether the error was caused by the caller's input or
// by a business rule rejecting the requested change.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsOutOfRange) ||
		errors.Is(err, ErrQuantityIsInvalid) ||
		errors.Is(err, ErrInvalidTransition)
}

func sanitize(v any) string {
	return strings.Join(strings.Fields(fmt.Sprintf("%v", v)), " ")
}
