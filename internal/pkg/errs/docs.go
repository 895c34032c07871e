// Package errs provides standardized error types for the water delivery service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For malformed input rejected before any write
//   - ValueIsOutOfRangeError: For counters that would leave their domain bounds
//   - ObjectNotFoundError: For when an object cannot be found
//   - InvalidTransitionError: For order state changes the lifecycle forbids
//   - QuantityIsInvalidError: For negative bottle counts or payment amounts
//   - ConsistencyDriftError: For aggregates that no longer match their ledger
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// ErrTransactionConflict is the only transaction-layer error. It is never a
// business failure and callers may retry the operation that produced it.
package errs
