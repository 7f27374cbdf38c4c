// Package errs provides standardized error types for the fulfillment core.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package includes error types for the common failure classes:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value fails validation
//   - ValueIsOutOfRangeError: a value lies outside its allowed bounds
//   - ObjectNotFoundError: a referenced object does not exist
//   - InvalidStateError: an order transition is not allowed from its current status
//   - SlotFullError: a delivery window has no remaining capacity
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// Callers classify failures with errors.Is against the sentinels; the HTTP
// adapter relies on this to pick response status codes.
package errs
