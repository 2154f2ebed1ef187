// Package errs provides standardized error types for the RouteX application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for the cross-cutting error scenarios:
//   - ValueIsRequiredError: for when a required value is missing
//   - ValueIsInvalidError: for when a value is invalid
//   - ValueIsOutOfRangeError: for when a value falls outside its allowed bounds
//   - ObjectNotFoundError: for when an object cannot be found
//   - PermissionDeniedError: for when the caller's role does not allow an operation
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Domain-specific failure kinds (insufficient stock, invalid status transition, and
// the like) live next to the aggregates they belong to and follow the same shape.
package errs
