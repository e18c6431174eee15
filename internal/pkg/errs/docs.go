// Package errs provides the typed errors shared by the fulfillment domain, application and adapters.
//
// Every error type follows the same shape:
//   - a sentinel variable (ErrObjectNotFound, ErrValueIsInvalid, ...) used with errors.Is
//   - a struct carrying the failure details
//   - constructors with and without an underlying cause
//   - Unwrap returning the sentinel
//
// Adapters translate these sentinels into transport codes: ErrObjectNotFound becomes 404,
// ErrInvalidStateTransition and ErrConcurrencyConflict become 409, the value errors become 400.
package errs
