// errors.go defines sentinel errors for validation failures.
//
// Separated to centralise error definitions. These errors are used with
// errors.Is() for type-safe error checking. Each error represents a
// distinct validation failure category.
//
// Design: Sentinel errors (not error types) because validation failures
// don't carry additional context beyond the category. Detailed messages
// are provided by wrapping these with fmt.Errorf in the validation functions.

package validate

import "errors"

var (
	ErrInvalidName     = errors.New("invalid name")
	ErrInvalidAuthor   = errors.New("invalid author")
	ErrInvalidTerm     = errors.New("invalid term")
	ErrContentTooLarge = errors.New("content too large")
)
