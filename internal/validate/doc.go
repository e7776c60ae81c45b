// Package validate provides input validation for agora's domain types.
//
// This package enforces data integrity rules at the boundary between user
// input and the storage layer. Each validation function returns nil on
// success or a descriptive error on failure.
//
// # Design Philosophy
//
// Validation is minimal by design. We reject clearly broken inputs (null
// bytes, missing names, excessive sizes) but avoid overly restrictive rules
// that would limit legitimate use cases. The goal is integrity without
// arbitrarily constraining publishers.
//
// # Validation Functions
//
// Name, Description and Author validate the listing's descriptive fields.
// Terms validates keyword and category lists.
// Graph validates the payload size; payload structure is enforced by the
// storage layer.
//
// # Error Handling
//
// All validation errors wrap one of the sentinel errors defined in
// errors.go. Use errors.Is() for type-safe error checking:
//
//	if errors.Is(err, validate.ErrInvalidName) {
//	    // handle invalid name
//	}
package validate
