// errors.go defines the error type returned by every Service operation.
//
// Design: one error type with a small closed kind set rather than loose
// sentinel errors. Callers dispatch coarsely on Kind (or the Is* helpers)
// while Message always preserves the underlying diagnostic text. The
// wrapped cause stays reachable through errors.Is/As for callers that need
// store sentinels such as store.ErrNotFound.

package catalog

import (
	"errors"
	"fmt"

	"github.com/mkvarda/agora/internal/store"
)

// Kind classifies a QueryError for coarse-grained dispatch.
type Kind int

const (
	// KindStoreFailure covers any failure inside the store or its driver.
	KindStoreFailure Kind = iota
	// KindNotFound means no listing matched the request.
	KindNotFound
	// KindInvalidParameter means a request parameter was rejected at the boundary.
	KindInvalidParameter
	// KindScoringFailure means the fuzzy description scorer failed.
	KindScoringFailure
)

// String returns the kind name for logs and test output.
func (k Kind) String() string {
	switch k {
	case KindStoreFailure:
		return "store_failure"
	case KindNotFound:
		return "not_found"
	case KindInvalidParameter:
		return "invalid_parameter"
	case KindScoringFailure:
		return "scoring_failure"
	default:
		return "unknown"
	}
}

// QueryError is the error type returned by all Service operations.
type QueryError struct {
	Kind    Kind
	Message string
	Err     error // underlying cause, may be nil
}

func (e *QueryError) Error() string { return e.Message }

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *QueryError) Unwrap() error { return e.Err }

func storeFailure(err error) *QueryError {
	return &QueryError{
		Kind:    KindStoreFailure,
		Message: "Database query failed: " + err.Error(),
		Err:     err,
	}
}

func notFound(err error) *QueryError {
	return &QueryError{Kind: KindNotFound, Message: "Agent not found", Err: err}
}

func invalidParameter(format string, args ...any) *QueryError {
	return &QueryError{
		Kind:    KindInvalidParameter,
		Message: "Invalid input parameter: " + fmt.Sprintf(format, args...),
	}
}

func scoringFailure(err error) *QueryError {
	return &QueryError{
		Kind:    KindScoringFailure,
		Message: "Error during fuzzy search: " + err.Error(),
		Err:     err,
	}
}

// translate maps store sentinels onto error kinds. Every store error leaves
// the catalog as a *QueryError.
func translate(err error) *QueryError {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return notFound(err)
	case errors.Is(err, store.ErrInvalidGraph):
		return &QueryError{
			Kind:    KindInvalidParameter,
			Message: "Invalid input parameter: " + err.Error(),
			Err:     err,
		}
	default:
		return storeFailure(err)
	}
}

// IsNotFound reports whether err is a QueryError of kind KindNotFound.
func IsNotFound(err error) bool { return hasKind(err, KindNotFound) }

// IsInvalidParameter reports whether err is a QueryError of kind KindInvalidParameter.
func IsInvalidParameter(err error) bool { return hasKind(err, KindInvalidParameter) }

// IsStoreFailure reports whether err is a QueryError of kind KindStoreFailure.
func IsStoreFailure(err error) bool { return hasKind(err, KindStoreFailure) }

// IsScoringFailure reports whether err is a QueryError of kind KindScoringFailure.
func IsScoringFailure(err error) bool { return hasKind(err, KindScoringFailure) }

func hasKind(err error, k Kind) bool {
	var qe *QueryError
	return errors.As(err, &qe) && qe.Kind == k
}
