// terms.go implements validation for keyword and category lists.
//
// Both lists share the same shape - short labels used for exact-match
// filtering - so one function covers them, taking the list kind for error
// messages.

package validate

import (
	"fmt"
	"strings"
)

// Limits for keyword/category lists.
const (
	MaxTermLength = 100
	MaxTerms      = 50
)

// Terms validates a keyword or category list. kind names the list in error
// messages ("keyword" or "category").
//
// Validation rules:
//   - At most MaxTerms entries
//   - Each entry non-blank, without null bytes, at most MaxTermLength bytes
func Terms(kind string, terms []string) error {
	if len(terms) > MaxTerms {
		return fmt.Errorf("%w: more than %d %s entries", ErrInvalidTerm, MaxTerms, kind)
	}
	for _, term := range terms {
		if strings.TrimSpace(term) == "" {
			return fmt.Errorf("%w: blank %s entry", ErrInvalidTerm, kind)
		}
		if strings.ContainsRune(term, 0) {
			return fmt.Errorf("%w: %s entry contains a null byte", ErrInvalidTerm, kind)
		}
		if len(term) > MaxTermLength {
			return fmt.Errorf("%w: %s entry exceeds %d bytes", ErrInvalidTerm, kind, MaxTermLength)
		}
	}
	return nil
}
