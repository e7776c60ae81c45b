// listing.go implements validation for a listing's descriptive fields.
//
// Names identify listings in every command's output, so they must be
// present and printable. Descriptions and authors are free text with size
// caps only.

package validate

import (
	"fmt"
	"strings"
)

// Size limits for listing fields. Generous on purpose: the caps exist to
// keep accidental garbage (pasted files, binary junk) out of the catalog,
// not to constrain real listings.
const (
	MaxNameLength        = 500
	MaxAuthorLength      = 200
	MaxDescriptionLength = 64 * 1024
)

// Name validates a listing name.
//
// Validation rules:
//   - Required (non-blank after trimming)
//   - No null bytes
//   - At most MaxNameLength bytes
func Name(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidName)
	}
	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: name contains a null byte", ErrInvalidName)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d bytes", ErrInvalidName, MaxNameLength)
	}
	return nil
}

// Author validates an author string. Empty is allowed: commands fill in a
// detected author before publishing.
func Author(author string) error {
	if strings.ContainsRune(author, 0) {
		return fmt.Errorf("%w: author contains a null byte", ErrInvalidAuthor)
	}
	if len(author) > MaxAuthorLength {
		return fmt.Errorf("%w: author exceeds %d bytes", ErrInvalidAuthor, MaxAuthorLength)
	}
	return nil
}

// Description validates description size. Content is not otherwise
// inspected - descriptions are free-form markdown.
func Description(description string) error {
	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d bytes", ErrContentTooLarge, MaxDescriptionLength)
	}
	return nil
}
