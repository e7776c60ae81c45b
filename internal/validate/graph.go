// graph.go implements validation for the opaque graph payload.
//
// Only size is checked here. Structural validity (the payload must be a
// JSON document) is enforced by the storage layer, which guards every
// write path including callers that bypass this package.

package validate

import "fmt"

// MaxGraphBytes caps the graph payload size. Graphs are declarative agent
// wiring, not data stores; 4 MB is far beyond any legitimate definition.
const MaxGraphBytes = 4 * 1024 * 1024

// Graph validates payload size. An empty payload is allowed - the store
// persists it as an empty document.
func Graph(raw []byte) error {
	if len(raw) > MaxGraphBytes {
		return fmt.Errorf("%w: graph exceeds %d bytes", ErrContentTooLarge, MaxGraphBytes)
	}
	return nil
}
