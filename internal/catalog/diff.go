// diff.go implements revision comparison for listings.

package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/mkvarda/agora/internal/diff"
	"github.com/mkvarda/agora/internal/store"
)

// DiffRevisions compares two revisions of a listing, rendering each to
// line-oriented text and computing a unified diff.
func (s *Service) DiffRevisions(ctx context.Context, id string, v1, v2 int) (diff.Result, error) {
	if err := requireID(id); err != nil {
		return diff.Result{}, err
	}
	if v1 < 1 || v2 < 1 {
		return diff.Result{}, invalidParameter("versions must be positive, got %d and %d", v1, v2)
	}

	// Fetch both revisions concurrently; WAL mode supports parallel reads.
	var a1, a2 *store.Agent
	var err1, err2 error

	var wg sync.WaitGroup
	wg.Go(func() {
		a1, err1 = s.store.Version(ctx, id, v1)
	})
	wg.Go(func() {
		a2, err2 = s.store.Version(ctx, id, v2)
	})
	wg.Wait()

	if err1 != nil {
		return diff.Result{}, translate(err1)
	}
	if err2 != nil {
		return diff.Result{}, translate(err2)
	}

	ol := id + " v" + strconv.Itoa(v1)
	nl := id + " v" + strconv.Itoa(v2)
	return diff.Compute(renderRevision(a1), renderRevision(a2), ol, nl), nil
}

// renderRevision flattens a listing into stable line-oriented text so that
// revisions diff field by field.
func renderRevision(a *store.Agent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "name: %s\n", a.Name)
	fmt.Fprintf(&b, "author: %s\n", a.Author)
	fmt.Fprintf(&b, "keywords: %s\n", strings.Join(a.Keywords, ", "))
	fmt.Fprintf(&b, "categories: %s\n", strings.Join(a.Categories, ", "))
	b.WriteString("description:\n")
	for _, line := range strings.Split(a.Description, "\n") {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("graph:\n")
	for _, line := range strings.Split(graphText(a.Graph), "\n") {
		b.WriteString("  " + line + "\n")
	}
	return b.String()
}

// graphText pretty-prints the payload so structural changes surface as
// line diffs. Stored payloads are always valid JSON; raw text is the
// fallback for anything else.
func graphText(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
