// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// business logic while this package handles presentation concerns like
// column alignment and human-readable sizes.
package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mkvarda/agora/internal/store"
)

// humanSize formats a byte count as human-readable (e.g., "1.2K", "3.4M").
func humanSize(bytes int64) string {
	const (
		_        = iota
		KB int64 = 1 << (10 * iota)
		MB
		GB
	)
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1fG", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1fM", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1fK", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

// List prints listings in simple list format: id and name.
func List(w io.Writer, agents []store.Agent) error {
	for _, a := range agents {
		fmt.Fprintf(w, "%s  %s\n", a.ID, a.Name)
	}
	return nil
}

// IDs prints just listing ids, one per line, for scripting.
func IDs(w io.Writer, agents []store.Agent) error {
	for _, a := range agents {
		fmt.Fprintln(w, a.ID)
	}
	return nil
}

// Long prints listings in long format with id, version, date, author and name.
//
// Column order is ID, VER, UPDATED, AUTHOR, NAME. Fixed-width columns come
// first so they align properly. Variable-length fields like AUTHOR and NAME
// are placed at the end where their varying widths do not disrupt the
// alignment of other columns.
func Long(w io.Writer, agents []store.Agent) error {
	if len(agents) == 0 {
		return nil
	}

	// Find max author length for alignment
	maxAuthor := 6 // minimum "AUTHOR"
	for _, a := range agents {
		if len(author(a)) > maxAuthor {
			maxAuthor = len(author(a))
		}
	}

	// Print header
	fmt.Fprintf(w, "%-36s  %4s  %-10s  %-*s  %s\n", "ID", "VER", "UPDATED", maxAuthor, "AUTHOR", "NAME")

	for _, a := range agents {
		date := time.Unix(a.UpdatedAt, 0).Format("2006-01-02")
		fmt.Fprintf(w, "%-36s  v%-3d  %s  %-*s  %s\n", a.ID, a.Version, date, maxAuthor, author(a), a.Name)
	}
	return nil
}

// Revisions prints the revision history of a listing, newest first.
func Revisions(w io.Writer, agents []store.Agent) error {
	for _, a := range agents {
		t := time.Unix(a.UpdatedAt, 0)
		fmt.Fprintf(w, "v%-3d  %-16s  %-20s  %s\n",
			a.Version,
			t.Format("2006-01-02 15:04"),
			author(a),
			a.Name,
		)
	}
	return nil
}

// SearchResults prints ranked search results. The description column is
// already truncated by the query; collapse newlines so each hit stays on
// one line.
func SearchResults(w io.Writer, results []store.RankedAgent) error {
	if len(results) == 0 {
		return nil
	}

	maxName := 4 // minimum "NAME"
	for _, r := range results {
		if len(r.Name) > maxName {
			maxName = len(r.Name)
		}
	}

	fmt.Fprintf(w, "%6s  %-36s  %-*s  %s\n", "RANK", "ID", maxName, "NAME", "DESCRIPTION")

	for _, r := range results {
		desc := strings.ReplaceAll(r.Description, "\n", " ")
		fmt.Fprintf(w, "%6.2f  %-36s  %-*s  %s\n", r.Rank, r.ID, maxName, r.Name, desc)
	}
	return nil
}

// Top prints the most-downloaded listings with their analytics counters.
func Top(w io.Writer, tracked []store.TrackedAgent) error {
	if len(tracked) == 0 {
		return nil
	}

	fmt.Fprintf(w, "%9s  %9s  %-36s  %s\n", "DOWNLOADS", "VIEWS", "ID", "NAME")

	for _, a := range tracked {
		fmt.Fprintf(w, "%9d  %9d  %-36s  %s\n", a.Downloads, a.Views, a.ID, a.Name)
	}
	return nil
}

// Categories prints category usage counts, most used first.
func Categories(w io.Writer, categories []store.CategoryCount) error {
	if len(categories) == 0 {
		return nil
	}

	fmt.Fprintf(w, "%6s  %s\n", "COUNT", "CATEGORY")
	for _, c := range categories {
		fmt.Fprintf(w, "%6d  %s\n", c.Count, c.Name)
	}
	return nil
}

// Stats prints aggregate catalog statistics as aligned key-value lines.
// fileSize is the database size in bytes (0 to omit).
func Stats(w io.Writer, st *store.Stats, fileSize int64) error {
	rows := []struct {
		label string
		value string
	}{
		{"Listings", fmt.Sprintf("%d", st.Listings)},
		{"Revisions", fmt.Sprintf("%d", st.Revisions)},
		{"Authors", fmt.Sprintf("%d", st.Authors)},
		{"Tracked", fmt.Sprintf("%d", st.Tracked)},
		{"Downloads", fmt.Sprintf("%d", st.Downloads)},
		{"Views", fmt.Sprintf("%d", st.Views)},
	}
	if st.Oldest > 0 {
		rows = append(rows, struct{ label, value string }{
			"Oldest", time.Unix(st.Oldest, 0).Format("2006-01-02 15:04")})
	}
	if st.Newest > 0 {
		rows = append(rows, struct{ label, value string }{
			"Newest", time.Unix(st.Newest, 0).Format("2006-01-02 15:04")})
	}
	if fileSize > 0 {
		rows = append(rows, struct{ label, value string }{"Size", humanSize(fileSize)})
	}

	for _, r := range rows {
		fmt.Fprintf(w, "%-10s %s\n", r.label+":", r.value)
	}
	return nil
}

// PageInfo prints a pagination footer like "page 2 of 3 (12 listings)".
// Omitted when everything fits on one page.
func PageInfo(w io.Writer, page, totalPages int, total int64) {
	if totalPages <= 1 {
		return
	}
	noun := "listings"
	if total == 1 {
		noun = "listing"
	}
	fmt.Fprintf(w, "page %d of %d (%d %s)\n", page, totalPages, total, noun)
}

func author(a store.Agent) string {
	if a.Author == "" {
		return "-"
	}
	return a.Author
}
