// stats.go implements aggregate statistics queries for operational visibility.
//
// Separated to collect "read-only, aggregate" operations distinct from CRUD.
// These queries power the stats command and dashboards without loading
// listing payloads into memory - everything is COUNT(), SUM() and MIN/MAX
// extracted directly in SQL.

package store

import (
	"context"
	"fmt"
)

// CategoryCount pairs a category with the number of listings carrying it.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Stats returns aggregate catalog statistics.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{}

	err := s.db.QueryRowContext(ctx, `SELECT
			COUNT(DISTINCT id),
			COUNT(*),
			COUNT(DISTINCT author),
			COALESCE(MIN(created_at), 0),
			COALESCE(MAX(updated_at), 0)
		FROM agents`).Scan(&st.Listings, &st.Revisions, &st.Authors, &st.Oldest, &st.Newest)
	if err != nil {
		return nil, fmt.Errorf("agent stats: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `SELECT
			COUNT(*),
			COALESCE(SUM(downloads), 0),
			COALESCE(SUM(views), 0)
		FROM analytics`).Scan(&st.Tracked, &st.Downloads, &st.Views)
	if err != nil {
		return nil, fmt.Errorf("analytics stats: %w", err)
	}

	return st, nil
}

// ListAuthors returns all distinct authors who have published listings,
// enabling author-based filtering and audit reporting.
func (s *SQLiteStore) ListAuthors(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT author FROM agents WHERE author != '' ORDER BY author`)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	var authors []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

// ListCategories returns every distinct category across the latest revision
// of all listings, with the number of listings carrying it, most used first.
func (s *SQLiteStore) ListCategories(ctx context.Context) ([]CategoryCount, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT je.value, COUNT(DISTINCT a.id) AS n
		FROM agents a
		INNER JOIN (
			SELECT id, MAX(version) AS max_version FROM agents GROUP BY id
		) latest ON a.id = latest.id AND a.version = latest.max_version,
		json_each(a.categories) je
		GROUP BY je.value
		ORDER BY n DESC, je.value ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []CategoryCount
	for rows.Next() {
		var c CategoryCount
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// FileSize returns the database page usage in bytes, for the stats command.
func (s *SQLiteStore) FileSize(ctx context.Context) (int64, error) {
	var pages, pageSize int64
	if err := s.db.QueryRowContext(ctx, `PRAGMA page_count`).Scan(&pages); err != nil {
		return 0, fmt.Errorf("page count: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `PRAGMA page_size`).Scan(&pageSize); err != nil {
		return 0, fmt.Errorf("page size: %w", err)
	}
	return pages * pageSize, nil
}
