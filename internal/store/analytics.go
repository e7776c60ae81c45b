// analytics.go implements download/view counter operations.
//
// Separated because analytics rows have a different shape from listings:
// one row per listing id, shared by all revisions, mutated in place (the
// only in-place mutation in the store - counters are not history-worthy).
//
// Design: TopByDownloads joins analytics to the latest revision of each
// listing with an inner join, so a listing without an analytics row never
// appears in the ranking. Zero-download rows do appear - exclusion is about
// the missing relationship, not the counter value.

package store

import (
	"context"
	"fmt"
)

// TopByDownloads returns analytics rows joined with the latest revision of
// their listing, ordered by download count descending.
func (s *SQLiteStore) TopByDownloads(ctx context.Context, limit, offset int) ([]TrackedAgent, error) {
	query := `SELECT a.id, a.version, a.name, a.description, a.author,
			a.keywords, a.categories, a.graph, a.created_at, a.updated_at,
			t.downloads, t.views
		FROM analytics t
		INNER JOIN agents a ON a.id = t.agent_id
		INNER JOIN (
			SELECT id, MAX(version) AS max_version FROM agents GROUP BY id
		) latest ON a.id = latest.id AND a.version = latest.max_version
		ORDER BY t.downloads DESC
		LIMIT ? OFFSET ?`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("top agents: %w", err)
	}
	defer rows.Close()

	var tracked []TrackedAgent
	for rows.Next() {
		var t TrackedAgent
		var keywords, categories, graph string

		err := rows.Scan(&t.ID, &t.Version, &t.Name, &t.Description, &t.Author,
			&keywords, &categories, &graph, &t.CreatedAt, &t.UpdatedAt,
			&t.Downloads, &t.Views)
		if err != nil {
			return nil, fmt.Errorf("scan tracked agent: %w", err)
		}
		if t.Keywords, err = decodeList(keywords); err != nil {
			return nil, fmt.Errorf("decode keywords: %w", err)
		}
		if t.Categories, err = decodeList(categories); err != nil {
			return nil, fmt.Errorf("decode categories: %w", err)
		}
		if graph != "" {
			t.Graph = []byte(graph)
		}
		tracked = append(tracked, t)
	}
	return tracked, rows.Err()
}

// CountTracked returns the number of analytics rows that have a listing to
// join against - the true dataset-wide count behind TopByDownloads.
func (s *SQLiteStore) CountTracked(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analytics t
		WHERE EXISTS (SELECT 1 FROM agents a WHERE a.id = t.agent_id)`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count tracked agents: %w", err)
	}
	return count, nil
}

// AddDownload increments the download counter for a listing.
// Returns ErrNotFound if the listing has no analytics row.
func (s *SQLiteStore) AddDownload(ctx context.Context, agentID string) error {
	return s.increment(ctx, "downloads", agentID)
}

// AddView increments the view counter for a listing.
// Returns ErrNotFound if the listing has no analytics row.
func (s *SQLiteStore) AddView(ctx context.Context, agentID string) error {
	return s.increment(ctx, "views", agentID)
}

// increment bumps one counter column by one. The column name comes only from
// the two callers above, never from caller input.
func (s *SQLiteStore) increment(ctx context.Context, column, agentID string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE analytics SET `+column+` = `+column+` + 1 WHERE agent_id = ?`, agentID)
	if err != nil {
		return fmt.Errorf("increment %s for %s: %w", column, agentID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment %s for %s: %w", column, agentID, err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
