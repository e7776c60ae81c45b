// read.go implements listing retrieval operations for the SQLite store.
//
// Separated from the main store file to isolate read-only query logic. These
// operations never modify data, enabling clearer reasoning about side effects
// and potential future read replica support.
//
// Design: Listing queries work with the "latest revision" concept - when
// multiple revisions of a listing exist, List and Count consider only the
// highest version. Latest/Version/Revisions address revisions directly.
// Filter values are always bound as parameters; sort fields and directions
// come from the SortKey/SortOrder enums, so no caller-supplied string ever
// reaches the SQL text.

package store

import (
	"context"
	"fmt"
	"strings"
)

// Latest returns the highest revision of the listing with the given id.
func (s *SQLiteStore) Latest(ctx context.Context, id string) (*Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE id = ?
		ORDER BY version DESC LIMIT 1`
	return s.scanAgentRow(s.db.QueryRowContext(ctx, query, id))
}

// Version returns one specific revision of a listing. Unlike Latest it never
// falls back to another revision - the exact (id, version) pair must exist.
func (s *SQLiteStore) Version(ctx context.Context, id string, version int) (*Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE id = ? AND version = ?`
	return s.scanAgentRow(s.db.QueryRowContext(ctx, query, id, version))
}

// Revisions returns every revision of a listing in descending version order
// (newest first). An unknown id yields an empty slice, not an error.
func (s *SQLiteStore) Revisions(ctx context.Context, id string) ([]Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE id = ? ORDER BY version DESC`
	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("list revisions for %s: %w", id, err)
	}
	defer rows.Close()

	return s.scanAgents(rows)
}

// List returns the latest revision of every listing matching the filter,
// sorted and paginated. The subquery finds max versions per id first, then
// joins to get full rows. Absent filters are omitted from the SQL entirely.
func (s *SQLiteStore) List(ctx context.Context, q ListQuery) ([]Agent, error) {
	var b strings.Builder
	b.WriteString(`SELECT a.id, a.version, a.name, a.description, a.author,
			a.keywords, a.categories, a.graph, a.created_at, a.updated_at
		FROM agents a
		INNER JOIN (
			SELECT id, MAX(version) AS max_version FROM agents GROUP BY id
		) latest ON a.id = latest.id AND a.version = latest.max_version`)

	conditions, args := q.AgentFilter.clauses()
	if len(conditions) > 0 {
		b.WriteString(` WHERE `)
		b.WriteString(strings.Join(conditions, ` AND `))
	}

	b.WriteString(` ORDER BY ` + sortColumn(q.Sort) + ` ` + q.Order.sql())
	b.WriteString(` LIMIT ? OFFSET ?`)
	args = append(args, q.Limit, q.Offset)

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	defer rows.Close()

	return s.scanAgents(rows)
}

// Count returns the number of listings (latest revisions) matching the
// filter - the true dataset-wide count behind a paginated List call.
func (s *SQLiteStore) Count(ctx context.Context, f AgentFilter) (int64, error) {
	var b strings.Builder
	b.WriteString(`SELECT COUNT(*)
		FROM agents a
		INNER JOIN (
			SELECT id, MAX(version) AS max_version FROM agents GROUP BY id
		) latest ON a.id = latest.id AND a.version = latest.max_version`)

	conditions, args := f.clauses()
	if len(conditions) > 0 {
		b.WriteString(` WHERE `)
		b.WriteString(strings.Join(conditions, ` AND `))
	}

	var count int64
	err := s.db.QueryRowContext(ctx, b.String(), args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count agents: %w", err)
	}
	return count, nil
}

// clauses converts the filter into SQL conditions with bound arguments.
// Name matching is a case-insensitive substring test (SQLite LIKE is
// case-insensitive for ASCII); keyword and category test membership in the
// stored JSON arrays.
func (f AgentFilter) clauses() ([]string, []any) {
	var conditions []string
	var args []any

	if f.Name != "" {
		conditions = append(conditions, `a.name LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(f.Name)+"%")
	}
	if f.Keyword != "" {
		conditions = append(conditions, `EXISTS (SELECT 1 FROM json_each(a.keywords) je WHERE je.value = ?)`)
		args = append(args, f.Keyword)
	}
	if f.Category != "" {
		conditions = append(conditions, `EXISTS (SELECT 1 FROM json_each(a.categories) je WHERE je.value = ?)`)
		args = append(args, f.Category)
	}
	return conditions, args
}

// sortColumn maps a SortKey to its column expression. Only enum values are
// mapped; anything unrecognised (including SortRank, which is search-only)
// sorts by creation time.
func sortColumn(k SortKey) string {
	switch k {
	case SortUpdatedAt:
		return "a.updated_at"
	case SortName:
		return "a.name"
	case SortAuthor:
		return "a.author"
	case SortVersion:
		return "a.version"
	default:
		return "a.created_at"
	}
}

// escapeLike escapes LIKE wildcards in a user-supplied fragment so a name
// filter containing % or _ matches those characters literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
