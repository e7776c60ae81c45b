// search.go implements ranked full-text search using SQLite's FTS5 extension.
//
// Separated from read.go because FTS5 has fundamentally different query
// semantics. Regular reads use exact id matching; FTS5 uses tokenised
// search with its own query syntax (AND, OR, prefix*, phrase "matching").
//
// Design: The match expression arrives pre-built in SearchQuery.Match and is
// bound as a parameter - this file never assembles query syntax from caller
// input. Candidates are the latest revision of every listing; the FTS match
// is attached with a LEFT JOIN so rows the expression does not match still
// appear with rank 0 and sort behind ranked rows. Rank is -bm25(), flipping
// FTS5's smaller-is-better convention so higher means more relevant.

package store

import (
	"context"
	"fmt"
	"strings"
)

// Search executes a ranked full-text query and returns one RankedAgent per
// matching listing (latest revision), with the description truncated to
// q.DescriptionLength characters. Category conditions are OR-combined and
// ANDed with the base query. Every caller-supplied value is bound.
func (s *SQLiteStore) Search(ctx context.Context, q SearchQuery) ([]RankedAgent, error) {
	var b strings.Builder
	b.WriteString(`SELECT a.id, a.version, a.name, SUBSTR(a.description, 1, ?) AS description, a.author,
			a.keywords, a.categories, a.graph, a.created_at, a.updated_at,
			COALESCE(m.rank, 0.0) AS rank
		FROM agents a
		INNER JOIN (
			SELECT id, MAX(version) AS max_version FROM agents GROUP BY id
		) latest ON a.id = latest.id AND a.version = latest.max_version
		LEFT JOIN (
			SELECT rowid, -bm25(agents_fts) AS rank FROM agents_fts WHERE agents_fts MATCH ?
		) m ON m.rowid = a.rid`)

	args := []any{q.DescriptionLength, q.Match}

	if len(q.Categories) > 0 {
		conditions := make([]string, len(q.Categories))
		for i, c := range q.Categories {
			conditions[i] = `EXISTS (SELECT 1 FROM json_each(a.categories) je WHERE je.value = ?)`
			args = append(args, c)
		}
		b.WriteString(` WHERE (`)
		b.WriteString(strings.Join(conditions, ` OR `))
		b.WriteString(`)`)
	}

	b.WriteString(` ORDER BY ` + searchOrder(q.Sort, q.Order))
	b.WriteString(` LIMIT ? OFFSET ?`)
	args = append(args, q.Limit, q.Offset)

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search agents: %w", err)
	}
	defer rows.Close()

	var results []RankedAgent
	for rows.Next() {
		r, err := scanRankedAgent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan search result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// searchOrder maps the enumerated sort selection to an ORDER BY clause.
// Timestamp and name sorts tie-break by rank descending; everything else
// (including the default rank sort) orders by rank descending with creation
// time as the tie-break.
func searchOrder(k SortKey, o SortOrder) string {
	dir := o.sql()
	switch k {
	case SortCreatedAt:
		return "a.created_at " + dir + ", rank DESC"
	case SortUpdatedAt:
		return "a.updated_at " + dir + ", rank DESC"
	case SortName:
		return "a.name " + dir + ", rank DESC"
	default:
		return "rank DESC, a.created_at DESC"
	}
}

// scanRankedAgent extracts a RankedAgent from a search result row.
func scanRankedAgent(sc scanner) (RankedAgent, error) {
	var r RankedAgent
	var keywords, categories, graph string

	err := sc.Scan(&r.ID, &r.Version, &r.Name, &r.Description, &r.Author,
		&keywords, &categories, &graph, &r.CreatedAt, &r.UpdatedAt, &r.Rank)
	if err != nil {
		return r, err
	}

	if r.Keywords, err = decodeList(keywords); err != nil {
		return r, fmt.Errorf("decode keywords: %w", err)
	}
	if r.Categories, err = decodeList(categories); err != nil {
		return r, fmt.Errorf("decode categories: %w", err)
	}
	if graph != "" {
		r.Graph = []byte(graph)
	}
	return r, nil
}
