// params.go defines the request parameter types for the listing operations
// and their boundary validation.
//
// Sort fields and directions are closed enumerations. Unrecognised values
// are rejected here rather than passed through to SQL. Ranked search is the
// one exception: an unknown sort field falls back to rank ordering, because
// relevance is always a sensible default for free-text queries.

package catalog

import (
	"strings"

	"github.com/mkvarda/agora/internal/store"
)

// Defaults applied when a caller leaves a field unset (zero).
const (
	DefaultPage      = 1
	DefaultPageSize  = 10
	DefaultThreshold = 60
)

// ListParams filters and pages a structured listing query.
type ListParams struct {
	Page     int
	PageSize int

	// Filters. Zero values are omitted from the query entirely.
	Name     string // case-insensitive substring on the listing name
	Keyword  string // exact membership in the keywords list
	Category string // exact membership in the categories list

	// Description enables the fuzzy post-filter: fetched rows are kept only
	// when they score at least DescriptionThreshold against this text.
	Description          string
	DescriptionThreshold int // 0-100 similarity cutoff; 0 means the service default

	SortBy    string // createdAt | updatedAt | name | author | version
	SortOrder string // asc | desc
}

// SearchParams configures a ranked full-text search.
type SearchParams struct {
	Query    string
	Page     int
	PageSize int

	// Categories, when non-empty, keeps rows whose category list intersects
	// the given set (OR across values).
	Categories []string

	// DescriptionThreshold is the number of characters of each description
	// kept in results. 0 means the service default.
	DescriptionThreshold int

	SortBy    string // createdAt | updatedAt | name | rank (default)
	SortOrder string // asc | desc
}

// pageBounds validates pagination inputs and applies defaults.
func pageBounds(page, size, defaultSize int) (int, int, error) {
	if page < 0 {
		return 0, 0, invalidParameter("page must be positive, got %d", page)
	}
	if size < 0 {
		return 0, 0, invalidParameter("page size must be positive, got %d", size)
	}
	if page == 0 {
		page = DefaultPage
	}
	if size == 0 {
		size = defaultSize
	}
	return page, size, nil
}

// parseListSort maps caller sort fields onto store sort keys. Unrecognised
// fields and directions are both rejected.
func parseListSort(field, order string) (store.SortKey, store.SortOrder, error) {
	var key store.SortKey
	switch field {
	case "", string(store.SortCreatedAt):
		key = store.SortCreatedAt
	case string(store.SortUpdatedAt):
		key = store.SortUpdatedAt
	case string(store.SortName):
		key = store.SortName
	case string(store.SortAuthor):
		key = store.SortAuthor
	case string(store.SortVersion):
		key = store.SortVersion
	default:
		return "", "", invalidParameter("unknown sort field %q", field)
	}

	dir, err := parseOrder(order)
	if err != nil {
		return "", "", err
	}
	return key, dir, nil
}

// parseSearchSort maps caller sort fields for ranked search. An unknown
// field falls back to rank ordering; the direction is still validated.
func parseSearchSort(field, order string) (store.SortKey, store.SortOrder, error) {
	var key store.SortKey
	switch field {
	case string(store.SortCreatedAt):
		key = store.SortCreatedAt
	case string(store.SortUpdatedAt):
		key = store.SortUpdatedAt
	case string(store.SortName):
		key = store.SortName
	default:
		key = store.SortRank
	}

	dir, err := parseOrder(order)
	if err != nil {
		return "", "", err
	}
	return key, dir, nil
}

func parseOrder(order string) (store.SortOrder, error) {
	switch strings.ToLower(order) {
	case "", string(store.OrderDesc):
		return store.OrderDesc, nil
	case string(store.OrderAsc):
		return store.OrderAsc, nil
	default:
		return "", invalidParameter("sort order must be asc or desc, got %q", order)
	}
}
