// Package store defines catalog persistence types and the Store interface.
// Implementations handle the actual database operations while consumers
// depend only on this interface, enabling testing and alternative backends.
package store

import (
	"encoding/json"
	"time"
)

// Agent represents a single revision of a marketplace listing. Publishing a
// new revision inserts a new row; (ID, Version) uniquely identifies one
// revision and earlier revisions remain readable.
type Agent struct {
	ID          string          // Listing identifier (UUID), shared across revisions
	Version     int             // Revision number (1, 2, 3, ...)
	Name        string          // Display name
	Description string          // Free-text description (searchable)
	Author      string          // Who published the listing
	Keywords    []string        // Ordered keyword strings
	Categories  []string        // Ordered category strings
	Graph       json.RawMessage // Opaque agent graph payload
	CreatedAt   int64           // Unix timestamp of the first revision
	UpdatedAt   int64           // Unix timestamp of this revision
}

// Draft holds the caller-supplied fields for a new listing or revision.
// The store assigns identity, version and timestamps.
type Draft struct {
	Name        string
	Description string
	Author      string
	Keywords    []string
	Categories  []string
	Graph       json.RawMessage
}

// RankedAgent is an Agent projection produced by full-text search. The
// description is truncated by the query and Rank carries the relevance
// score (higher = more relevant; 0 for rows the expression did not match).
// Never persisted - exists only as a query result.
type RankedAgent struct {
	Agent
	Rank float64
}

// TrackedAgent pairs a listing's analytics counters with its latest
// revision. Produced by TopByDownloads.
type TrackedAgent struct {
	Agent
	Downloads int64
	Views     int64
}

// AgentJSON is the API-friendly representation of an Agent with RFC3339
// timestamps. The graph payload can be omitted for bandwidth efficiency.
type AgentJSON struct {
	ID          string          `json:"id"`
	Version     int             `json:"version"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Author      string          `json:"author"`
	Keywords    []string        `json:"keywords"`
	Categories  []string        `json:"categories"`
	Graph       json.RawMessage `json:"graph,omitempty"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

// ToJSON converts an Agent to its API representation. The graph parameter
// controls whether to include the graph payload, allowing efficient listings.
func (a *Agent) ToJSON(graph bool) AgentJSON {
	j := AgentJSON{
		ID:          a.ID,
		Version:     a.Version,
		Name:        a.Name,
		Description: a.Description,
		Author:      a.Author,
		Keywords:    a.Keywords,
		Categories:  a.Categories,
		CreatedAt:   time.Unix(a.CreatedAt, 0).UTC().Format(time.RFC3339),
		UpdatedAt:   time.Unix(a.UpdatedAt, 0).UTC().Format(time.RFC3339),
	}
	if graph {
		j.Graph = a.Graph
	}
	return j
}

// MarshalJSON encodes a value with indentation for human-readable CLI output.
// Use this instead of json.Marshal when the output will be displayed to users.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// SortKey enumerates the fields a query may sort by. Queries only ever see
// these constants - caller-supplied sort strings are parsed into a SortKey
// at the boundary, so no raw input reaches an ORDER BY clause.
type SortKey string

const (
	SortCreatedAt SortKey = "createdAt"
	SortUpdatedAt SortKey = "updatedAt"
	SortName      SortKey = "name"
	SortAuthor    SortKey = "author"
	SortVersion   SortKey = "version"
	SortRank      SortKey = "rank" // full-text relevance, search only
)

// SortOrder is the sort direction.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// sql returns the ORDER BY direction keyword for the enumerated order.
// Anything that is not explicitly ascending sorts descending.
func (o SortOrder) sql() string {
	if o == OrderAsc {
		return "ASC"
	}
	return "DESC"
}

// AgentFilter holds the structured filter conditions for listing queries.
// Empty fields are omitted from the generated SQL entirely rather than
// matching everything, keeping filter-free queries cheap.
type AgentFilter struct {
	Name     string // case-insensitive substring of the listing name
	Keyword  string // exact member of the keywords array
	Category string // exact member of the categories array
}

// ListQuery describes a filtered, sorted, paginated listing query over the
// latest revision of each listing.
type ListQuery struct {
	AgentFilter
	Sort   SortKey
	Order  SortOrder
	Limit  int
	Offset int
}

// SearchQuery describes a ranked full-text query. Match is a complete FTS5
// expression (built by the caller from tokenised input) and is bound as a
// parameter, never spliced into SQL. Categories are OR-combined membership
// conditions, each value bound. DescriptionLength truncates the returned
// description.
type SearchQuery struct {
	Match             string
	Categories        []string
	Sort              SortKey
	Order             SortOrder
	DescriptionLength int
	Limit             int
	Offset            int
}

// Stats provides aggregate catalog statistics for operational visibility.
type Stats struct {
	Listings  int64 // Distinct listing ids
	Revisions int64 // Total revision rows across all listings
	Authors   int64 // Distinct authors
	Tracked   int64 // Listings with an analytics row
	Downloads int64 // Sum of download counters
	Views     int64 // Sum of view counters
	Oldest    int64 // Unix timestamp of the earliest revision (0 if empty)
	Newest    int64 // Unix timestamp of the most recent revision (0 if empty)
}

// encodeList serialises a string slice to its JSON text form for storage.
// nil and empty slices both store as "[]" so scans round-trip cleanly.
func encodeList(vals []string) (string, error) {
	if len(vals) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(vals)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeList parses the stored JSON text form back into a string slice.
func decodeList(s string) ([]string, error) {
	if s == "" || s == "[]" {
		return nil, nil
	}
	var vals []string
	if err := json.Unmarshal([]byte(s), &vals); err != nil {
		return nil, err
	}
	return vals, nil
}
