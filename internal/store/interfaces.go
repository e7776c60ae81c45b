// interfaces.go defines the storage abstraction for the catalog.
//
// Separated from the SQLite implementation to enable testing and potential
// alternative backends. The interfaces are intentionally granular (Finder,
// Creator, Searcher, Analytics) to support interface segregation - consumers
// only depend on the capabilities they need, and tests substitute small
// fakes that capture the query specs they receive.

package store

import (
	"context"
	"database/sql"
)

// Finder defines read-only operations for retrieving listings.
type Finder interface {
	// Latest retrieves the highest revision of a listing.
	// Returns ErrNotFound if the id is unknown.
	Latest(ctx context.Context, id string) (*Agent, error)

	// Version retrieves one specific revision. Returns ErrNotFound if the
	// exact (id, version) pair does not exist.
	Version(ctx context.Context, id string, version int) (*Agent, error)

	// Revisions returns all revisions of a listing, newest first.
	Revisions(ctx context.Context, id string) ([]Agent, error)

	// List returns the latest revision of listings matching the query's
	// filter, sorted and paginated.
	List(ctx context.Context, q ListQuery) ([]Agent, error)

	// Count returns the dataset-wide number of listings matching a filter,
	// independent of pagination.
	Count(ctx context.Context, f AgentFilter) (int64, error)
}

// Creator defines operations that add listing rows. There is no update or
// delete - a change is a new revision.
type Creator interface {
	// CreateAgent inserts revision 1 of a new listing and its analytics row
	// in one transaction.
	CreateAgent(ctx context.Context, d Draft) (*Agent, error)

	// PublishVersion inserts the next revision of an existing listing.
	PublishVersion(ctx context.Context, id string, d Draft) (*Agent, error)
}

// Searcher defines ranked full-text search.
type Searcher interface {
	// Search executes a pre-built, parameter-bound FTS query and returns
	// ranked projections of the latest revisions.
	Search(ctx context.Context, q SearchQuery) ([]RankedAgent, error)
}

// Analytics defines download/view counter operations.
type Analytics interface {
	// TopByDownloads returns analytics rows joined with their listing,
	// ordered by downloads descending.
	TopByDownloads(ctx context.Context, limit, offset int) ([]TrackedAgent, error)

	// CountTracked returns the number of analytics rows with a listing to
	// join against.
	CountTracked(ctx context.Context) (int64, error)

	// AddDownload increments a listing's download counter.
	AddDownload(ctx context.Context, agentID string) error

	// AddView increments a listing's view counter.
	AddView(ctx context.Context, agentID string) error
}

// Maintainer defines operations for database maintenance and reporting.
type Maintainer interface {
	// Close releases the database connection.
	Close() error

	// DB exposes the underlying connection for callers needing custom queries.
	DB() *sql.DB

	// Checkpoint flushes WAL to the main database file.
	Checkpoint(ctx context.Context) error

	// Stats returns aggregate catalog statistics.
	Stats(ctx context.Context) (*Stats, error)

	// FileSize returns the database page usage in bytes.
	FileSize(ctx context.Context) (int64, error)

	// ListAuthors returns the distinct authors across all revisions.
	ListAuthors(ctx context.Context) ([]string, error)

	// ListCategories returns categories used by latest revisions with
	// listing counts, most used first.
	ListCategories(ctx context.Context) ([]CategoryCount, error)
}

// Store defines the full persistence interface for the catalog.
type Store interface {
	Finder
	Creator
	Searcher
	Analytics
	Maintainer
}
