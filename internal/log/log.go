// Package log provides centralised audit logging for agora operations.
// Logs are stored in ~/.agora/log/agora-log.db and track all CLI commands
// across catalogs.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("catalog:show", "read").
//		Author(cmd.Author()).
//		Listing(id).
//		Version(agent.Version).
//		Write(err)
//
//	log.Event("catalog:search", "search").
//		Author(cmd.Author()).
//		Detail("query", query).
//		Detail("count", len(results)).
//		Write(err)
//
// The source parameter follows the format "{area}:{command}", for example
// "catalog:show", "catalog:publish" or "workspace:init".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source  string // e.g., "catalog:show", "catalog:publish"
	Author  string // who performed the action
	Action  string // verb: read, publish, list, search, etc.
	Listing string // input: agent id requested
	Version int    // input: revision requested

	// Output field - populated after the operation succeeds
	ResultVersion int // output: revision created or accessed

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated, in the format
// "{area}:{command}" (e.g., "catalog:show", "catalog:search").
//
// The action describes what operation was performed:
//   - "read", "publish", "list", "search", "pull", "import", etc.
//
// Example:
//
//	log.Event("catalog:publish", "publish").
//		Author(cmd.Author()).
//		Listing(id).
//		Write(err)
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation.
//
// For CLI commands, use cmd.Author() which returns the configured author.
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Listing sets the agent id this operation affects.
//
// Use for operations that target a specific listing. Leave unset for
// operations that don't (e.g., search, config).
func (b *Builder) Listing(id string) *Builder {
	b.entry.Listing = id
	return b
}

// Version sets the input revision for this operation.
//
// Use for operations where the user specified a revision to access.
func (b *Builder) Version(version int) *Builder {
	b.entry.Version = version
	return b
}

// ResultVersion sets the revision that resulted from the operation (output).
//
// For publishes: the new revision created.
// For reads: the revision that was actually accessed.
func (b *Builder) ResultVersion(version int) *Builder {
	b.entry.ResultVersion = version
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields:
// search queries, result counts, import sources, etc. Can be called
// multiple times to add multiple details.
//
// Example:
//
//	log.Event("catalog:search", "search").
//		Detail("query", query).
//		Detail("count", len(results))
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
// If err is nil, the entry is logged as successful.
// If err is non-nil, the entry is logged as failed with the error message.
//
// This is the standard way to complete a log entry after an operation.
//
// Example:
//
//	agent, err := svc.Get(ctx, id, 0)
//	log.Event("catalog:show", "read").Listing(id).Write(err)
//	if err != nil {
//		return err
//	}
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetCatalog sets the catalog identifier for subsequent log entries.
// The dir should be the absolute path to the .agora directory.
func SetCatalog(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.catalog = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
