// Package catalog provides the marketplace query operations backed by a
// store.Store. It exposes a Service which wraps the store client and offers
// listing creation, filtered listing, ranked full-text search, download
// analytics and revision publishing, with every failure normalised into a
// *QueryError.
package catalog

import (
	"context"

	"github.com/mkvarda/agora/internal/config"
	"github.com/mkvarda/agora/internal/log"
	"github.com/mkvarda/agora/internal/store"
	"github.com/mkvarda/agora/internal/workspace"
)

// Service provides catalog operations backed by a Store.
type Service struct {
	store     store.Store
	scorer    Scorer
	dbPath    string
	pageSize  int
	threshold int
}

// New creates a Service, discovering the catalog database by walking up the
// directory tree. The db parameter selects a named catalog (empty for the
// default). Returns workspace.ErrNotInitialised if no catalog is found.
func New(db string) (*Service, error) {
	dbPath, err := workspace.Discover(db)
	if err != nil {
		return nil, err
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err // config.Load provides detailed, actionable error messages
	}

	return &Service{
		store:     s,
		scorer:    fuzzScorer{},
		dbPath:    dbPath,
		pageSize:  cfg.PageSize(),
		threshold: cfg.FuzzyThreshold(),
	}, nil
}

// NewWithStore creates a Service backed by an existing store client.
// A nil scorer selects the default fuzzy scorer. Used by tests and by
// embedders that manage the store lifecycle themselves.
func NewWithStore(st store.Store, scorer Scorer) *Service {
	if scorer == nil {
		scorer = fuzzScorer{}
	}
	return &Service{
		store:     st,
		scorer:    scorer,
		pageSize:  DefaultPageSize,
		threshold: DefaultThreshold,
	}
}

// Init initialises a new agora catalog.
// If dir is empty, uses the current directory; otherwise uses dir.
// The db parameter selects a named catalog (empty for the default).
// If local is true, the database is added to .gitignore (not committed).
//
// Note: Init does not write config. Config is managed via "agora config".
func Init(force bool, db string, local bool, dir string) error {
	return workspace.Init(force, db, local, dir)
}

// Close checkpoints the WAL and closes the database connection.
func (s *Service) Close() error {
	if err := s.store.Checkpoint(context.Background()); err != nil {
		log.Event("catalog:close", "checkpoint").
			Detail("error", err.Error()).
			Write(err)
	}
	return s.store.Close()
}

// DBPath returns the path to the catalog database file.
func (s *Service) DBPath() string {
	return s.dbPath
}
