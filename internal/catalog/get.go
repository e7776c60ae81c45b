// get.go implements single-listing retrieval.

package catalog

import (
	"context"

	"github.com/mkvarda/agora/internal/store"
)

// Get returns one listing by id. version selects a specific revision;
// 0 means the latest.
func (s *Service) Get(ctx context.Context, id string, version int) (*store.Agent, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if version < 0 {
		return nil, invalidParameter("version must be positive, got %d", version)
	}

	var (
		a   *store.Agent
		err error
	)
	if version > 0 {
		a, err = s.store.Version(ctx, id, version)
	} else {
		a, err = s.store.Latest(ctx, id)
	}
	if err != nil {
		return nil, translate(err)
	}
	return a, nil
}

// Revisions returns every revision of a listing, newest first.
func (s *Service) Revisions(ctx context.Context, id string) ([]store.Agent, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	revs, err := s.store.Revisions(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if len(revs) == 0 {
		return nil, notFound(store.ErrNotFound)
	}
	return revs, nil
}
