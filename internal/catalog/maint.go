// maint.go implements catalog reporting operations.

package catalog

import (
	"context"

	"github.com/mkvarda/agora/internal/store"
)

// Stats returns aggregate catalog statistics.
func (s *Service) Stats(ctx context.Context) (*store.Stats, error) {
	st, err := s.store.Stats(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return st, nil
}

// FileSize reports the catalog database size in bytes.
func (s *Service) FileSize(ctx context.Context) (int64, error) {
	n, err := s.store.FileSize(ctx)
	if err != nil {
		return 0, translate(err)
	}
	return n, nil
}

// Categories returns every category used by a latest revision, with listing
// counts, most used first.
func (s *Service) Categories(ctx context.Context) ([]store.CategoryCount, error) {
	cats, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return cats, nil
}

// Authors returns every distinct author who has published a revision,
// sorted. Unlike Categories this spans all revisions: an author replaced
// in a later revision has still published.
func (s *Service) Authors(ctx context.Context) ([]string, error) {
	authors, err := s.store.ListAuthors(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return authors, nil
}
