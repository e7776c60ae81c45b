// top.go implements the download leaderboard.

package catalog

import (
	"context"

	"github.com/mkvarda/agora/internal/store"
)

// TopByDownloads pages through listings ordered by download count,
// descending. Listings without an analytics row are excluded by the join;
// zero-download listings appear because their tracker row exists from
// creation.
func (s *Service) TopByDownloads(ctx context.Context, page, pageSize int) (*Page[store.TrackedAgent], error) {
	page, size, err := pageBounds(page, pageSize, s.pageSize)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.TopByDownloads(ctx, size, (page-1)*size)
	if err != nil {
		return nil, translate(err)
	}
	total, err := s.store.CountTracked(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return newPage(rows, total, page, size), nil
}
