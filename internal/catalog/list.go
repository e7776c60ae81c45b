// list.go implements the structured listing query with its optional fuzzy
// description post-filter.

package catalog

import (
	"context"
	"strings"

	"github.com/mkvarda/agora/internal/store"
)

// List pages through listings with optional filters, always returning the
// latest revision of each listing.
//
// TotalCount is a true count of the rows matching the structured filters.
// When the fuzzy description filter is active the count degrades to the
// size of the filtered page - scoring the whole catalog per request is
// deliberately avoided - so TotalPages is page-local in that mode.
func (s *Service) List(ctx context.Context, p ListParams) (*Page[store.Agent], error) {
	page, size, err := pageBounds(p.Page, p.PageSize, s.pageSize)
	if err != nil {
		return nil, err
	}
	key, dir, err := parseListSort(p.SortBy, p.SortOrder)
	if err != nil {
		return nil, err
	}
	threshold := p.DescriptionThreshold
	if threshold < 0 || threshold > 100 {
		return nil, invalidParameter("description threshold must be between 0 and 100, got %d", threshold)
	}
	if threshold == 0 {
		threshold = s.threshold
	}

	filter := store.AgentFilter{Name: p.Name, Keyword: p.Keyword, Category: p.Category}
	agents, err := s.store.List(ctx, store.ListQuery{
		AgentFilter: filter,
		Sort:        key,
		Order:       dir,
		Limit:       size,
		Offset:      (page - 1) * size,
	})
	if err != nil {
		return nil, translate(err)
	}

	total, err := s.store.Count(ctx, filter)
	if err != nil {
		return nil, translate(err)
	}

	if p.Description != "" {
		agents, err = s.keepSimilar(p.Description, threshold, agents)
		if err != nil {
			return nil, err
		}
		total = int64(len(agents))
	}

	return newPage(agents, total, page, size), nil
}

// keepSimilar retains rows whose description scores at least threshold
// against the query. Both sides are lowercased so matching is
// case-insensitive.
func (s *Service) keepSimilar(query string, threshold int, agents []store.Agent) ([]store.Agent, error) {
	q := strings.ToLower(query)
	kept := make([]store.Agent, 0, len(agents))
	for _, a := range agents {
		score, err := s.scorer.PartialRatio(q, strings.ToLower(a.Description))
		if err != nil {
			return nil, scoringFailure(err)
		}
		if score >= threshold {
			kept = append(kept, a)
		}
	}
	return kept, nil
}
