// json.go holds the JSON projections the listing commands share.
//
// Listing output omits graph payloads to keep pages light; show and pull
// return the full payload for a single listing.

package cmd

import (
	"github.com/mkvarda/agora/internal/catalog"
	"github.com/mkvarda/agora/internal/store"
)

// rankedJSON is a search result row: the listing plus its relevance rank.
type rankedJSON struct {
	store.AgentJSON
	Rank float64 `json:"rank"`
}

// trackedJSON is a leaderboard row: the listing plus analytics counters.
type trackedJSON struct {
	store.AgentJSON
	Downloads int64 `json:"downloads"`
	Views     int64 `json:"views"`
}

func pageJSON(p *catalog.Page[store.Agent]) *catalog.Page[store.AgentJSON] {
	items := make([]store.AgentJSON, 0, len(p.Items))
	for i := range p.Items {
		items = append(items, p.Items[i].ToJSON(false))
	}
	return &catalog.Page[store.AgentJSON]{
		Items:      items,
		TotalCount: p.TotalCount,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
	}
}

func rankedPageJSON(results []store.RankedAgent) []rankedJSON {
	items := make([]rankedJSON, 0, len(results))
	for i := range results {
		items = append(items, rankedJSON{
			AgentJSON: results[i].ToJSON(false),
			Rank:      results[i].Rank,
		})
	}
	return items
}

func trackedPageJSON(p *catalog.Page[store.TrackedAgent]) *catalog.Page[trackedJSON] {
	items := make([]trackedJSON, 0, len(p.Items))
	for i := range p.Items {
		items = append(items, trackedJSON{
			AgentJSON: p.Items[i].ToJSON(false),
			Downloads: p.Items[i].Downloads,
			Views:     p.Items[i].Views,
		})
	}
	return &catalog.Page[trackedJSON]{
		Items:      items,
		TotalCount: p.TotalCount,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
	}
}
