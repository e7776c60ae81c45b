package store_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mkvarda/agora/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupStore creates a temporary SQLite store for testing.
// Returns the store and a cleanup function.
func setupStore(t *testing.T) (*store.SQLiteStore, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "agora-store-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := store.Open(dbPath)
	require.NoError(t, err)

	require.NoError(t, s.Init())

	cleanup := func() {
		s.Close()
		os.RemoveAll(tmpDir)
	}

	return s, cleanup
}

// draft returns a minimal Draft for tests that don't care about arrays.
func draft(name, description, author string) store.Draft {
	return store.Draft{Name: name, Description: description, Author: author}
}

// --- Create Tests ---

func TestStore_CreateAndLatest(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	d := store.Draft{
		Name:        "Spreadsheet Summariser",
		Description: "Summarises spreadsheets into prose",
		Author:      "alice",
		Keywords:    []string{"summaries", "sheets"},
		Categories:  []string{"productivity"},
		Graph:       json.RawMessage(`{"nodes":[]}`),
	}

	created, err := s.CreateAgent(ctx, d)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 1, created.Version)

	got, err := s.Latest(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, d.Name, got.Name)
	assert.Equal(t, d.Description, got.Description)
	assert.Equal(t, d.Author, got.Author)
	assert.Equal(t, d.Keywords, got.Keywords)
	assert.Equal(t, d.Categories, got.Categories)
	assert.JSONEq(t, `{"nodes":[]}`, string(got.Graph))
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
}

func TestStore_CreateSeedsAnalytics(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	created, err := s.CreateAgent(ctx, draft("Mail Triager", "Sorts inbound mail", "bob"))
	require.NoError(t, err)

	count, err := s.CountTracked(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	top, err := s.TopByDownloads(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, created.ID, top[0].ID)
	assert.Equal(t, int64(0), top[0].Downloads)
	assert.Equal(t, int64(0), top[0].Views)
}

func TestStore_CreateInvalidGraph(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	d := draft("Broken", "bad payload", "mallory")
	d.Graph = json.RawMessage(`{"nodes":`)

	_, err := s.CreateAgent(ctx, d)
	assert.ErrorIs(t, err, store.ErrInvalidGraph)
}

func TestStore_CreateEmptyGraphDefaults(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	created, err := s.CreateAgent(ctx, draft("No Graph", "graphless", "alice"))
	require.NoError(t, err)

	got, err := s.Latest(ctx, created.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(got.Graph))
}

// --- Revision Tests ---

func TestStore_PublishVersion(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	created, err := s.CreateAgent(ctx, draft("Log Scanner", "Scans logs", "alice"))
	require.NoError(t, err)

	rev, err := s.PublishVersion(ctx, created.ID, draft("Log Scanner", "Scans logs faster", "bob"))
	require.NoError(t, err)
	assert.Equal(t, 2, rev.Version)
	assert.Equal(t, created.CreatedAt, rev.CreatedAt)

	latest, err := s.Latest(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, latest.Version)
	assert.Equal(t, "Scans logs faster", latest.Description)
	assert.Equal(t, "bob", latest.Author)

	v1, err := s.Version(ctx, created.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Scans logs", v1.Description)

	// Revisions share one analytics row
	count, err := s.CountTracked(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestStore_PublishVersionNotFound(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := s.PublishVersion(ctx, "no-such-id", draft("X", "Y", "z"))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_Revisions(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	created, err := s.CreateAgent(ctx, draft("Indexer", "v1", "alice"))
	require.NoError(t, err)
	_, err = s.PublishVersion(ctx, created.ID, draft("Indexer", "v2", "alice"))
	require.NoError(t, err)
	_, err = s.PublishVersion(ctx, created.ID, draft("Indexer", "v3", "alice"))
	require.NoError(t, err)

	revs, err := s.Revisions(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, revs, 3)
	assert.Equal(t, 3, revs[0].Version)
	assert.Equal(t, 2, revs[1].Version)
	assert.Equal(t, 1, revs[2].Version)
}

func TestStore_NotFound(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := s.Latest(ctx, "nonexistent")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Version(ctx, "nonexistent", 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_VersionMissing(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	created, err := s.CreateAgent(ctx, draft("Solo", "only one revision", "alice"))
	require.NoError(t, err)

	_, err = s.Version(ctx, created.ID, 2)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// --- List and Count Tests ---

func TestStore_ListFilters(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	drafts := []store.Draft{
		{Name: "Ledger Agent", Description: "Bookkeeping", Author: "alice",
			Keywords: []string{"finance", "ledger"}, Categories: []string{"finance"}},
		{Name: "Budget Planner", Description: "Plans budgets", Author: "bob",
			Keywords: []string{"finance"}, Categories: []string{"finance", "planning"}},
		{Name: "Recipe Finder", Description: "Finds recipes", Author: "alice",
			Keywords: []string{"food"}, Categories: []string{"lifestyle"}},
	}
	for _, d := range drafts {
		_, err := s.CreateAgent(ctx, d)
		require.NoError(t, err)
	}

	// Name substring, case-insensitive
	byName, err := s.List(ctx, store.ListQuery{
		AgentFilter: store.AgentFilter{Name: "ledger"},
		Sort:        store.SortName, Order: store.OrderAsc, Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Ledger Agent", byName[0].Name)

	// Keyword membership
	byKeyword, err := s.List(ctx, store.ListQuery{
		AgentFilter: store.AgentFilter{Keyword: "finance"},
		Sort:        store.SortName, Order: store.OrderAsc, Limit: 10,
	})
	require.NoError(t, err)
	assert.Len(t, byKeyword, 2)

	// Category membership
	byCategory, err := s.List(ctx, store.ListQuery{
		AgentFilter: store.AgentFilter{Category: "planning"},
		Sort:        store.SortName, Order: store.OrderAsc, Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Budget Planner", byCategory[0].Name)

	// Filters are ANDed
	combined, err := s.List(ctx, store.ListQuery{
		AgentFilter: store.AgentFilter{Keyword: "finance", Category: "lifestyle"},
		Sort:        store.SortName, Order: store.OrderAsc, Limit: 10,
	})
	require.NoError(t, err)
	assert.Len(t, combined, 0)
}

func TestStore_ListLatestRevisionOnly(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	created, err := s.CreateAgent(ctx, draft("Evolving", "first", "alice"))
	require.NoError(t, err)
	_, err = s.PublishVersion(ctx, created.ID, draft("Evolving", "second", "alice"))
	require.NoError(t, err)

	agents, err := s.List(ctx, store.ListQuery{Sort: store.SortName, Order: store.OrderAsc, Limit: 10})
	require.NoError(t, err)
	require.Len(t, agents, 1)
	assert.Equal(t, 2, agents[0].Version)
	assert.Equal(t, "second", agents[0].Description)
}

func TestStore_ListSortAndPaging(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	for _, name := range []string{"alpha", "bravo", "charlie", "delta", "echo"} {
		_, err := s.CreateAgent(ctx, draft(name, "agent "+name, "alice"))
		require.NoError(t, err)
	}

	page1, err := s.List(ctx, store.ListQuery{Sort: store.SortName, Order: store.OrderAsc, Limit: 2, Offset: 0})
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, "alpha", page1[0].Name)
	assert.Equal(t, "bravo", page1[1].Name)

	page2, err := s.List(ctx, store.ListQuery{Sort: store.SortName, Order: store.OrderAsc, Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, "charlie", page2[0].Name)
	assert.Equal(t, "delta", page2[1].Name)

	desc, err := s.List(ctx, store.ListQuery{Sort: store.SortName, Order: store.OrderDesc, Limit: 1})
	require.NoError(t, err)
	require.Len(t, desc, 1)
	assert.Equal(t, "echo", desc[0].Name)
}

func TestStore_ListEscapesLikeWildcards(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := s.CreateAgent(ctx, draft("100% Uptime Monitor", "watches services", "alice"))
	require.NoError(t, err)
	_, err = s.CreateAgent(ctx, draft("100x Optimiser", "tunes things", "alice"))
	require.NoError(t, err)

	// A literal % in the filter must not act as a wildcard
	agents, err := s.List(ctx, store.ListQuery{
		AgentFilter: store.AgentFilter{Name: "100%"},
		Sort:        store.SortName, Order: store.OrderAsc, Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, agents, 1)
	assert.Equal(t, "100% Uptime Monitor", agents[0].Name)
}

func TestStore_Count(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	for i, name := range []string{"one", "two", "three"} {
		d := draft(name, "agent", "alice")
		if i < 2 {
			d.Categories = []string{"tools"}
		}
		_, err := s.CreateAgent(ctx, d)
		require.NoError(t, err)
	}

	all, err := s.Count(ctx, store.AgentFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all)

	tools, err := s.Count(ctx, store.AgentFilter{Category: "tools"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), tools)
}

func TestStore_CountIgnoresOldRevisions(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	created, err := s.CreateAgent(ctx, draft("Reviser", "v1", "alice"))
	require.NoError(t, err)
	_, err = s.PublishVersion(ctx, created.ID, draft("Reviser", "v2", "alice"))
	require.NoError(t, err)

	count, err := s.Count(ctx, store.AgentFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

// --- Analytics Tests ---

func TestStore_AddDownloadAndView(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	created, err := s.CreateAgent(ctx, draft("Popular", "gets pulled a lot", "alice"))
	require.NoError(t, err)

	require.NoError(t, s.AddDownload(ctx, created.ID))
	require.NoError(t, s.AddDownload(ctx, created.ID))
	require.NoError(t, s.AddView(ctx, created.ID))

	top, err := s.TopByDownloads(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, int64(2), top[0].Downloads)
	assert.Equal(t, int64(1), top[0].Views)
}

func TestStore_IncrementNotFound(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	assert.ErrorIs(t, s.AddDownload(ctx, "no-such-id"), store.ErrNotFound)
	assert.ErrorIs(t, s.AddView(ctx, "no-such-id"), store.ErrNotFound)
}

func TestStore_TopByDownloadsOrder(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	low, err := s.CreateAgent(ctx, draft("Low", "few pulls", "alice"))
	require.NoError(t, err)
	high, err := s.CreateAgent(ctx, draft("High", "many pulls", "alice"))
	require.NoError(t, err)
	zero, err := s.CreateAgent(ctx, draft("Zero", "no pulls yet", "alice"))
	require.NoError(t, err)

	require.NoError(t, s.AddDownload(ctx, low.ID))
	for i := 0; i < 3; i++ {
		require.NoError(t, s.AddDownload(ctx, high.ID))
	}

	top, err := s.TopByDownloads(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, high.ID, top[0].ID)
	assert.Equal(t, low.ID, top[1].ID)
	// Zero-download listings still appear - their analytics row exists
	assert.Equal(t, zero.ID, top[2].ID)
}

func TestStore_TopByDownloadsExcludesUntracked(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	tracked, err := s.CreateAgent(ctx, draft("Tracked", "has analytics", "alice"))
	require.NoError(t, err)

	// Insert a listing row without an analytics row, bypassing CreateAgent.
	// The inner join must exclude it entirely.
	err = s.Tx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO agents
			(id, version, name, description, author, keywords, categories, graph, created_at, updated_at)
			VALUES ('orphan-id', 1, 'Orphan', 'no analytics row', 'bob', '[]', '[]', '{}', ?, ?)`,
			time.Now().Unix(), time.Now().Unix())
		return err
	})
	require.NoError(t, err)

	top, err := s.TopByDownloads(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, tracked.ID, top[0].ID)

	count, err := s.CountTracked(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestStore_TopByDownloadsJoinsLatestRevision(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	created, err := s.CreateAgent(ctx, draft("Shifter", "old description", "alice"))
	require.NoError(t, err)
	require.NoError(t, s.AddDownload(ctx, created.ID))
	_, err = s.PublishVersion(ctx, created.ID, draft("Shifter", "new description", "alice"))
	require.NoError(t, err)

	top, err := s.TopByDownloads(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 2, top[0].Version)
	assert.Equal(t, "new description", top[0].Description)
	assert.Equal(t, int64(1), top[0].Downloads)
}

// --- Stats Tests ---

func TestStore_Stats(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	a, err := s.CreateAgent(ctx, draft("One", "first", "alice"))
	require.NoError(t, err)
	_, err = s.CreateAgent(ctx, draft("Two", "second", "bob"))
	require.NoError(t, err)
	_, err = s.PublishVersion(ctx, a.ID, draft("One", "revised", "alice"))
	require.NoError(t, err)
	require.NoError(t, s.AddDownload(ctx, a.ID))

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.Listings)
	assert.Equal(t, int64(3), st.Revisions)
	assert.Equal(t, int64(2), st.Authors)
	assert.Equal(t, int64(2), st.Tracked)
	assert.Equal(t, int64(1), st.Downloads)
	assert.NotZero(t, st.Oldest)
	assert.NotZero(t, st.Newest)
}

// --- Transaction Tests ---

func TestStore_TransactionRollback(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	// Tx must roll back the agent insert when fn fails afterwards
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO agents
			(id, version, name, description, author, keywords, categories, graph, created_at, updated_at)
			VALUES ('tx-test', 1, 'Ghost', '', '', '[]', '[]', '{}', ?, ?)`,
			time.Now().Unix(), time.Now().Unix())
		if err != nil {
			return err
		}
		return assert.AnError
	})
	assert.Error(t, err)

	_, err = s.Latest(ctx, "tx-test")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
