// write.go implements listing creation operations.
//
// Separated from the main store file to isolate mutating operations. There
// are no update or delete operations - publishing a change creates a new
// revision and earlier revisions stay readable.
//
// Design: Both creation paths run inside a transaction. CreateAgent inserts
// the listing row and its analytics row together - either both exist
// afterwards or neither does. PublishVersion computes MAX(version)+1 within
// the transaction to prevent race conditions when two publishers target the
// same listing concurrently.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateAgent creates revision 1 of a new listing together with its
// analytics row (downloads and views start at zero). The two inserts share
// one transaction: a failure on either side leaves no partial listing
// observable to readers.
func (s *SQLiteStore) CreateAgent(ctx context.Context, d Draft) (*Agent, error) {
	keywords, categories, graph, err := encodeDraft(d)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	a := &Agent{
		ID:          uuid.NewString(),
		Version:     1,
		Name:        d.Name,
		Description: d.Description,
		Author:      d.Author,
		Keywords:    d.Keywords,
		Categories:  d.Categories,
		Graph:       json.RawMessage(graph),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.Tx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO agents
			(id, version, name, description, author, keywords, categories, graph, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.Version, a.Name, a.Description, a.Author, keywords, categories, graph, a.CreatedAt, a.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert agent: %w", err)
		}

		tid, err := genID()
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO analytics (id, agent_id, downloads, views) VALUES (?, ?, 0, 0)`,
			tid, a.ID)
		if err != nil {
			return fmt.Errorf("insert analytics: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// PublishVersion creates the next revision of an existing listing. The new
// version number and the carried-over creation timestamp are read inside the
// transaction, so concurrent publishes against the same id serialize cleanly.
// Returns ErrNotFound if the id has no revisions. The analytics row is shared
// across revisions and is not touched.
func (s *SQLiteStore) PublishVersion(ctx context.Context, id string, d Draft) (*Agent, error) {
	keywords, categories, graph, err := encodeDraft(d)
	if err != nil {
		return nil, err
	}

	var a *Agent
	err = s.Tx(ctx, func(tx *sql.Tx) error {
		var maxVer int
		var createdAt int64
		err := tx.QueryRowContext(ctx,
			`SELECT version, created_at FROM agents WHERE id = ? ORDER BY version DESC LIMIT 1`, id).
			Scan(&maxVer, &createdAt)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get max version: %w", err)
		}

		a = &Agent{
			ID:          id,
			Version:     maxVer + 1,
			Name:        d.Name,
			Description: d.Description,
			Author:      d.Author,
			Keywords:    d.Keywords,
			Categories:  d.Categories,
			Graph:       json.RawMessage(graph),
			CreatedAt:   createdAt,
			UpdatedAt:   time.Now().Unix(),
		}

		_, err = tx.ExecContext(ctx, `INSERT INTO agents
			(id, version, name, description, author, keywords, categories, graph, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.Version, a.Name, a.Description, a.Author, keywords, categories, graph, a.CreatedAt, a.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert revision: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// encodeDraft serialises the draft's array and graph fields to their stored
// text forms, validating the graph payload on the way.
func encodeDraft(d Draft) (keywords, categories, graph string, err error) {
	if keywords, err = encodeList(d.Keywords); err != nil {
		return "", "", "", fmt.Errorf("encode keywords: %w", err)
	}
	if categories, err = encodeList(d.Categories); err != nil {
		return "", "", "", fmt.Errorf("encode categories: %w", err)
	}
	if graph, err = normalizeGraph(d.Graph); err != nil {
		return "", "", "", err
	}
	return keywords, categories, graph, nil
}

// normalizeGraph validates the opaque graph payload and supplies the empty
// object default so the stored column is always valid JSON.
func normalizeGraph(g json.RawMessage) (string, error) {
	if len(g) == 0 {
		return "{}", nil
	}
	if !json.Valid(g) {
		return "", fmt.Errorf("%w: payload is not valid JSON", ErrInvalidGraph)
	}
	return string(g), nil
}
