// Package search builds an ephemeral SQLite full-text index over a store value.
package search

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/matsen/clip/internal/store"
	_ "modernc.org/sqlite"
)

// Match kinds.
const (
	KindIndexed = "indexed"
	KindKeyed   = "keyed"
)

// Match is one entry whose value (or key) matched the query.
type Match struct {
	Kind  string `json:"kind"`
	Index *int   `json:"index,omitempty"`
	Key   string `json:"key,omitempty"`
	Value string `json:"value"`
}

const schema = `
CREATE TABLE entries (
  kind TEXT NOT NULL,
  pos INTEGER,
  key TEXT,
  value TEXT NOT NULL
);
CREATE VIRTUAL TABLE entries_fts USING fts5(
  key,
  value
);`

// Index is an in-memory FTS5 index. It is never written to disk; the JSON
// store remains the only source of truth.
type Index struct {
	db *sql.DB
}

// Build creates an index over every entry in d.
func Build(ctx context.Context, d *store.Data) (*Index, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Each :memory: connection is a separate database
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	idx := &Index{db: db}
	if err := idx.load(ctx, d); err != nil {
		db.Close()
		return nil, err
	}
	return idx, nil
}

// Close releases the database.
func (i *Index) Close() error {
	return i.db.Close()
}

func (i *Index) load(ctx context.Context, d *store.Data) error {
	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	insert := func(kind string, pos any, key any, value string) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO entries (kind, pos, key, value) VALUES (?, ?, ?, ?)`,
			kind, pos, key, value)
		if err != nil {
			return err
		}
		rowID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO entries_fts (rowid, key, value) VALUES (?, ?, ?)`,
			rowID, key, value)
		return err
	}

	for pos, v := range d.IndexedStorage {
		if err := insert(KindIndexed, pos, nil, v); err != nil {
			return fmt.Errorf("indexing entry %d: %w", pos, err)
		}
	}
	for k, v := range d.KeyStorage {
		if err := insert(KindKeyed, nil, k, v); err != nil {
			return fmt.Errorf("indexing key %q: %w", k, err)
		}
	}

	return tx.Commit()
}

// Search returns entries matching query, best match first.
func (i *Index) Search(ctx context.Context, query string) ([]Match, error) {
	q := PrepareFTSQuery(query)
	if q == "" {
		return []Match{}, nil
	}

	rows, err := i.db.QueryContext(ctx, `
		SELECT e.kind, e.pos, e.key, e.value
		FROM entries_fts
		JOIN entries e ON e.rowid = entries_fts.rowid
		WHERE entries_fts MATCH ?
		ORDER BY entries_fts.rank, e.kind, e.pos, e.key`, q)
	if err != nil {
		return nil, fmt.Errorf("executing search: %w", err)
	}
	defer rows.Close()

	matches := []Match{}
	for rows.Next() {
		var (
			m   Match
			pos sql.NullInt64
			key sql.NullString
		)
		if err := rows.Scan(&m.Kind, &pos, &key, &m.Value); err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		if pos.Valid {
			p := int(pos.Int64)
			m.Index = &p
		}
		m.Key = key.String
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// Find builds a throwaway index over d and searches it.
func Find(ctx context.Context, d *store.Data, query string) ([]Match, error) {
	idx, err := Build(ctx, d)
	if err != nil {
		return nil, err
	}
	defer idx.Close()
	return idx.Search(ctx, query)
}

// PrepareFTSQuery escapes special characters for FTS5 queries.
func PrepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	// If query contains special chars, quote it
	if strings.ContainsAny(query, "\"*+-:(){}[]^~.,/\\'") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
