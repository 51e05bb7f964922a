package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
)

// Read returns the stored blob for a collection, or nil if the
// collection has never been written. Callers decide the empty-value
// shape (list vs. singleton) for a nil blob.
func (s *Store) Read(ctx context.Context, collection string) ([]byte, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM collections WHERE name = ?`, collection,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", collection, err)
	}
	return []byte(data), nil
}

// Write upserts a collection blob, replacing the whole collection
// atomically from the caller's perspective.
func (s *Store) Write(ctx context.Context, collection string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collections (name, data)
		VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET
			data = excluded.data,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
	`, collection, string(data))
	if err != nil {
		return fmt.Errorf("write collection %s: %w", collection, err)
	}
	return nil
}

// WriteMany upserts several collection blobs in a single transaction.
// This is the transaction boundary for multi-collection operations:
// either every collection reflects the operation or none does.
func (s *Store) WriteMany(ctx context.Context, blobs map[string][]byte) error {
	if len(blobs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write many: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO collections (name, data)
		VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET
			data = excluded.data,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
	`)
	if err != nil {
		return fmt.Errorf("write many: prepare: %w", err)
	}
	defer stmt.Close()

	// Deterministic write order keeps transaction behavior reproducible.
	names := make([]string, 0, len(blobs))
	for name := range blobs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := stmt.ExecContext(ctx, name, string(blobs[name])); err != nil {
			return fmt.Errorf("write many: collection %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write many: commit: %w", err)
	}
	return nil
}

// Replace atomically overwrites the entire store content with the
// given collections. Collections absent from the map are removed.
// Backs full-state import.
func (s *Store) Replace(ctx context.Context, blobs map[string][]byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM collections`); err != nil {
		return fmt.Errorf("replace: clear: %w", err)
	}

	names := make([]string, 0, len(blobs))
	for name := range blobs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO collections (name, data) VALUES (?, ?)`,
			name, string(blobs[name]),
		); err != nil {
			return fmt.Errorf("replace: collection %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace: commit: %w", err)
	}
	return nil
}

// Collections returns the names of all stored collections in
// lexicographic order.
func (s *Store) Collections(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM collections ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list collections: scan: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return names, nil
}
