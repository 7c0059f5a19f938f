// SPDX-License-Identifier: MIT

// Package store keeps named circuits in a SQLite database.
//
// Each row holds the circuit's component record stream (the format written
// by circuit.Circuit.Save) together with its ground vertex, so a stored
// circuit reloads exactly as it was saved.
package store

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/dcmesh/circuit"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no circuit has the requested name.
var ErrNotFound = errors.New("store: circuit not found")

// Entry describes one stored circuit.
type Entry struct {
	Name       string
	Components int
	Ground     int
	UpdatedAt  time.Time
}

// Store manages the SQLite connection and schema.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open initializes the SQLite database at path, creating it if needed.
// Use ":memory:" for a throwaway database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	// a single connection keeps ":memory:" databases alive and serializes writers
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("schema migration failed: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS circuits (
		name TEXT PRIMARY KEY,
		records BLOB,
		ground INTEGER NOT NULL DEFAULT 0,
		components INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_circuits_updated ON circuits(updated_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Save stores c under name, replacing any circuit already saved there.
func (s *Store) Save(ctx context.Context, name string, c *circuit.Circuit) error {
	if name == "" {
		return fmt.Errorf("save circuit: empty name")
	}
	var buf bytes.Buffer
	if err := c.Save(&buf); err != nil {
		return fmt.Errorf("encode circuit %q: %w", name, err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO circuits (name, records, ground, components, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			records = excluded.records,
			ground = excluded.ground,
			components = excluded.components,
			updated_at = excluded.updated_at
	`, name, buf.Bytes(), c.Ground(), c.Len(), s.now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to save circuit %q: %w", name, err)
	}

	return nil
}

// Load rebuilds the circuit saved under name. opts configure the new
// circuit; it is returned in the Editing state.
func (s *Store) Load(ctx context.Context, name string, opts ...circuit.Option) (*circuit.Circuit, error) {
	var (
		records []byte
		ground  int
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT records, ground FROM circuits WHERE name = ?`, name,
	).Scan(&records, &ground)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load circuit %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query circuit %q: %w", name, err)
	}

	c := circuit.New(opts...)
	if err := c.Load(bytes.NewReader(records)); err != nil {
		return nil, fmt.Errorf("decode circuit %q: %w", name, err)
	}
	if c.Len() > 0 {
		if err := c.SetGround(ground); err != nil {
			return nil, fmt.Errorf("decode circuit %q: %w", name, err)
		}
	}

	return c, nil
}

// List returns every stored circuit ordered by name.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, components, ground, updated_at FROM circuits ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query circuits: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			updated int64
		)
		if err := rows.Scan(&e.Name, &e.Components, &e.Ground, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan circuit: %w", err)
		}
		e.UpdatedAt = time.Unix(0, updated).UTC()
		out = append(out, e)
	}

	return out, rows.Err()
}

// Delete removes the circuit saved under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM circuits WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete circuit %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete circuit %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("delete circuit %q: %w", name, ErrNotFound)
	}

	return nil
}
