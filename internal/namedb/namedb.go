// Package namedb persists the display names observed per model id to a
// small SQLite database. Models rename themselves; downstream tooling
// wants every alias ever seen, with the first-seen name designated
// preferred.
//
// Recording is best-effort: overlapping writers may produce a duplicate
// alias row, which consumers tolerate - they only need a superset of
// observed names. Serializing writes is deliberately not attempted.
package namedb

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// DB is the identity reconciliation store.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at path and applies the
// schema. Idempotent: safe to call on an existing database.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY under interleaved reads and writes.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// RecordName reconciles one observed (id, name) pair:
//   - the pair is already on record: nothing to do
//   - the id has no preferred name yet: insert name as preferred
//   - the id has a different preferred name: insert name as an alias
func (d *DB) RecordName(ctx context.Context, modid int, name string) error {
	var one int
	err := d.db.QueryRowContext(ctx,
		"SELECT 1 FROM ids WHERE modid = ? AND name = ?", modid, name).Scan(&one)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to look up (%d, %q): %w", modid, name, err)
	}

	var preferred string
	err = d.db.QueryRowContext(ctx,
		"SELECT name FROM ids WHERE modid = ? AND preferred = 1", modid).Scan(&preferred)
	switch {
	case err == sql.ErrNoRows:
		if _, err := d.db.ExecContext(ctx,
			"INSERT INTO ids (modid, name, preferred) VALUES (?, ?, 1)", modid, name); err != nil {
			return fmt.Errorf("failed to insert preferred name: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("failed to look up preferred name for %d: %w", modid, err)
	}

	if preferred == name {
		return nil
	}
	if _, err := d.db.ExecContext(ctx,
		"INSERT INTO ids (modid, name, preferred) VALUES (?, ?, 0)", modid, name); err != nil {
		return fmt.Errorf("failed to insert alias: %w", err)
	}
	return nil
}

// Name is one recorded (name, preferred) row for a model id.
type Name struct {
	Name      string
	Preferred bool
}

// Names returns every name on record for a model id, preferred first,
// then aliases in insertion order.
func (d *DB) Names(ctx context.Context, modid int) ([]Name, error) {
	rows, err := d.db.QueryContext(ctx,
		"SELECT name, preferred FROM ids WHERE modid = ? ORDER BY preferred DESC, rowid ASC", modid)
	if err != nil {
		return nil, fmt.Errorf("failed to query names for %d: %w", modid, err)
	}
	defer rows.Close()

	var out []Name
	for rows.Next() {
		var n Name
		var pref int
		if err := rows.Scan(&n.Name, &pref); err != nil {
			return nil, fmt.Errorf("failed to scan name row: %w", err)
		}
		n.Preferred = pref == 1
		out = append(out, n)
	}
	return out, rows.Err()
}

// Preferred returns the preferred name for a model id, or ok=false when
// the id has never been recorded.
func (d *DB) Preferred(ctx context.Context, modid int) (string, bool, error) {
	var name string
	err := d.db.QueryRowContext(ctx,
		"SELECT name FROM ids WHERE modid = ? AND preferred = 1", modid).Scan(&name)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query preferred name for %d: %w", modid, err)
	}
	return name, true, nil
}
