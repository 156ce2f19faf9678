package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Compile-time interface check.
var _ Store = (*SQLiteStore)(nil)

const (
	kindInt  = 0
	kindBool = 1
)

// SQLiteStore is a persistent Store backed by SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at the given path and
// initialises the schema. Use ":memory:" for an in-memory SQLite database.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("appirater/store: open sqlite: %w", err)
	}

	// A private in-memory database exists per connection.
	if dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS appirater_prefs (
			namespace TEXT    NOT NULL,
			key       TEXT    NOT NULL,
			kind      INTEGER NOT NULL DEFAULT 0,
			value     INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (namespace, key)
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("appirater/store: create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load returns every value stored under namespace.
func (s *SQLiteStore) Load(ctx context.Context, namespace string) (Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, kind, value FROM appirater_prefs WHERE namespace = ?`, namespace,
	)
	if err != nil {
		return Record{}, fmt.Errorf("appirater/store: load %s: %w", namespace, err)
	}
	defer rows.Close()

	r := NewRecord()
	for rows.Next() {
		var (
			key   string
			kind  int
			value int64
		)
		if err := rows.Scan(&key, &kind, &value); err != nil {
			return Record{}, fmt.Errorf("appirater/store: scan %s: %w", namespace, err)
		}
		if kind == kindBool {
			r.SetBool(key, value != 0)
			continue
		}
		r.SetInt(key, value)
	}
	if err := rows.Err(); err != nil {
		return Record{}, fmt.Errorf("appirater/store: load %s: %w", namespace, err)
	}

	return r, nil
}

// Commit upserts every value of batch inside a single transaction.
func (s *SQLiteStore) Commit(ctx context.Context, namespace string, batch Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO appirater_prefs (namespace, key, kind, value) VALUES (?, ?, ?, ?)
		ON CONFLICT (namespace, key) DO UPDATE SET kind = excluded.kind, value = excluded.value
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for key, v := range batch.Ints {
		if _, err := stmt.ExecContext(ctx, namespace, key, kindInt, v); err != nil {
			return fmt.Errorf("appirater/store: write %s/%s: %w", namespace, key, err)
		}
	}
	for key, v := range batch.Bools {
		var n int64
		if v {
			n = 1
		}
		if _, err := stmt.ExecContext(ctx, namespace, key, kindBool, n); err != nil {
			return fmt.Errorf("appirater/store: write %s/%s: %w", namespace, key, err)
		}
	}

	return tx.Commit()
}

// Reset removes every value stored under namespace.
func (s *SQLiteStore) Reset(ctx context.Context, namespace string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM appirater_prefs WHERE namespace = ?`, namespace)
	return err
}

// Close closes the underlying SQLite database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
