// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// catalogEntry names the single row holding the serialized paper list.
const catalogEntry = "papers"

// SQLiteStorage keeps the catalog payload as one named row in a SQLite
// database, so the catalog survives restarts without scattering files.
type SQLiteStorage struct {
	db *sql.DB
}

// OpenSQLite opens or creates the catalog database at path and ensures
// the schema exists.
func OpenSQLite(path string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS catalog (
		name TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		updated_at TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Load returns the stored payload, or ok=false when the row is absent.
func (s *SQLiteStorage) Load() ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRow(
		`SELECT payload FROM catalog WHERE name = ?`, catalogEntry,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading catalog payload: %w", err)
	}
	return payload, true, nil
}

// Save upserts the payload row. The write is a single statement, so the
// whole collection is replaced atomically.
func (s *SQLiteStorage) Save(data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO catalog (name, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			payload=excluded.payload, updated_at=excluded.updated_at`,
		catalogEntry, data, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving catalog payload: %w", err)
	}
	return nil
}

// Close releases the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
