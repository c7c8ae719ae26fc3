// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tokenstore

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
-- Single credential slot. The CHECK pins the row key so a login always
-- overwrites the previous token instead of accumulating rows.
CREATE TABLE IF NOT EXISTS credential (
    slot INTEGER PRIMARY KEY CHECK (slot = 1),
    token TEXT NOT NULL,
    saved_at TIMESTAMP NOT NULL
);
`

// Store persists the access token across restarts. It holds at most one
// token: each save overwrites, logout clears.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the token database at path.
// Safe to call on an existing database - schema uses IF NOT EXISTS.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open token store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create token store schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Save writes the token into the slot, replacing any previous one.
func (s *Store) Save(token string) error {
	_, err := s.db.Exec(`
		INSERT INTO credential (slot, token, saved_at) VALUES (1, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET token = excluded.token, saved_at = excluded.saved_at
	`, token, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Load returns the persisted token, or "" when the slot is empty.
func (s *Store) Load() (string, error) {
	var token string
	err := s.db.QueryRow(`SELECT token FROM credential WHERE slot = 1`).Scan(&token)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return token, nil
}

// Clear empties the slot. A no-op when the slot is already empty.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM credential`); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
