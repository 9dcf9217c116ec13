// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package existence

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Ensure SQLiteCache implements Cache.
var _ Cache = (*SQLiteCache)(nil)

// SQLiteCache persists existence answers across runs.
type SQLiteCache struct {
	db *sql.DB
}

// OpenSQLiteCache opens or creates the cache database at path, creating
// parent directories as needed.
func OpenSQLiteCache(path string) (*SQLiteCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	c := &SQLiteCache{db: db}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return c, nil
}

func (c *SQLiteCache) createSchema() error {
	_, err := c.db.Exec(`CREATE TABLE IF NOT EXISTS existence (
		doi        TEXT PRIMARY KEY,
		found      INTEGER NOT NULL,
		checked_at TEXT NOT NULL
	)`)
	return err
}

// Close releases the database connection.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

func (c *SQLiteCache) Get(doi string) (bool, bool, error) {
	var found bool
	err := c.db.QueryRow(`SELECT found FROM existence WHERE doi = ?`, doi).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("querying %s: %w", doi, err)
	}
	return found, true, nil
}

func (c *SQLiteCache) Put(doi string, exists bool) error {
	_, err := c.db.Exec(`INSERT INTO existence (doi, found, checked_at) VALUES (?, ?, ?)
		ON CONFLICT(doi) DO UPDATE SET found = excluded.found, checked_at = excluded.checked_at`,
		doi, exists, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("storing %s: %w", doi, err)
	}
	return nil
}

func (c *SQLiteCache) Clear() error {
	if _, err := c.db.Exec(`DELETE FROM existence`); err != nil {
		return fmt.Errorf("clearing existence cache: %w", err)
	}
	return nil
}

// Len returns the number of stored answers.
func (c *SQLiteCache) Len() (int, error) {
	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM existence`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
