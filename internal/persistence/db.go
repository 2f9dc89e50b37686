// Package persistence provides the SQLite session archive: one row per
// board load, plus small key-value metadata such as the last save path.
// Computed per-cell results are never persisted. See design doc Section 8.3.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// MetaLastPath remembers the save file of the previous run so the service
// can start without arguments.
const MetaLastPath = "last_path"

// DB wraps a SQLite connection.
type DB struct {
	conn *sqlx.DB
}

// Session is one recorded board load.
type Session struct {
	ID       string    `db:"id" json:"id"`
	Path     string    `db:"path" json:"path"`
	LoadedAt time.Time `db:"loaded_at" json:"loaded_at"`
	Tiles    int       `db:"tiles" json:"tiles"`
	Missing  int       `db:"missing" json:"missing"`
	Groups   int       `db:"group_count" json:"groups"`
	LoadMS   int64     `db:"load_ms" json:"load_ms"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		path TEXT NOT NULL,
		loaded_at TIMESTAMP NOT NULL,
		tiles INTEGER NOT NULL,
		missing INTEGER NOT NULL,
		group_count INTEGER NOT NULL,
		load_ms INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_loaded_at ON sessions(loaded_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// RecordSession stores one load and updates the last-path metadata.
func (db *DB) RecordSession(s Session) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO sessions
		(id, path, loaded_at, tiles, missing, group_count, load_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Path, s.LoadedAt, s.Tiles, s.Missing, s.Groups, s.LoadMS,
	)
	if err != nil {
		return fmt.Errorf("insert session %s: %w", s.ID, err)
	}
	_, err = tx.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		MetaLastPath, s.Path,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// RecentSessions returns the most recent N loads, newest first.
func (db *DB) RecentSessions(limit int) ([]Session, error) {
	var sessions []Session
	err := db.conn.Select(&sessions,
		"SELECT id, path, loaded_at, tiles, missing, group_count, load_ms FROM sessions ORDER BY loaded_at DESC LIMIT ?",
		limit,
	)
	return sessions, err
}

// SetMeta stores a key-value pair.
func (db *DB) SetMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value; empty string when unset.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}
