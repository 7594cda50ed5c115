// Package store persists capability flags and announcement history to a
// SQLite database.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists capability flags and announcement history
type SQLiteStore struct {
	db *sql.DB
}

// AnnouncementRecord is one spoken (or attempted) announcement
type AnnouncementRecord struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Locale    string    `json:"locale"`
	Text      string    `json:"text"`
	Outcome   string    `json:"outcome"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSQLiteStore creates a new SQLite store at the given path
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrent write performance
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS capabilities (
			kind TEXT PRIMARY KEY,
			enabled INTEGER NOT NULL DEFAULT 1,
			updated_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create capabilities table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS announcements (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			locale TEXT NOT NULL DEFAULT '',
			text TEXT NOT NULL,
			outcome TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create announcements table: %w", err)
	}

	// Index for fast history listing
	_, _ = db.Exec(`CREATE INDEX IF NOT EXISTS idx_announcements_created ON announcements(created_at)`)

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SetCapability records whether announcements of a kind are enabled. Used
// to remember permission failures across restarts.
func (s *SQLiteStore) SetCapability(kind string, enabled bool) error {
	enabledInt := 0
	if enabled {
		enabledInt = 1
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO capabilities (kind, enabled, updated_at)
		VALUES (?, ?, ?)
	`, kind, enabledInt, time.Now().Unix())

	if err != nil {
		return fmt.Errorf("failed to save capability: %w", err)
	}
	return nil
}

// Capability reports whether announcements of a kind are enabled.
// Kinds never recorded default to enabled.
func (s *SQLiteStore) Capability(kind string) (bool, error) {
	var enabled int
	err := s.db.QueryRow(`
		SELECT enabled FROM capabilities WHERE kind = ?
	`, kind).Scan(&enabled)

	if err == sql.ErrNoRows {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load capability: %w", err)
	}
	return enabled != 0, nil
}

// RecordAnnouncement persists one announcement attempt
func (s *SQLiteStore) RecordAnnouncement(r *AnnouncementRecord) error {
	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO announcements (id, kind, locale, text, outcome, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, r.ID, r.Kind, r.Locale, r.Text, r.Outcome, createdAt.Unix())

	if err != nil {
		return fmt.Errorf("failed to save announcement: %w", err)
	}
	return nil
}

// RecentAnnouncements returns the newest announcements, newest first
func (s *SQLiteStore) RecentAnnouncements(limit int) ([]*AnnouncementRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, kind, locale, text, outcome, created_at
		FROM announcements
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	defer rows.Close()

	var records []*AnnouncementRecord
	for rows.Next() {
		var r AnnouncementRecord
		var createdAtUnix int64
		if err := rows.Scan(&r.ID, &r.Kind, &r.Locale, &r.Text, &r.Outcome, &createdAtUnix); err != nil {
			return nil, fmt.Errorf("failed to scan announcement: %w", err)
		}
		r.CreatedAt = time.Unix(createdAtUnix, 0)
		records = append(records, &r)
	}
	return records, rows.Err()
}

// CleanOldAnnouncements removes history older than maxAge
func (s *SQLiteStore) CleanOldAnnouncements(maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge).Unix()
	result, err := s.db.Exec(`DELETE FROM announcements WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// DefaultDBPath returns the default database path
func DefaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".headsetharry", "history.db")
}
