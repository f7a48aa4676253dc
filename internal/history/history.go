// Package history keeps a log of cleaned records in a SQLite database so
// that re-downloading a paper can be flagged as a duplicate.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the history database.
type DB struct {
	db *sql.DB
}

// Entry is one cleaned record as remembered by the history database.
type Entry struct {
	CiteKey   string
	DOI       string
	EntryType string
	Title     string
	Body      string // rendered BibTeX block
	CleanedAt time.Time
}

// DefaultPath returns the history database location, honoring
// XDG_DATA_HOME and falling back to ~/.local/share/bibgulp/history.db.
func DefaultPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "bibgulp", "history.db")
}

// Open opens or creates the history database at the given path, creating
// parent directories as needed.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			cite_key TEXT NOT NULL,
			doi TEXT,
			entry_type TEXT,
			title TEXT,
			body TEXT NOT NULL,
			cleaned_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_entries_doi
			ON entries(doi) WHERE doi IS NOT NULL AND doi != '';
		CREATE INDEX IF NOT EXISTS idx_entries_cite_key
			ON entries(cite_key);
	`
	_, err := db.Exec(schema)
	return err
}

// Add records one cleaned entry. A zero CleanedAt means now.
func (d *DB) Add(e Entry) error {
	when := e.CleanedAt
	if when.IsZero() {
		when = time.Now()
	}
	_, err := d.db.Exec(`
		INSERT INTO entries (cite_key, doi, entry_type, title, body, cleaned_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.CiteKey, normalizeDOI(e.DOI), e.EntryType, e.Title, e.Body, when.Unix())
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}
	return nil
}

// Seen reports whether a record with this DOI (primary match) or citation
// key (fallback when the record has no DOI) has been cleaned before.
func (d *DB) Seen(citeKey, doi string) (bool, error) {
	if doi = normalizeDOI(doi); doi != "" {
		var n int
		err := d.db.QueryRow(
			`SELECT COUNT(*) FROM entries WHERE doi = ?`, doi).Scan(&n)
		if err != nil {
			return false, err
		}
		return n > 0, nil
	}

	var n int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM entries WHERE cite_key = ?`, citeKey).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Recent returns the most recently cleaned entries, newest first.
func (d *DB) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.db.Query(`
		SELECT cite_key, doi, entry_type, title, body, cleaned_at
		FROM entries ORDER BY cleaned_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts int64
		if err := rows.Scan(&e.CiteKey, &e.DOI, &e.EntryType, &e.Title, &e.Body, &ts); err != nil {
			return nil, err
		}
		e.CleanedAt = time.Unix(ts, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// normalizeDOI lowercases a DOI and removes URL dressing so lookups match
// however the publisher formatted it.
func normalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "doi.org/")
	doi = strings.TrimPrefix(doi, "DOI:")
	doi = strings.TrimPrefix(doi, "doi:")
	return strings.ToLower(doi)
}
