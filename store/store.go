// Package store persists the content-addressed translation cache in
// SQLite. Entries are keyed by a hash of the exact source text, so
// identical inputs across documents or runs share one row and concurrent
// writers are idempotent.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Translation represents a row in the translations table.
type Translation struct {
	ContentHash    string `json:"content_hash"`
	SourceLang     string `json:"source_lang"`
	OriginalPrefix string `json:"original_prefix"` // first chars of the source text, kept for inspection
	TranslatedText string `json:"translated_text"`
	CreatedAt      string `json:"created_at"`
}

// Store wraps the SQLite database holding cached translations.
type Store struct {
	db *sql.DB
}

// New opens (or creates) a SQLite database at the given path and
// initialises the schema.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	// Connection pool settings for SQLite.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	s := &Store{db: db}

	if err := s.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetTranslation looks up a cached translation by content hash. The second
// return value reports whether the entry exists.
func (s *Store) GetTranslation(ctx context.Context, contentHash string) (string, bool, error) {
	var translated string
	err := s.db.QueryRowContext(ctx,
		"SELECT translated_text FROM translations WHERE content_hash = ?",
		contentHash).Scan(&translated)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading translation cache: %w", err)
	}
	return translated, true, nil
}

// PutTranslation stores a translation keyed by content hash. Re-inserting
// an existing hash is a no-op: identical content always produces an
// identical entry, so the first writer wins.
func (s *Store) PutTranslation(ctx context.Context, t Translation) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO translations (content_hash, source_lang, original_prefix, translated_text)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(content_hash) DO NOTHING`,
		t.ContentHash, t.SourceLang, t.OriginalPrefix, t.TranslatedText)
	if err != nil {
		return fmt.Errorf("writing translation cache: %w", err)
	}
	return nil
}

// CountTranslations returns the number of cached entries.
func (s *Store) CountTranslations(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM translations").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting translations: %w", err)
	}
	return n, nil
}
