package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/qurankit/qurankit/internal/quran"
)

// Config tunes a SQLiteTextStore.
type Config struct {
	// SearchLimit caps the rows returned by a coarse Search. Default: 500.
	SearchLimit int
	// AutocompleteLimit caps the rows returned by Autocomplete. Default: 100.
	AutocompleteLimit int
	// CacheSize is the number of verse texts kept in the LRU cache. Default: 512.
	CacheSize int
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() Config {
	return Config{
		SearchLimit:       500,
		AutocompleteLimit: 100,
		CacheSize:         512,
	}
}

func (c Config) withDefaults() Config {
	if c.SearchLimit <= 0 {
		c.SearchLimit = 500
	}
	if c.AutocompleteLimit <= 0 {
		c.AutocompleteLimit = 100
	}
	if c.CacheSize <= 0 {
		c.CacheSize = 512
	}
	return c
}

// SQLiteTextStore implements TextStore over a single-corpus SQLite database
// with a `verses(sura, ayah, text)` table. The store is read-only; WAL mode
// keeps concurrent readers (CLI, MCP server, watcher reloads) safe.
type SQLiteTextStore struct {
	mu     sync.RWMutex
	db     *sql.DB
	path   string
	config Config
	cache  *lru.Cache[quran.AyahNumber, string]
	closed bool
}

// Verify interface implementation at compile time.
var _ TextStore = (*SQLiteTextStore)(nil)

// validateIntegrity checks the database before opening for real use.
func validateIntegrity(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("database not accessible: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return fmt.Errorf("cannot open for validation: %w", err)
	}
	defer db.Close()

	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM sqlite_master
                       WHERE type='table' AND name='verses'`).Scan(&count)
	if err != nil {
		return fmt.Errorf("cannot query schema: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("table 'verses' missing")
	}
	return nil
}

// Open opens a verse database at path. An empty path creates an in-memory
// store for testing (schema included).
func Open(path string, config Config) (*SQLiteTextStore, error) {
	config = config.withDefaults()

	dsn := ":memory:"
	if path != "" {
		if err := validateIntegrity(path); err != nil {
			return nil, fmt.Errorf("invalid verse database %s: %w", path, err)
		}
		dsn = path + "?mode=ro&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open verse database: %w", err)
	}
	// A pooled connection to :memory: would see its own empty database.
	db.SetMaxOpenConns(1)

	if path == "" {
		if _, err := db.Exec(schema); err != nil {
			db.Close()
			return nil, fmt.Errorf("create in-memory schema: %w", err)
		}
	}

	cache, err := lru.New[quran.AyahNumber, string](config.CacheSize)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create verse cache: %w", err)
	}

	slog.Debug("verse store opened",
		slog.String("path", path),
		slog.Int("search_limit", config.SearchLimit))

	return &SQLiteTextStore{
		db:     db,
		path:   path,
		config: config,
		cache:  cache,
	}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS verses (
    sura INTEGER NOT NULL,
    ayah INTEGER NOT NULL,
    text TEXT NOT NULL,
    PRIMARY KEY (sura, ayah)
);
CREATE TABLE IF NOT EXISTS suras (
    number INTEGER PRIMARY KEY,
    arabic_name TEXT NOT NULL,
    transliterated_name TEXT NOT NULL,
    ayah_count INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS pages (
    number INTEGER PRIMARY KEY,
    sura INTEGER NOT NULL,
    ayah INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS juzs (
    number INTEGER PRIMARY KEY,
    sura INTEGER NOT NULL,
    ayah INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS hizbs (
    number INTEGER PRIMARY KEY,
    sura INTEGER NOT NULL,
    ayah INTEGER NOT NULL
);
`

// TextForVerse implements TextStore.
func (s *SQLiteTextStore) TextForVerse(ctx context.Context, v quran.AyahNumber) (string, error) {
	if text, ok := s.cache.Get(v); ok {
		return text, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", fmt.Errorf("store closed")
	}

	var text string
	err := s.db.QueryRowContext(ctx,
		`SELECT text FROM verses WHERE sura = ? AND ayah = ?`,
		v.Sura, v.Ayah).Scan(&text)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("verse %d:%d not found", v.Sura, v.Ayah)
	}
	if err != nil {
		return "", fmt.Errorf("lookup verse %d:%d: %w", v.Sura, v.Ayah, err)
	}

	s.cache.Add(v, text)
	return text, nil
}

// TextForVerses implements TextStore.
func (s *SQLiteTextStore) TextForVerses(ctx context.Context, vs []quran.AyahNumber) (map[quran.AyahNumber]string, error) {
	out := make(map[quran.AyahNumber]string, len(vs))
	for _, v := range vs {
		text, err := s.TextForVerse(ctx, v)
		if err != nil {
			continue // missing verses are absent, not an error
		}
		out[v] = text
	}
	return out, nil
}

// Autocomplete implements TextStore.
func (s *SQLiteTextStore) Autocomplete(ctx context.Context, loose string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, fmt.Errorf("store closed")
	}
	if loose == "" {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT text FROM verses WHERE text LIKE ? ORDER BY sura, ayah LIMIT ?`,
		"%"+loose+"%", s.config.AutocompleteLimit)
	if err != nil {
		return nil, fmt.Errorf("autocomplete query: %w", err)
	}
	defer rows.Close()

	var texts []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("scan autocomplete row: %w", err)
		}
		texts = append(texts, text)
	}
	return texts, rows.Err()
}

// Search implements TextStore.
func (s *SQLiteTextStore) Search(ctx context.Context, loose string) ([]VerseText, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, fmt.Errorf("store closed")
	}
	if loose == "" {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT sura, ayah, text FROM verses WHERE text LIKE ? ORDER BY sura, ayah LIMIT ?`,
		"%"+loose+"%", s.config.SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	var verses []VerseText
	for rows.Next() {
		var vt VerseText
		if err := rows.Scan(&vt.Ayah.Sura, &vt.Ayah.Ayah, &vt.Text); err != nil {
			return nil, fmt.Errorf("scan search row: %w", err)
		}
		verses = append(verses, vt)
	}
	return verses, rows.Err()
}

// Close implements TextStore.
func (s *SQLiteTextStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.cache.Purge()
	return s.db.Close()
}
