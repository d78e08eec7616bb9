// Package translation manages the catalog of locally installed translation
// databases. A translation is "installed" when its database file exists under
// the translations directory and carries a metadata row with a version.
package translation

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/qurankit/qurankit/internal/store"
)

// Info identifies a translation. ID ordering drives result ordering in the
// search core, so IDs must be stable across installs.
type Info struct {
	ID       int
	Name     string
	Language string
	// Version is the installed version. A value > 0 implies the translation
	// is locally available.
	Version int
}

// Installed is an installed translation together with its opened text store.
type Installed struct {
	Info  Info
	Store store.TextStore
}

// Catalog lists locally installed translations.
type Catalog interface {
	// Installed returns installed translations ordered by ascending ID.
	Installed(ctx context.Context) ([]Installed, error)
}

// DirectoryCatalog scans a directory of translation databases (*.db) and
// keeps their stores open. Reload rescans; Close releases everything.
type DirectoryCatalog struct {
	mu     sync.RWMutex
	dir    string
	config store.Config
	logger *slog.Logger
	open   map[string]Installed // keyed by file path
}

// Verify interface implementation at compile time.
var _ Catalog = (*DirectoryCatalog)(nil)

// NewDirectoryCatalog creates a catalog over dir and performs the first scan.
// A missing directory is not an error; it simply yields no translations.
func NewDirectoryCatalog(dir string, config store.Config, logger *slog.Logger) (*DirectoryCatalog, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &DirectoryCatalog{
		dir:    dir,
		config: config,
		logger: logger,
		open:   make(map[string]Installed),
	}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Installed implements Catalog.
func (c *DirectoryCatalog) Installed(ctx context.Context) ([]Installed, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Installed, 0, len(c.open))
	for _, inst := range c.open {
		out = append(out, inst)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Info.ID < out[j].Info.ID })
	return out, nil
}

// Reload rescans the translations directory. Stores for removed files are
// closed; unreadable files are skipped with a warning.
func (c *DirectoryCatalog) Reload() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			entries = nil
		} else {
			return fmt.Errorf("scan translations dir %s: %w", c.dir, err)
		}
	}

	seen := make(map[string]bool)
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".db") {
			continue
		}
		path := filepath.Join(c.dir, entry.Name())
		seen[path] = true
		if _, ok := c.open[path]; ok {
			continue // already open
		}

		inst, err := openTranslation(path, c.config)
		if err != nil {
			c.logger.Warn("skipping translation database",
				slog.String("path", path),
				slog.String("error", err.Error()))
			continue
		}
		c.logger.Info("translation installed",
			slog.Int("id", inst.Info.ID),
			slog.String("name", inst.Info.Name))
		c.open[path] = inst
	}

	for path, inst := range c.open {
		if !seen[path] {
			_ = inst.Store.Close()
			delete(c.open, path)
			c.logger.Info("translation removed", slog.Int("id", inst.Info.ID))
		}
	}
	return nil
}

// Close releases every open translation store.
func (c *DirectoryCatalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	for path, inst := range c.open {
		if err := inst.Store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(c.open, path)
	}
	return firstErr
}

// openTranslation opens a translation database and reads its metadata row.
func openTranslation(path string, config store.Config) (Installed, error) {
	info, err := readInfo(path)
	if err != nil {
		return Installed{}, err
	}
	if info.Version <= 0 {
		return Installed{}, fmt.Errorf("translation %s has no installed version", path)
	}

	s, err := store.Open(path, config)
	if err != nil {
		return Installed{}, err
	}
	return Installed{Info: info, Store: s}, nil
}

func readInfo(path string) (Info, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return Info{}, fmt.Errorf("open translation metadata: %w", err)
	}
	defer db.Close()

	var info Info
	err = db.QueryRow(
		`SELECT id, name, language, version FROM translation_info LIMIT 1`,
	).Scan(&info.ID, &info.Name, &info.Language, &info.Version)
	if err != nil {
		return Info{}, fmt.Errorf("read translation metadata: %w", err)
	}
	return info, nil
}
