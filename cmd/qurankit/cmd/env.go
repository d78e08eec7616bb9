package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/qurankit/qurankit/internal/config"
	qkerrors "github.com/qurankit/qurankit/internal/errors"
	"github.com/qurankit/qurankit/internal/quran"
	"github.com/qurankit/qurankit/internal/recents"
	"github.com/qurankit/qurankit/internal/search"
	"github.com/qurankit/qurankit/internal/store"
	"github.com/qurankit/qurankit/internal/translation"
)

// env bundles the open resources a search-facing command needs.
type env struct {
	cfg       *config.Config
	scripture *store.SQLiteTextStore
	quran     *quran.Quran
	catalog   *translation.DirectoryCatalog // nil when no translations directory exists
	searcher  *search.Searcher
	recents   *recents.List
}

// openEnv loads configuration and opens the scripture database, the
// translation catalog, and the composite searcher. Callers must Close.
func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, err
	}

	dbPath := cfg.QuranDBPath()
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, qkerrors.StorageError(
			fmt.Sprintf("no quran database found at %s", dbPath), nil).
			WithSuggestion("place quran.db in the data directory or set --data-dir")
	}

	storeCfg := store.Config{
		SearchLimit:       cfg.Search.MaxResults,
		AutocompleteLimit: cfg.Search.AutocompleteLimit,
		CacheSize:         cfg.Search.CacheSize,
	}

	scripture, err := store.Open(dbPath, storeCfg)
	if err != nil {
		return nil, err
	}

	q, err := scripture.LoadQuran(ctx)
	if err != nil {
		_ = scripture.Close()
		return nil, err
	}

	e := &env{
		cfg:       cfg,
		scripture: scripture,
		quran:     q,
		recents:   recents.New(cfg.RecentsPath(), cfg.Recents.MaxEntries),
	}

	// A missing translations directory is not an error; search degrades to
	// the scripture corpus alone.
	if _, err := os.Stat(cfg.TranslationsPath()); err == nil {
		catalog, err := translation.NewDirectoryCatalog(cfg.TranslationsPath(), storeCfg, slog.Default())
		if err != nil {
			slog.Warn("Failed to open translation catalog",
				slog.String("dir", cfg.TranslationsPath()),
				slog.String("error", err.Error()))
		} else {
			e.catalog = catalog
		}
	}

	var catalog translation.Catalog
	if e.catalog != nil {
		catalog = e.catalog
	}
	e.searcher = search.NewSearcher(scripture, catalog,
		search.WithLanguage(quran.Language(cfg.Search.Language)),
		search.WithLogger(slog.Default()))

	return e, nil
}

// Close releases the database handles.
func (e *env) Close() {
	if e.catalog != nil {
		_ = e.catalog.Close()
	}
	if e.scripture != nil {
		_ = e.scripture.Close()
	}
}
