package search

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/qurankit/qurankit/internal/quran"
	"github.com/qurankit/qurankit/internal/translation"
)

// TranslationSearcher fans a query out over every locally installed
// translation. Search returns the union across translations; a translation
// whose store fails is simply excluded. Autocomplete stops at the first
// translation yielding any suggestion, so the UI is not flooded with
// near-identical cross-translation completions.
type TranslationSearcher struct {
	Catalog translation.Catalog
	Logger  *slog.Logger
}

func (t TranslationSearcher) logger() *slog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return slog.Default()
}

func (t TranslationSearcher) searcherFor(inst translation.Installed) PersistenceSearcher {
	return PersistenceSearcher{
		Store:  inst.Store,
		Source: TranslationSource(inst.Info),
	}
}

// Autocomplete implements the strategy contract.
func (t TranslationSearcher) Autocomplete(ctx context.Context, term Term, q *quran.Quran) ([]string, error) {
	installed, err := t.Catalog.Installed(ctx)
	if err != nil {
		return nil, fmt.Errorf("list installed translations: %w", err)
	}

	for _, inst := range installed {
		suggestions, err := t.searcherFor(inst).Autocomplete(ctx, term, q)
		if err != nil {
			t.logger().Debug("translation autocomplete failed",
				slog.Int("translation", inst.Info.ID),
				slog.String("error", err.Error()))
			continue
		}
		if len(suggestions) > 0 {
			return suggestions, nil
		}
	}
	return nil, nil
}

// Search implements the strategy contract. Translations are queried
// concurrently; output order follows the catalog's iteration order
// regardless of completion order.
func (t TranslationSearcher) Search(ctx context.Context, term Term, q *quran.Quran) ([]Results, error) {
	installed, err := t.Catalog.Installed(ctx)
	if err != nil {
		return nil, fmt.Errorf("list installed translations: %w", err)
	}
	if len(installed) == 0 {
		return nil, nil
	}

	perTranslation := make([][]Results, len(installed))
	g, gctx := errgroup.WithContext(ctx)
	for i, inst := range installed {
		g.Go(func() error {
			results, err := t.searcherFor(inst).Search(gctx, term, q)
			if err != nil {
				// Exclude this translation; siblings still contribute.
				t.logger().Debug("translation search failed",
					slog.Int("translation", inst.Info.ID),
					slog.String("error", err.Error()))
				return nil
			}
			perTranslation[i] = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Results
	for _, results := range perTranslation {
		out = append(out, results...)
	}
	return out, nil
}
