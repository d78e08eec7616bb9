package search

import (
	"context"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/qurankit/qurankit/internal/quran"
	"github.com/qurankit/qurankit/internal/store"
)

// PersistenceSearcher searches one text corpus through its lookup store.
// The store performs a coarse substring filter with the loose
// wildcard-substituted query; the precise matcher then validates each
// candidate and computes highlight ranges. Candidates where the matcher
// finds nothing in either the original or NFKD-decomposed text are dropped,
// so every returned result carries at least one range.
type PersistenceSearcher struct {
	Store  store.TextStore
	Source Source
}

// Autocomplete implements the strategy contract.
func (p PersistenceSearcher) Autocomplete(ctx context.Context, term Term, _ *quran.Quran) ([]string, error) {
	if term.Matcher == nil {
		return nil, nil
	}

	raws, err := p.Store.Autocomplete(ctx, term.Matcher.SimilarityStripped())
	if err != nil {
		return nil, fmt.Errorf("%s autocomplete: %w", p.Source.Key(), err)
	}

	b := newAutocompleteBuilder(term)
	for _, raw := range raws {
		b.add(raw)
	}
	return b.suggestions(), nil
}

// Search implements the strategy contract.
func (p PersistenceSearcher) Search(ctx context.Context, term Term, _ *quran.Quran) ([]Results, error) {
	if term.Matcher == nil {
		return nil, nil
	}

	verses, err := p.Store.Search(ctx, term.Matcher.SimilarityStripped())
	if err != nil {
		return nil, fmt.Errorf("%s search: %w", p.Source.Key(), err)
	}

	var items []Result
	for _, vt := range verses {
		text := vt.Text
		ranges := term.Matcher.FindAll(text)
		if len(ranges) == 0 {
			// The store's coarse filter may pass composed text the matcher
			// only recognizes decomposed; retry on the NFKD form and keep
			// that form as the result text so ranges stay valid.
			decomposed := norm.NFKD.String(text)
			if ranges = term.Matcher.FindAll(decomposed); len(ranges) == 0 {
				continue
			}
			text = decomposed
		}
		items = append(items, Result{
			Text:   text,
			Ranges: ranges,
			Ayah:   vt.Ayah,
		})
	}

	if len(items) == 0 {
		return nil, nil
	}
	return []Results{{Source: p.Source, Items: items}}, nil
}
