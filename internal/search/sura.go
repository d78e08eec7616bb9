package search

import (
	"context"

	"github.com/qurankit/qurankit/internal/quran"
)

// SuraSearcher matches the query against localized sura display names,
// always including the Arabic-language variant.
type SuraSearcher struct {
	Language quran.Language
}

// displayNames returns the candidate names for one sura: the configured
// language first, then Arabic. Duplicates (Arabic UI) collapse to one.
func (s SuraSearcher) displayNames(sura quran.Sura) []string {
	localized := quran.SuraName(sura, s.Language, false)
	arabic := quran.SuraName(sura, quran.LanguageArabic, false)
	if localized == arabic {
		return []string{localized}
	}
	return []string{localized, arabic}
}

// Autocomplete implements the strategy contract: matched sura names feed the
// suggestion builder.
func (s SuraSearcher) Autocomplete(_ context.Context, term Term, q *quran.Quran) ([]string, error) {
	if term.Matcher == nil {
		return nil, nil
	}

	b := newAutocompleteBuilder(term)
	for _, sura := range q.Suras {
		for _, name := range s.displayNames(sura) {
			if term.Matcher.Matches(name) {
				b.add(name)
			}
		}
	}
	return b.suggestions(), nil
}

// Search implements the strategy contract: one result per sura whose display
// name (in either language) contains a match, anchored at the sura's first
// verse.
func (s SuraSearcher) Search(_ context.Context, term Term, q *quran.Quran) ([]Results, error) {
	if term.Matcher == nil {
		return nil, nil
	}

	var items []Result
	for _, sura := range q.Suras {
		for _, name := range s.displayNames(sura) {
			ranges := term.Matcher.FindAll(name)
			if len(ranges) == 0 {
				continue
			}
			items = append(items, Result{
				Text:   name,
				Ranges: ranges,
				Ayah:   sura.FirstVerse(),
			})
			break
		}
	}

	if len(items) == 0 {
		return nil, nil
	}
	return []Results{{Source: QuranSource(), Items: items}}, nil
}
