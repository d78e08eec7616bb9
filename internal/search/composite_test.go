package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qurankit/qurankit/internal/quran"
	"github.com/qurankit/qurankit/internal/store"
	"github.com/qurankit/qurankit/internal/translation"
)

func TestSearcher_BlankQuery(t *testing.T) {
	scripture := &fakeStore{}
	s := NewSearcher(scripture, nil)

	for _, raw := range []string{"", "   ", "\t\n"} {
		results, err := s.Search(context.Background(), raw, testQuran())
		require.NoError(t, err)
		assert.Empty(t, results, "query %q", raw)

		suggestions, err := s.Autocomplete(context.Background(), raw, testQuran())
		require.NoError(t, err)
		assert.Empty(t, suggestions, "query %q", raw)
	}
	assert.Zero(t, scripture.calls, "blank input must not reach the store")
}

func TestSearcher_SourceOrdering(t *testing.T) {
	scripture := &fakeStore{verses: []store.VerseText{verse(1, 1, "his merciful bounty endures")}}
	catalog := &fakeCatalog{installed: []translation.Installed{
		installedTranslation(2, "Sahih International", verse(1, 3, "the entirely merciful")),
		installedTranslation(5, "Pickthall", verse(1, 3, "the merciful one")),
	}}
	s := NewSearcher(scripture, catalog)

	results, err := s.Search(context.Background(), "merciful", testQuran())
	require.NoError(t, err)

	// Non-Arabic, non-numeric query: translations run even though the
	// scripture already matched. Scripture leads, then ascending ID.
	require.Len(t, results, 3)
	assert.Equal(t, "quran", results[0].Source.Key())
	assert.Equal(t, "translation:2", results[1].Source.Key())
	assert.Equal(t, "translation:5", results[2].Source.Key())
}

func TestSearcher_ArabicQuerySkipsTranslations(t *testing.T) {
	scripture := &fakeStore{verses: []store.VerseText{verse(1, 1, "بسم الله الرحمن الرحيم")}}
	tstore := &fakeStore{verses: []store.VerseText{verse(1, 1, "بسم الله")}}
	catalog := &fakeCatalog{installed: []translation.Installed{
		{Info: translation.Info{ID: 1, Name: "T", Language: "ar", Version: 1}, Store: tstore},
	}}
	s := NewSearcher(scripture, catalog)

	results, err := s.Search(context.Background(), "بسم", testQuran())
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "quran", results[0].Source.Key())
	assert.Zero(t, tstore.calls, "Arabic query with scripture hits must not fan out to translations")
}

func TestSearcher_NumericQuerySkipsTranslations(t *testing.T) {
	tstore := &fakeStore{verses: []store.VerseText{verse(36, 1, "ya sin")}}
	catalog := &fakeCatalog{installed: []translation.Installed{
		{Info: translation.Info{ID: 1, Name: "T", Language: "en", Version: 1}, Store: tstore},
	}}
	s := NewSearcher(&fakeStore{}, catalog)

	results, err := s.Search(context.Background(), "36", testQuran())
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Len(t, results[0].Items, 4)
	assert.Zero(t, tstore.calls)
}

func TestSearcher_TranslationsRunWhenNothingElseMatches(t *testing.T) {
	catalog := &fakeCatalog{installed: []translation.Installed{
		installedTranslation(7, "Tafsir", verse(2, 255, "الله لا إله إلا هو")),
	}}
	s := NewSearcher(&fakeStore{}, catalog)

	// Arabic query, but zero simple results: translations still run.
	results, err := s.Search(context.Background(), "لا إله إلا هو", testQuran())
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "translation:7", results[0].Source.Key())
}

func TestSearcher_DegradedScriptureStore(t *testing.T) {
	scripture := &fakeStore{err: errors.New("database locked")}
	s := NewSearcher(scripture, nil)

	// The failing store is logged and excluded; the sura strategy still
	// answers.
	results, err := s.Search(context.Background(), "الفاتحة", testQuran())
	require.NoError(t, err)

	require.Len(t, results, 1)
	require.Len(t, results[0].Items, 1)
	assert.Equal(t, "الفاتحة", results[0].Items[0].Text)
	assert.Equal(t, quran.AyahNumber{Sura: 1, Ayah: 1}, results[0].Items[0].Ayah)
}

func TestSearcher_MergesStrategyGroups(t *testing.T) {
	// Sura and scripture strategies both produce a scripture-source group;
	// the merge keeps a single group with the sura items first.
	scripture := &fakeStore{verses: []store.VerseText{verse(1, 1, "بسم الله الفاتحة")}}
	s := NewSearcher(scripture, nil)

	results, err := s.Search(context.Background(), "الفاتحة", testQuran())
	require.NoError(t, err)

	require.Len(t, results, 1)
	require.Len(t, results[0].Items, 2)
	assert.Equal(t, "الفاتحة", results[0].Items[0].Text)
	assert.Equal(t, "بسم الله الفاتحة", results[0].Items[1].Text)
}

func TestSearcher_AutocompletePrependsQuery(t *testing.T) {
	scripture := &fakeStore{verses: []store.VerseText{verse(1, 1, "بسم الله الرحمن الرحيم")}}
	s := NewSearcher(scripture, nil)

	got, err := s.Autocomplete(context.Background(), "  بسم  ", testQuran())
	require.NoError(t, err)

	require.NotEmpty(t, got)
	assert.Equal(t, "بسم", got[0], "the normalized query itself leads the list")
	assert.Contains(t, got, "بسم الله الرحمن الرحيم")
}

func TestSearcher_AutocompleteDeduplicates(t *testing.T) {
	s := NewSearcher(&fakeStore{}, nil)

	// The sura strategy suggests exactly the query, which would otherwise be
	// prepended a second time.
	got, err := s.Autocomplete(context.Background(), "baqarah", testQuran())
	require.NoError(t, err)
	assert.Equal(t, []string{"baqarah"}, got)
}

func TestSearcher_WithLanguage(t *testing.T) {
	s := NewSearcher(&fakeStore{}, nil, WithLanguage(quran.LanguageArabic))

	results, err := s.Search(context.Background(), "36", testQuran())
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "36. يس", results[0].Items[0].Text)
}
