package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/text/unicode/norm"

	"github.com/qurankit/qurankit/internal/store"
)

func TestPersistenceSearcher_Search(t *testing.T) {
	fs := &fakeStore{verses: []store.VerseText{
		verse(1, 1, "بسم الله الرحمن الرحيم"),
		verse(1, 2, "الحمد لله رب العالمين"),
		verse(112, 1, "قل هو الله أحد"),
	}}
	p := PersistenceSearcher{Store: fs, Source: QuranSource()}

	term := buildTerm(t, "الله")
	results, err := p.Search(context.Background(), term, testQuran())
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, QuranSource(), results[0].Source)
	require.Len(t, results[0].Items, 2)

	// Every result carries at least one precise match range.
	for _, item := range results[0].Items {
		require.NotEmpty(t, item.Ranges)
		for _, r := range item.Ranges {
			assert.Less(t, r.Start, r.End)
			assert.LessOrEqual(t, r.End, len(item.Text))
		}
	}
	assert.Equal(t, []string{"الله"}, rangesText(results[0].Items[0]))
}

func TestPersistenceSearcher_DropsCoarseFalsePositives(t *testing.T) {
	// The loose query for "ساعة" wildcards the anchors, so the coarse filter
	// can return lines the precise matcher rejects; those are dropped.
	fs := &fakeStore{verses: []store.VerseText{
		verse(7, 187, "يسألونك عن الساعة"),
		verse(1, 5, "نستعين"), // shares no precise match
	}}
	p := PersistenceSearcher{Store: fs, Source: QuranSource()}

	term := buildTerm(t, "الساعة")
	results, err := p.Search(context.Background(), term, testQuran())
	require.NoError(t, err)

	require.Len(t, results, 1)
	require.Len(t, results[0].Items, 1)
	assert.Equal(t, "يسألونك عن الساعة", results[0].Items[0].Text)
}

func TestPersistenceSearcher_DecomposedFallback(t *testing.T) {
	// The Allah ligature (U+FDF2) only matches the plain-letter query after
	// NFKD decomposition. The coarse filter passes via the "ل " bigram, the
	// precise matcher fails on the composed form, and the result keeps the
	// decomposed text so its ranges stay valid.
	composed := "قل هو ﷲ أحد"
	fs := &fakeStore{verses: []store.VerseText{verse(112, 1, composed)}}
	p := PersistenceSearcher{Store: fs, Source: QuranSource()}

	term := buildTerm(t, "له")
	require.NotNil(t, term.Matcher)
	require.Empty(t, term.Matcher.FindAll(composed), "ligature must not match composed form")

	results, err := p.Search(context.Background(), term, testQuran())
	require.NoError(t, err)
	require.Len(t, results, 1)

	item := results[0].Items[0]
	assert.Equal(t, norm.NFKD.String(composed), item.Text)
	require.NotEmpty(t, item.Ranges)
	for _, r := range item.Ranges {
		assert.Less(t, r.Start, r.End)
		assert.LessOrEqual(t, r.End, len(item.Text))
	}
}

func TestPersistenceSearcher_StoreError(t *testing.T) {
	fs := &fakeStore{err: errors.New("database locked")}
	p := PersistenceSearcher{Store: fs, Source: QuranSource()}
	term := buildTerm(t, "الله")

	_, err := p.Search(context.Background(), term, testQuran())
	assert.Error(t, err)

	_, err = p.Autocomplete(context.Background(), term, testQuran())
	assert.Error(t, err)
}

func TestPersistenceSearcher_NoMatcherSkipsStore(t *testing.T) {
	fs := &fakeStore{}
	p := PersistenceSearcher{Store: fs, Source: QuranSource()}

	term, ok := NewTerm("!!!")
	require.True(t, ok)

	results, err := p.Search(context.Background(), term, testQuran())
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, fs.calls, "store must not be queried without a matcher")
}

func TestPersistenceSearcher_Autocomplete(t *testing.T) {
	fs := &fakeStore{verses: []store.VerseText{
		verse(1, 1, "بسم الله الرحمن الرحيم"),
	}}
	p := PersistenceSearcher{Store: fs, Source: QuranSource()}

	term := buildTerm(t, "بسم")
	got, err := p.Autocomplete(context.Background(), term, testQuran())
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "بسم الله الرحمن الرحيم", got[0])
}
