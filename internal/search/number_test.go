package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qurankit/qurankit/internal/quran"
)

func numberSearch(t *testing.T, raw string) []Results {
	t.Helper()
	term := buildTerm(t, raw)
	results, err := NumberSearcher{Language: quran.LanguageEnglish}.Search(context.Background(), term, testQuran())
	require.NoError(t, err)
	return results
}

func TestNumberSearcher_VersePair(t *testing.T) {
	results := numberSearch(t, "2:255")

	require.Len(t, results, 1)
	assert.Equal(t, QuranSource(), results[0].Source)
	require.Len(t, results[0].Items, 1)
	item := results[0].Items[0]
	assert.Equal(t, quran.AyahNumber{Sura: 2, Ayah: 255}, item.Ayah)
	assert.Equal(t, "Al-Baqarah, Ayah 255", item.Text)
}

func TestNumberSearcher_InvalidVersePair(t *testing.T) {
	// Invalid combinations yield no result, not an error.
	assert.Empty(t, numberSearch(t, "999:1"))
	assert.Empty(t, numberSearch(t, "2:287"))
	assert.Empty(t, numberSearch(t, "2:0"))
}

func TestNumberSearcher_SingleNumberMultipleKinds(t *testing.T) {
	// 36 is simultaneously a sura, juz, hizb, and page in the fixture.
	results := numberSearch(t, "36")

	require.Len(t, results, 1)
	items := results[0].Items
	require.Len(t, items, 4)
	assert.Equal(t, "36. Ya-Sin", items[0].Text)
	assert.Equal(t, "Juz' 36", items[1].Text)
	assert.Equal(t, "Hizb 36", items[2].Text)
	assert.Equal(t, "Page 36", items[3].Text)

	// Sura result points at the sura's first verse; divisions at their own.
	assert.Equal(t, quran.AyahNumber{Sura: 36, Ayah: 1}, items[0].Ayah)
	assert.Equal(t, quran.AyahNumber{Sura: 2, Ayah: 219}, items[3].Ayah)
}

func TestNumberSearcher_NonNumericQuery(t *testing.T) {
	assert.Empty(t, numberSearch(t, "baqarah"))
	assert.Empty(t, numberSearch(t, "2:255:1"))
	assert.Empty(t, numberSearch(t, "2:"))
	assert.Empty(t, numberSearch(t, "2 255"))
}

func TestNumberSearcher_UnknownNumber(t *testing.T) {
	assert.Empty(t, numberSearch(t, "999"))
}

func TestNumberSearcher_Autocomplete(t *testing.T) {
	term := buildTerm(t, "36")
	got, err := NumberSearcher{}.Autocomplete(context.Background(), term, testQuran())
	require.NoError(t, err)
	assert.Empty(t, got)
}
