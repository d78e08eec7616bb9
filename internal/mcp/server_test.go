package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qkerrors "github.com/qurankit/qurankit/internal/errors"
	"github.com/qurankit/qurankit/internal/quran"
	"github.com/qurankit/qurankit/internal/search"
	"github.com/qurankit/qurankit/internal/store"
	"github.com/qurankit/qurankit/internal/translation"
)

func testQuran() *quran.Quran {
	suras := []quran.Sura{
		{Number: 1, ArabicName: "الفاتحة", TransliteratedName: "Al-Fatihah", AyahCount: 7},
		{Number: 2, ArabicName: "البقرة", TransliteratedName: "Al-Baqarah", AyahCount: 286},
	}
	pages := []quran.Page{{Number: 1, First: quran.AyahNumber{Sura: 1, Ayah: 1}}}
	juzs := []quran.Juz{{Number: 1, First: quran.AyahNumber{Sura: 1, Ayah: 1}}}
	hizbs := []quran.Hizb{{Number: 1, First: quran.AyahNumber{Sura: 1, Ayah: 1}}}
	return quran.New(suras, pages, juzs, hizbs)
}

// memStore is a minimal in-memory TextStore for handler tests.
type memStore struct {
	verses []store.VerseText
}

var _ store.TextStore = (*memStore)(nil)

func (m *memStore) TextForVerse(_ context.Context, v quran.AyahNumber) (string, error) {
	for _, vt := range m.verses {
		if vt.Ayah == v {
			return vt.Text, nil
		}
	}
	return "", errors.New("not found")
}

func (m *memStore) TextForVerses(ctx context.Context, vs []quran.AyahNumber) (map[quran.AyahNumber]string, error) {
	out := make(map[quran.AyahNumber]string)
	for _, v := range vs {
		if text, err := m.TextForVerse(ctx, v); err == nil {
			out[v] = text
		}
	}
	return out, nil
}

func (m *memStore) Autocomplete(_ context.Context, loose string) ([]string, error) {
	var texts []string
	for _, vt := range m.verses {
		if looseMatch(vt.Text, loose) {
			texts = append(texts, vt.Text)
		}
	}
	return texts, nil
}

func (m *memStore) Search(_ context.Context, loose string) ([]store.VerseText, error) {
	var out []store.VerseText
	for _, vt := range m.verses {
		if looseMatch(vt.Text, loose) {
			out = append(out, vt)
		}
	}
	return out, nil
}

func (m *memStore) Close() error { return nil }

// looseMatch emulates LIKE '%loose%' with '_' as a single-rune wildcard.
func looseMatch(text, loose string) bool {
	pattern := []rune(loose)
	runes := []rune(text)
	for start := 0; start+len(pattern) <= len(runes); start++ {
		ok := true
		for i, p := range pattern {
			if p != '_' && runes[start+i] != p {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

type memCatalog struct {
	installed []translation.Installed
	err       error
}

func (c *memCatalog) Installed(_ context.Context) ([]translation.Installed, error) {
	return c.installed, c.err
}

func newTestServer(t *testing.T, catalog translation.Catalog) *Server {
	t.Helper()
	scripture := &memStore{verses: []store.VerseText{
		{Ayah: quran.AyahNumber{Sura: 1, Ayah: 1}, Text: "بسم الله الرحمن الرحيم"},
	}}
	searcher := search.NewSearcher(scripture, catalog)

	srv, err := NewServer(searcher, testQuran(), catalog)
	require.NoError(t, err)
	return srv
}

func TestNewServer_Validation(t *testing.T) {
	_, err := NewServer(nil, testQuran(), nil)
	assert.Error(t, err)

	_, err = NewServer(search.NewSearcher(&memStore{}, nil), nil, nil)
	assert.Error(t, err)
}

func TestSearchHandler(t *testing.T) {
	srv := newTestServer(t, nil)

	_, out, err := srv.searchHandler(context.Background(), nil, SearchInput{Query: "بسم"})
	require.NoError(t, err)

	require.Len(t, out.Sources, 1)
	assert.Equal(t, "quran", out.Sources[0].Source)
	assert.Empty(t, out.Sources[0].Translation)
	require.Len(t, out.Sources[0].Items, 1)

	item := out.Sources[0].Items[0]
	assert.Equal(t, 1, item.Sura)
	assert.Equal(t, 1, item.Ayah)
	assert.Equal(t, "بسم الله الرحمن الرحيم", item.Text)
	require.NotEmpty(t, item.Ranges)
	assert.Equal(t, 0, item.Ranges[0].Start)
}

func TestSearchHandler_EmptyQuery(t *testing.T) {
	srv := newTestServer(t, nil)

	_, _, err := srv.searchHandler(context.Background(), nil, SearchInput{Query: "  "})
	require.Error(t, err)

	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrCodeInvalidParams, mcpErr.Code)
}

func TestSuggestHandler(t *testing.T) {
	srv := newTestServer(t, nil)

	_, out, err := srv.suggestHandler(context.Background(), nil, SuggestInput{Query: "بسم"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Suggestions)
	assert.Equal(t, "بسم", out.Suggestions[0])
	assert.Contains(t, out.Suggestions, "بسم الله الرحمن الرحيم")
}

func TestCatalogStatusHandler(t *testing.T) {
	catalog := &memCatalog{installed: []translation.Installed{
		{
			Info:  translation.Info{ID: 2, Name: "Sahih International", Language: "en", Version: 3},
			Store: &memStore{},
		},
	}}
	srv := newTestServer(t, catalog)

	_, out, err := srv.catalogStatusHandler(context.Background(), nil, CatalogStatusInput{})
	require.NoError(t, err)
	require.Len(t, out.Translations, 1)
	assert.Equal(t, TranslationStatus{ID: 2, Name: "Sahih International", Language: "en", Version: 3}, out.Translations[0])
}

func TestCatalogStatusHandler_NilCatalog(t *testing.T) {
	srv := newTestServer(t, nil)

	_, out, err := srv.catalogStatusHandler(context.Background(), nil, CatalogStatusInput{})
	require.NoError(t, err)
	assert.Empty(t, out.Translations)
}

func TestMapError(t *testing.T) {
	assert.Nil(t, MapError(nil))

	e := MapError(context.DeadlineExceeded)
	assert.Equal(t, ErrCodeTimeout, e.Code)

	e = MapError(qkerrors.New(qkerrors.ErrCodeDatabaseNotFound, "quran.db missing", nil))
	assert.Equal(t, ErrCodeDatabaseNotFound, e.Code)

	e = MapError(qkerrors.New(qkerrors.ErrCodeInvalidInput, "bad query", nil))
	assert.Equal(t, ErrCodeInvalidParams, e.Code)

	e = MapError(errors.New("plain"))
	assert.Equal(t, ErrCodeInternalError, e.Code)
}

func TestServerInfo(t *testing.T) {
	srv := newTestServer(t, nil)
	name, _ := srv.Info()
	assert.Equal(t, "QuranKit", name)
	assert.NotNil(t, srv.MCPServer())
}
