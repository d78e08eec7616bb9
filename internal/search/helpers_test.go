package search

import (
	"context"
	"errors"

	"github.com/qurankit/qurankit/internal/quran"
	"github.com/qurankit/qurankit/internal/store"
	"github.com/qurankit/qurankit/internal/translation"
)

// testQuran returns a small index: sura 36 doubles as a juz, hizb, and page
// number so number-resolution fan-out is observable.
func testQuran() *quran.Quran {
	suras := []quran.Sura{
		{Number: 1, ArabicName: "الفاتحة", TransliteratedName: "Al-Fatihah", AyahCount: 7},
		{Number: 2, ArabicName: "البقرة", TransliteratedName: "Al-Baqarah", AyahCount: 286},
		{Number: 36, ArabicName: "يس", TransliteratedName: "Ya-Sin", AyahCount: 83},
		{Number: 112, ArabicName: "الإخلاص", TransliteratedName: "Al-Ikhlas", AyahCount: 4},
	}
	pages := []quran.Page{
		{Number: 1, First: quran.AyahNumber{Sura: 1, Ayah: 1}},
		{Number: 36, First: quran.AyahNumber{Sura: 2, Ayah: 219}},
	}
	juzs := []quran.Juz{
		{Number: 1, First: quran.AyahNumber{Sura: 1, Ayah: 1}},
		{Number: 36, First: quran.AyahNumber{Sura: 36, Ayah: 28}},
	}
	hizbs := []quran.Hizb{
		{Number: 1, First: quran.AyahNumber{Sura: 1, Ayah: 1}},
		{Number: 36, First: quran.AyahNumber{Sura: 36, Ayah: 28}},
	}
	return quran.New(suras, pages, juzs, hizbs)
}

// fakeStore is an in-memory TextStore whose coarse filter is a naive
// wildcard-aware substring scan, mirroring the SQLite LIKE contract.
type fakeStore struct {
	verses []store.VerseText
	err    error
	calls  int
}

var _ store.TextStore = (*fakeStore)(nil)

func (f *fakeStore) TextForVerse(_ context.Context, v quran.AyahNumber) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	for _, vt := range f.verses {
		if vt.Ayah == v {
			return vt.Text, nil
		}
	}
	return "", errors.New("not found")
}

func (f *fakeStore) TextForVerses(ctx context.Context, vs []quran.AyahNumber) (map[quran.AyahNumber]string, error) {
	out := make(map[quran.AyahNumber]string)
	for _, v := range vs {
		if text, err := f.TextForVerse(ctx, v); err == nil {
			out[v] = text
		}
	}
	return out, nil
}

func (f *fakeStore) Autocomplete(_ context.Context, loose string) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var texts []string
	for _, vt := range f.verses {
		if looseMatch(vt.Text, loose) {
			texts = append(texts, vt.Text)
		}
	}
	return texts, nil
}

func (f *fakeStore) Search(_ context.Context, loose string) ([]store.VerseText, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []store.VerseText
	for _, vt := range f.verses {
		if looseMatch(vt.Text, loose) {
			out = append(out, vt)
		}
	}
	return out, nil
}

func (f *fakeStore) Close() error { return nil }

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

// fakeCatalog serves a fixed set of installed translations.
type fakeCatalog struct {
	installed []translation.Installed
	err       error
}

var _ translation.Catalog = (*fakeCatalog)(nil)

func (f *fakeCatalog) Installed(_ context.Context) ([]translation.Installed, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.installed, nil
}

func installedTranslation(id int, name string, verses ...store.VerseText) translation.Installed {
	return translation.Installed{
		Info:  translation.Info{ID: id, Name: name, Language: "en", Version: 1},
		Store: &fakeStore{verses: verses},
	}
}

func verse(sura, ayah int, text string) store.VerseText {
	return store.VerseText{Ayah: quran.AyahNumber{Sura: sura, Ayah: ayah}, Text: text}
}

// rangesText extracts the matched substrings of a result, for assertions.
func rangesText(r Result) []string {
	out := make([]string, 0, len(r.Ranges))
	for _, rng := range r.Ranges {
		out = append(out, r.Text[rng.Start:rng.End])
	}
	return out
}
