package search

import (
	"context"
	"regexp"
	"strconv"

	"github.com/qurankit/qurankit/internal/quran"
)

// numberPattern accepts pure digits or digits separated by exactly one colon.
var numberPattern = regexp.MustCompile(`^([0-9]+)(?::([0-9]+))?$`)

// NumberSearcher resolves numeric references: a lone number against the
// sura, juz, hizb, and page tables (a number may match several kinds), or a
// sura:ayah pair against a single verse.
type NumberSearcher struct {
	Language quran.Language
}

// Autocomplete implements the strategy contract. Numeric references have no
// text to complete, so no suggestions are produced.
func (NumberSearcher) Autocomplete(_ context.Context, _ Term, _ *quran.Quran) ([]string, error) {
	return nil, nil
}

// Search implements the strategy contract.
func (n NumberSearcher) Search(_ context.Context, term Term, q *quran.Quran) ([]Results, error) {
	groups := numberPattern.FindStringSubmatch(term.CompactQuery)
	if groups == nil {
		return nil, nil
	}

	first, err := strconv.Atoi(groups[1])
	if err != nil {
		return nil, nil // out-of-range digits are "no match", not an error
	}

	var items []Result
	if groups[2] == "" {
		items = n.resolveNumber(first, q)
	} else {
		ayah, err := strconv.Atoi(groups[2])
		if err != nil {
			return nil, nil
		}
		items = n.resolveVerse(quran.AyahNumber{Sura: first, Ayah: ayah}, q)
	}

	if len(items) == 0 {
		return nil, nil
	}
	return []Results{{Source: QuranSource(), Items: items}}, nil
}

// resolveNumber checks every reference table independently, in the fixed
// order sura, juz, hizb, page.
func (n NumberSearcher) resolveNumber(number int, q *quran.Quran) []Result {
	var items []Result

	if sura, ok := q.Sura(number); ok {
		items = append(items, Result{
			Text: quran.SuraName(sura, n.Language, true),
			Ayah: sura.FirstVerse(),
		})
	}
	if juz, ok := q.Juz(number); ok {
		items = append(items, Result{
			Text: quran.JuzName(number, n.Language),
			Ayah: juz.First,
		})
	}
	if hizb, ok := q.Hizb(number); ok {
		items = append(items, Result{
			Text: quran.HizbName(number, n.Language),
			Ayah: hizb.First,
		})
	}
	if page, ok := q.Page(number); ok {
		items = append(items, Result{
			Text: quran.PageName(number, n.Language),
			Ayah: page.First,
		})
	}
	return items
}

// resolveVerse resolves a sura:ayah pair. An invalid combination yields no
// result rather than an error.
func (n NumberSearcher) resolveVerse(v quran.AyahNumber, q *quran.Quran) []Result {
	if !q.Contains(v) {
		return nil
	}
	sura, _ := q.Sura(v.Sura)
	return []Result{{
		Text: quran.VerseName(sura, v.Ayah, n.Language),
		Ayah: v,
	}}
}
