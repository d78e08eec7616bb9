package search

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// variantClasses are the Arabic letters treated as interchangeable in
// informal text. The membership is a hand-curated product decision carried
// over verbatim; do not "fix" it into a transliteration scheme.
var variantClasses = [][]rune{
	{'ا', 'آ', 'أ', 'إ', 'ى'}, // alef variants
	{'ء', 'أ', 'ؤ', 'ئ'},      // hamza variants
	{'ت', 'ة'},                // taa / taa marbuta
	{'ه', 'ة'},                // haa / taa marbuta
	{'ى', 'ي'},                // alef maksura / yaa
	{'ئ', 'ى', 'ي'},           // hamza on yaa
}

// anchorLetters are replaced with a single-character wildcard when building
// the loose store-level query.
var anchorLetters = map[rune]bool{
	'ا': true, 'أ': true, 'ء': true, 'ت': true,
	'ة': true, 'ه': true, 'ى': true, 'ئ': true,
}

// equivalences maps each letter to the union of every class containing it.
// A letter in several classes matches the union, which keeps matching
// symmetric: if a matches b then b matches a.
var equivalences = buildEquivalences()

func buildEquivalences() map[rune]map[rune]bool {
	eq := make(map[rune]map[rune]bool)
	for _, class := range variantClasses {
		for _, member := range class {
			set, ok := eq[member]
			if !ok {
				set = make(map[rune]bool)
				eq[member] = set
			}
			for _, other := range class {
				set[other] = true
			}
		}
	}
	return eq
}

// unit matches a single rune of candidate text: either any member of an
// equivalence set, or one exact (case-folded) rune.
type unit struct {
	set   map[rune]bool // nil for exact units
	exact rune
}

func (u unit) matches(r rune) bool {
	r = unicode.ToLower(r)
	if u.set != nil {
		return u.set[r]
	}
	return r == u.exact
}

// Matcher finds variant-equivalent occurrences of a cleaned query in
// candidate text. It is a compiled sequence of per-rune units; between
// consecutive units any number of "invalid" runes (marks, punctuation,
// symbols, control, tatweel) are skipped, so diacritics sitting between
// letters of the original text do not break a match.
//
// Matching is case-insensitive, Unicode-aware, non-overlapping, and
// left-to-right; reported offsets are byte offsets into the candidate.
type Matcher struct {
	units    []unit
	stripped string
}

// CompileMatcher builds a matcher from an already-cleaned persistence query.
// It reports false for an empty query (nothing to match).
func CompileMatcher(persistenceQuery string) (*Matcher, bool) {
	if persistenceQuery == "" {
		return nil, false
	}

	var units []unit
	for _, r := range persistenceQuery {
		if set, ok := equivalences[r]; ok {
			units = append(units, unit{set: set})
		} else {
			units = append(units, unit{exact: unicode.ToLower(r)})
		}
	}

	stripped := strings.Map(func(r rune) rune {
		if anchorLetters[r] {
			return '_'
		}
		return r
	}, persistenceQuery)

	return &Matcher{units: units, stripped: stripped}, true
}

// SimilarityStripped returns the loose query for store-level coarse
// filtering: anchor letters replaced by a single-character wildcard.
func (m *Matcher) SimilarityStripped() string {
	return m.stripped
}

// FindAll returns every non-overlapping match in text, left to right.
func (m *Matcher) FindAll(text string) []Range {
	runes, offsets := decode(text)

	var out []Range
	for i := 0; i < len(runes); {
		end, ok := m.matchAt(runes, i)
		if !ok {
			i++
			continue
		}
		out = append(out, Range{Start: offsets[i], End: offsets[end]})
		i = end
	}
	return out
}

// Matches reports whether text contains at least one match.
func (m *Matcher) Matches(text string) bool {
	runes, _ := decode(text)
	for i := 0; i < len(runes); i++ {
		if _, ok := m.matchAt(runes, i); ok {
			return true
		}
	}
	return false
}

// matchAt attempts a match starting at rune index i and returns the rune
// index one past the match. Invalid runes are skipped between units but
// never consumed before the first or after the last unit, so the reported
// range is anchored on matched letters.
func (m *Matcher) matchAt(runes []rune, i int) (int, bool) {
	j := i
	for u, un := range m.units {
		if u > 0 {
			for j < len(runes) && isRemovable(runes[j]) {
				j++
			}
		}
		if j >= len(runes) || !un.matches(runes[j]) {
			return 0, false
		}
		j++
	}
	return j, true
}

// decode splits text into runes plus the byte offset of each rune; the
// offsets slice carries one extra entry holding len(text).
func decode(text string) ([]rune, []int) {
	runes := make([]rune, 0, utf8.RuneCountInString(text))
	offsets := make([]int, 0, utf8.RuneCountInString(text)+1)
	for i, r := range text {
		runes = append(runes, r)
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(text))
	return runes, offsets
}
