package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// suffixWordLimit caps a suggestion's tail to a few words so one long verse
// does not dominate the suggestion list.
const suffixWordLimit = 5

// autocompleteBuilder converts raw matched lines into bounded suggestion
// strings anchored on the term's persistence query. Suggestions keep
// first-occurrence order and are deduplicated.
type autocompleteBuilder struct {
	term Term
	seen map[string]bool
	out  []string
}

func newAutocompleteBuilder(term Term) *autocompleteBuilder {
	return &autocompleteBuilder{
		term: term,
		seen: make(map[string]bool),
	}
}

// add extracts suggestions from one raw matched line. The line is processed
// twice: as-is and in NFKD form, since stored text may carry composed or
// decomposed diacritics.
func (b *autocompleteBuilder) add(raw string) {
	if b.term.Matcher == nil {
		return
	}
	b.addForm(raw)
	if decomposed := norm.NFKD.String(raw); decomposed != raw {
		b.addForm(decomposed)
	}
}

func (b *autocompleteBuilder) addForm(text string) {
	segments := splitAroundMatches(b.term.Matcher, text)

	// Odd indices are matched segments; the segment after each match is the
	// candidate suffix.
	for i := 1; i < len(segments); i += 2 {
		suffix := capWords(segments[i+1], suffixWordLimit)
		trimmed := trimEdges(suffix)
		if trimmed == "" && suffix != "" {
			// The tail was bare punctuation; not worth suggesting.
			continue
		}
		b.append(b.term.PersistenceQuery + trimmed)
	}
}

func (b *autocompleteBuilder) append(suggestion string) {
	if b.seen[suggestion] {
		return
	}
	b.seen[suggestion] = true
	b.out = append(b.out, suggestion)
}

func (b *autocompleteBuilder) suggestions() []string {
	return b.out
}

// splitAroundMatches splits text on the matcher's match boundaries into an
// alternating list: non-match, match, non-match, ... The list always starts
// with a (possibly empty) non-match segment and ends with the trailing
// non-match segment, so every odd index is a match with a following segment.
func splitAroundMatches(m *Matcher, text string) []string {
	ranges := m.FindAll(text)
	if len(ranges) == 0 {
		return []string{text}
	}

	segments := make([]string, 0, 2*len(ranges)+1)
	prev := 0
	for _, r := range ranges {
		segments = append(segments, text[prev:r.Start], text[r.Start:r.End])
		prev = r.End
	}
	segments = append(segments, text[prev:])
	return segments
}

// capWords keeps the first limit whitespace-delimited words of s, preserving
// the leading separator of a mid-line suffix and the separators between the
// kept words. Trailing whitespace never survives the cap.
func capWords(s string, limit int) string {
	words := 0
	inWord := false
	for i, r := range s {
		if unicode.IsSpace(r) {
			inWord = false
			continue
		}
		if !inWord {
			inWord = true
			words++
			if words > limit {
				return strings.TrimRightFunc(s[:i], unicode.IsSpace)
			}
		}
	}
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// trimEdges removes leading and trailing runes that are neither word
// characters nor spaces.
func trimEdges(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return !isWordRune(r) && r != ' '
	})
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
