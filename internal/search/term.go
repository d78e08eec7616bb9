package search

import (
	"strings"
	"unicode"
)

// maxPersistenceQueryLen caps the cleaned query forwarded to stores.
const maxPersistenceQueryLen = 1000

// tatweel is the Arabic elongation character, stripped alongside marks.
const tatweel = 'ـ'

// Term is a processed search query.
type Term struct {
	// CompactQuery is the user's text with whitespace runs collapsed to
	// single spaces. Never empty.
	CompactQuery string

	// PersistenceQuery is the lowercased query with marks, punctuation,
	// symbols, control characters, and tatweel removed, capped at
	// maxPersistenceQueryLen runes. May legally be empty.
	PersistenceQuery string

	// Matcher matches PersistenceQuery against candidate text tolerating
	// Arabic letter variants and interleaved diacritics. Nil when
	// PersistenceQuery is empty.
	Matcher *Matcher
}

// NewTerm normalizes raw user input. It reports false when the input
// collapses to nothing, in which case no search should run.
func NewTerm(raw string) (Term, bool) {
	compact := strings.Join(strings.Fields(raw), " ")
	if compact == "" {
		return Term{}, false
	}

	persistence := cleanQuery(compact)

	term := Term{
		CompactQuery:     compact,
		PersistenceQuery: persistence,
	}
	if persistence != "" {
		if m, ok := CompileMatcher(persistence); ok {
			term.Matcher = m
		}
	}
	return term, true
}

// cleanQuery strips removable categories, collapses separator runs to single
// spaces, lowercases, and caps the length.
func cleanQuery(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastSpace := false
	count := 0
	for _, r := range strings.ToLower(s) {
		switch {
		case isRemovable(r):
			continue
		case unicode.In(r, unicode.Z):
			if lastSpace {
				continue
			}
			r = ' '
			lastSpace = true
		default:
			lastSpace = false
		}
		b.WriteRune(r)
		count++
		if count == maxPersistenceQueryLen {
			break
		}
	}
	return b.String()
}

// isRemovable reports whether r is dropped from the persistence query.
// The same set is skipped between matcher units (see matcher.go).
func isRemovable(r rune) bool {
	return r == tatweel || unicode.In(r, unicode.M, unicode.P, unicode.S, unicode.C)
}
