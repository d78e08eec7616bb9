// Package search implements the composite scripture search engine: query
// normalization, variant-insensitive matching, independent strategy searchers
// (number, sura, scripture text, translations), and deterministic merging.
// Every call is self-contained; the package holds no cross-call state.
package search

import (
	"fmt"

	"github.com/qurankit/qurankit/internal/quran"
	"github.com/qurankit/qurankit/internal/translation"
)

// Range is a half-open [Start, End) byte offset interval within a result's
// text. Ranges within a result are ordered and non-overlapping.
type Range struct {
	Start int
	End   int
}

// Result is a single matched line of text.
type Result struct {
	// Text is the full line the match was found in.
	Text string
	// Ranges are the matched offsets within Text. Empty for reference-style
	// results (number lookups) that carry no text match.
	Ranges []Range
	// Ayah is the verse the text belongs to.
	Ayah quran.AyahNumber
}

// SourceKind discriminates the Source variants.
type SourceKind int

const (
	// SourceQuran marks results from the Arabic scripture corpus.
	SourceQuran SourceKind = iota
	// SourceTranslation marks results from one installed translation.
	SourceTranslation
)

// Source tags a result group with its corpus. It is a two-variant sum:
// Quran carries no payload; Translation carries the translation identity.
type Source struct {
	Kind        SourceKind
	Translation translation.Info // zero unless Kind == SourceTranslation
}

// QuranSource returns the scripture source.
func QuranSource() Source {
	return Source{Kind: SourceQuran}
}

// TranslationSource returns a source for one installed translation.
func TranslationSource(info translation.Info) Source {
	return Source{Kind: SourceTranslation, Translation: info}
}

// Key returns the stable grouping key for the source.
func (s Source) Key() string {
	if s.Kind == SourceQuran {
		return "quran"
	}
	return fmt.Sprintf("translation:%d", s.Translation.ID)
}

// Name returns a display name for the source.
func (s Source) Name() string {
	if s.Kind == SourceQuran {
		return "Quran"
	}
	return s.Translation.Name
}

// less implements the total source ordering: scripture first, then
// translations by ascending ID.
func (s Source) less(o Source) bool {
	if s.Kind != o.Kind {
		return s.Kind == SourceQuran
	}
	return s.Translation.ID < o.Translation.ID
}

// Results is an ordered list of results from one source.
type Results struct {
	Source Source
	Items  []Result
}
