// Package store provides read-only text lookup over a verse corpus.
// One store exists per corpus: the Arabic scripture database plus one
// database per installed translation. The search core only sees the
// TextStore interface; SQLite is an implementation detail.
package store

import (
	"context"

	"github.com/qurankit/qurankit/internal/quran"
)

// VerseText pairs a verse reference with its stored text.
type VerseText struct {
	Ayah quran.AyahNumber
	Text string
}

// TextStore is the text-lookup contract consumed by the search core.
// Autocomplete and Search take a loose LIKE-style query (single-character
// wildcards allowed) and perform a coarse substring filter; precise
// matching is the caller's responsibility.
type TextStore interface {
	// TextForVerse returns the stored text of a single verse.
	TextForVerse(ctx context.Context, v quran.AyahNumber) (string, error)

	// TextForVerses returns the stored text of multiple verses keyed by verse.
	// Missing verses are absent from the result map, not an error.
	TextForVerses(ctx context.Context, vs []quran.AyahNumber) (map[quran.AyahNumber]string, error)

	// Autocomplete returns raw verse texts coarsely matching the loose query.
	Autocomplete(ctx context.Context, loose string) ([]string, error)

	// Search returns verses coarsely matching the loose query.
	Search(ctx context.Context, loose string) ([]VerseText, error)

	// Close releases the underlying resources.
	Close() error
}
