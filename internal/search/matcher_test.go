package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, query string) *Matcher {
	t.Helper()
	m, ok := CompileMatcher(query)
	require.True(t, ok)
	return m
}

func TestCompileMatcher_Empty(t *testing.T) {
	_, ok := CompileMatcher("")
	assert.False(t, ok)
}

func TestMatcher_ExactMatch(t *testing.T) {
	m := compile(t, "بسم")

	ranges := m.FindAll("بسم الله")
	require.Len(t, ranges, 1)
	assert.Equal(t, 0, ranges[0].Start)
	assert.Equal(t, len("بسم"), ranges[0].End)
}

func TestMatcher_EquivalenceClassesAreSymmetric(t *testing.T) {
	for _, class := range variantClasses {
		for _, a := range class {
			for _, b := range class {
				m := compile(t, string(a))
				assert.True(t, m.Matches(string(b)),
					"matcher for %q should match %q", string(a), string(b))
			}
		}
	}
}

func TestMatcher_AlefVariants(t *testing.T) {
	// A query typed with bare alef matches text written with hamza forms.
	m := compile(t, "اله")
	assert.True(t, m.Matches("إله"))
	assert.True(t, m.Matches("أله"))

	// Taa marbuta in the query matches haa in the text.
	m = compile(t, "صلاة")
	assert.True(t, m.Matches("صلاه"))
}

func TestMatcher_DiacriticTolerance(t *testing.T) {
	m := compile(t, "بسم")

	// Fully vocalized text still matches; marks sit between the letters.
	ranges := m.FindAll("بِسْمِ")
	require.Len(t, ranges, 1)
	assert.Equal(t, 0, ranges[0].Start)
	// The trailing kasra after the final meem is not consumed.
	assert.Equal(t, len("بِسْم"), ranges[0].End)
}

func TestMatcher_RangesAreValidAndOrdered(t *testing.T) {
	m := compile(t, "الله")
	text := "الله لا إله إلا هو الله"

	ranges := m.FindAll(text)
	require.Len(t, ranges, 2)
	prevEnd := 0
	for _, r := range ranges {
		assert.GreaterOrEqual(t, r.Start, prevEnd)
		assert.Less(t, r.Start, r.End)
		assert.LessOrEqual(t, r.End, len(text))
		prevEnd = r.End
	}
}

func TestMatcher_CaseInsensitive(t *testing.T) {
	m := compile(t, "baqarah")
	ranges := m.FindAll("Al-Baqarah")
	require.Len(t, ranges, 1)
	assert.Equal(t, "Baqarah", "Al-Baqarah"[ranges[0].Start:ranges[0].End])
}

func TestMatcher_SkipsPunctuationBetweenLetters(t *testing.T) {
	// Regex-special characters in the query match literally, and stray
	// punctuation inside the candidate does not break the match.
	m := compile(t, "ab")
	assert.True(t, m.Matches("a-b"))
	assert.True(t, m.Matches("a.b"))
	assert.False(t, m.Matches("a b")) // space is a separator, not skippable
}

func TestMatcher_NonOverlapping(t *testing.T) {
	m := compile(t, "aa")
	ranges := m.FindAll("aaaa")
	require.Len(t, ranges, 2)
	assert.Equal(t, Range{0, 2}, ranges[0])
	assert.Equal(t, Range{2, 4}, ranges[1])
}

func TestMatcher_SimilarityStripped(t *testing.T) {
	m := compile(t, "تهليل")
	// Anchors ت and ه become single-character wildcards.
	assert.Equal(t, "__ليل", m.SimilarityStripped())

	m = compile(t, "quran")
	assert.Equal(t, "quran", m.SimilarityStripped())
}
