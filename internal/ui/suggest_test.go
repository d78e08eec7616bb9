package ui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qurankit/qurankit/internal/quran"
)

type fakeSource struct {
	suggestions []string
	err         error
	calls       int
}

func (f *fakeSource) Autocomplete(_ context.Context, _ string, _ *quran.Quran) ([]string, error) {
	f.calls++
	return f.suggestions, f.err
}

func newSuggestModel(source SuggestSource) SuggestModel {
	return NewSuggestModel(context.Background(), source, nil, NoColorStyles())
}

func typeRune(t *testing.T, m SuggestModel, r rune) (SuggestModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	out, ok := next.(SuggestModel)
	require.True(t, ok)
	return out, cmd
}

func press(t *testing.T, m SuggestModel, key tea.KeyType) SuggestModel {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: key})
	out, ok := next.(SuggestModel)
	require.True(t, ok)
	return out
}

func TestSuggestModel_TypingFetchesSuggestions(t *testing.T) {
	source := &fakeSource{suggestions: []string{"الحمد", "الحمد لله"}}
	m := newSuggestModel(source)

	m, cmd := typeRune(t, m, 'ا')
	require.NotNil(t, cmd)

	// Run the batched command and feed the resulting messages back in.
	msg := runCmd(cmd)
	sm, found := findSuggestions(msg)
	require.True(t, found)
	assert.Equal(t, 1, sm.seq)

	next, _ := m.Update(sm)
	m = next.(SuggestModel)
	assert.Equal(t, []string{"الحمد", "الحمد لله"}, m.suggestions)
	assert.Equal(t, 1, source.calls)
}

func TestSuggestModel_StaleResultsDropped(t *testing.T) {
	m := newSuggestModel(&fakeSource{})
	m, _ = typeRune(t, m, 'a')
	m, _ = typeRune(t, m, 'b')

	// A response for the first keystroke arrives after the second.
	next, _ := m.Update(suggestionsMsg{seq: 1, suggestions: []string{"stale"}})
	m = next.(SuggestModel)
	assert.Empty(t, m.suggestions)

	next, _ = m.Update(suggestionsMsg{seq: 2, suggestions: []string{"fresh"}})
	m = next.(SuggestModel)
	assert.Equal(t, []string{"fresh"}, m.suggestions)
}

func TestSuggestModel_SelectionAndAccept(t *testing.T) {
	m := newSuggestModel(&fakeSource{})
	m, _ = typeRune(t, m, 'a')
	next, _ := m.Update(suggestionsMsg{seq: 1, suggestions: []string{"first", "second"}})
	m = next.(SuggestModel)

	m = press(t, m, tea.KeyDown)
	m = press(t, m, tea.KeyDown)
	m = press(t, m, tea.KeyEnter)

	choice, ok := m.Choice()
	assert.True(t, ok)
	assert.Equal(t, "second", choice)
}

func TestSuggestModel_EnterAcceptsRawInput(t *testing.T) {
	m := newSuggestModel(&fakeSource{})
	m, _ = typeRune(t, m, 'a')
	next, _ := m.Update(suggestionsMsg{seq: 1, suggestions: []string{"unrelated"}})
	m = next.(SuggestModel)

	// No selection: enter takes the typed text.
	m = press(t, m, tea.KeyEnter)
	choice, ok := m.Choice()
	assert.True(t, ok)
	assert.Equal(t, "a", choice)
}

func TestSuggestModel_EnterOnEmptyInputDoesNotAccept(t *testing.T) {
	m := newSuggestModel(&fakeSource{})
	m = press(t, m, tea.KeyEnter)
	_, ok := m.Choice()
	assert.False(t, ok)
}

func TestSuggestModel_EscCancels(t *testing.T) {
	m := newSuggestModel(&fakeSource{})
	m, _ = typeRune(t, m, 'a')
	m = press(t, m, tea.KeyEsc)
	_, ok := m.Choice()
	assert.False(t, ok)
}

func TestSuggestModel_UpStopsAtRawInput(t *testing.T) {
	m := newSuggestModel(&fakeSource{})
	next, _ := m.Update(suggestionsMsg{seq: 0, suggestions: []string{"only"}})
	m = next.(SuggestModel)

	m = press(t, m, tea.KeyDown)
	assert.Equal(t, 0, m.selected)
	m = press(t, m, tea.KeyUp)
	assert.Equal(t, -1, m.selected)
	m = press(t, m, tea.KeyUp)
	assert.Equal(t, -1, m.selected)
}

func TestSuggestModel_CapsVisibleSuggestions(t *testing.T) {
	many := make([]string, maxVisibleSuggestions+5)
	for i := range many {
		many[i] = "s"
	}
	m := newSuggestModel(&fakeSource{})
	next, _ := m.Update(suggestionsMsg{seq: 0, suggestions: many})
	m = next.(SuggestModel)
	assert.Len(t, m.suggestions, maxVisibleSuggestions)
}

func TestSuggestModel_ViewShowsErrorAndSelection(t *testing.T) {
	m := newSuggestModel(&fakeSource{})
	next, _ := m.Update(suggestionsMsg{seq: 0, suggestions: []string{"first", "second"}, err: errors.New("store offline")})
	m = next.(SuggestModel)
	m = press(t, m, tea.KeyDown)

	view := m.View()
	assert.Contains(t, view, "error: store offline")
	assert.Contains(t, view, "> first")
	assert.Contains(t, view, "  second")
}

// runCmd executes a tea.Cmd synchronously for test purposes.
func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

// findSuggestions digs a suggestionsMsg out of a message, unwrapping
// batches produced by tea.Batch.
func findSuggestions(msg tea.Msg) (suggestionsMsg, bool) {
	switch v := msg.(type) {
	case suggestionsMsg:
		return v, true
	case tea.BatchMsg:
		for _, cmd := range v {
			if sm, ok := findSuggestions(runCmd(cmd)); ok {
				return sm, true
			}
		}
	}
	return suggestionsMsg{}, false
}
