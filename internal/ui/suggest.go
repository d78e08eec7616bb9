package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/qurankit/qurankit/internal/quran"
)

// maxVisibleSuggestions caps the suggestion list height.
const maxVisibleSuggestions = 10

// SuggestSource produces completions for a partial query.
type SuggestSource interface {
	Autocomplete(ctx context.Context, raw string, q *quran.Quran) ([]string, error)
}

// suggestionsMsg carries fetched completions back into the model, tagged
// with the fetch sequence so stale responses are dropped.
type suggestionsMsg struct {
	seq         int
	suggestions []string
	err         error
}

// SuggestModel is the bubbletea model for the interactive suggest prompt.
// Typing refreshes the completion list; enter accepts the highlighted
// suggestion (or the raw input when nothing is highlighted).
type SuggestModel struct {
	input  textinput.Model
	styles Styles
	source SuggestSource
	quran  *quran.Quran
	ctx    context.Context

	seq         int
	suggestions []string
	selected    int // -1 means the raw input is selected
	err         error

	choice   string
	accepted bool
	quitting bool
}

// NewSuggestModel creates the suggest prompt model.
func NewSuggestModel(ctx context.Context, source SuggestSource, q *quran.Quran, styles Styles) SuggestModel {
	ti := textinput.New()
	ti.Placeholder = "Search the Quran..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	return SuggestModel{
		input:    ti,
		styles:   styles,
		source:   source,
		quran:    q,
		ctx:      ctx,
		selected: -1,
	}
}

// Choice returns the accepted query and whether the prompt was accepted
// rather than canceled.
func (m SuggestModel) Choice() (string, bool) {
	return m.choice, m.accepted
}

// Init implements tea.Model.
func (m SuggestModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m SuggestModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			if m.selected >= 0 && m.selected < len(m.suggestions) {
				m.choice = m.suggestions[m.selected]
			} else {
				m.choice = strings.TrimSpace(m.input.Value())
			}
			if m.choice != "" {
				m.accepted = true
			}
			m.quitting = true
			return m, tea.Quit

		case "up":
			if m.selected > -1 {
				m.selected--
			}
			return m, nil

		case "down":
			if m.selected < len(m.suggestions)-1 {
				m.selected++
			}
			return m, nil
		}

		// Any other key edits the query and refreshes completions.
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.selected = -1
		m.seq++
		return m, tea.Batch(cmd, m.fetch(m.seq, m.input.Value()))

	case suggestionsMsg:
		if msg.seq != m.seq {
			return m, nil // stale fetch
		}
		m.err = msg.err
		m.suggestions = msg.suggestions
		if len(m.suggestions) > maxVisibleSuggestions {
			m.suggestions = m.suggestions[:maxVisibleSuggestions]
		}
		if m.selected >= len(m.suggestions) {
			m.selected = len(m.suggestions) - 1
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// fetch returns a command that loads completions for the current input.
func (m SuggestModel) fetch(seq int, raw string) tea.Cmd {
	source, q, ctx := m.source, m.quran, m.ctx
	return func() tea.Msg {
		suggestions, err := source.Autocomplete(ctx, raw, q)
		return suggestionsMsg{seq: seq, suggestions: suggestions, err: err}
	}
}

// View implements tea.Model.
func (m SuggestModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Prompt.Render("Search: "))
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n")
	}

	for i, s := range m.suggestions {
		if i == m.selected {
			b.WriteString(m.styles.Selected.Render("> " + s))
		} else {
			b.WriteString(m.styles.Suggestion.Render("  " + s))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Dim.Render("enter accept · ↑/↓ select · esc cancel"))
	b.WriteString("\n")
	return b.String()
}

// RunSuggest runs the interactive prompt and returns the accepted query.
// ok is false when the user canceled.
func RunSuggest(ctx context.Context, source SuggestSource, q *quran.Quran, styles Styles) (query string, ok bool, err error) {
	model := NewSuggestModel(ctx, source, q, styles)
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return "", false, err
	}
	m, isModel := final.(SuggestModel)
	if !isModel {
		return "", false, fmt.Errorf("unexpected model type %T", final)
	}
	query, ok = m.Choice()
	return query, ok, nil
}
