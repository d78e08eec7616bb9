package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/qurankit/qurankit/internal/search"
)

// Printer renders search output to a terminal or pipe.
type Printer struct {
	w      io.Writer
	styles Styles
}

// NewPrinter creates a printer writing to w, styled when w supports color.
func NewPrinter(w io.Writer, noColor bool) *Printer {
	return &Printer{
		w:      w,
		styles: GetStyles(!UseColor(w, noColor)),
	}
}

// Results renders the grouped search results: one heading per source, then
// its items with verse references and highlighted match ranges.
func (p *Printer) Results(results []search.Results) {
	if len(results) == 0 {
		fmt.Fprintln(p.w, p.styles.Dim.Render("no results"))
		return
	}

	for i, group := range results {
		if i > 0 {
			fmt.Fprintln(p.w)
		}
		fmt.Fprintln(p.w, p.styles.Source.Render(group.Source.Name())+" "+
			p.styles.Dim.Render(fmt.Sprintf("(%d)", len(group.Items))))

		for _, item := range group.Items {
			ref := fmt.Sprintf("%d:%d", item.Ayah.Sura, item.Ayah.Ayah)
			fmt.Fprintf(p.w, "  %s  %s\n",
				p.styles.Ref.Render(ref),
				p.highlight(item.Text, item.Ranges))
		}
	}
}

// Suggestions renders an autocomplete list, one suggestion per line.
func (p *Printer) Suggestions(suggestions []string) {
	if len(suggestions) == 0 {
		fmt.Fprintln(p.w, p.styles.Dim.Render("no suggestions"))
		return
	}
	for _, s := range suggestions {
		fmt.Fprintln(p.w, p.styles.Suggestion.Render(s))
	}
}

// Error renders an error line.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.w, p.styles.Error.Render(msg))
}

// highlight splices the match style into text at the given byte ranges.
// Ranges are assumed ordered and non-overlapping; out-of-bounds ranges are
// skipped rather than panicking on malformed input.
func (p *Printer) highlight(text string, ranges []search.Range) string {
	if len(ranges) == 0 {
		return p.styles.Text.Render(text)
	}

	var b strings.Builder
	last := 0
	for _, r := range ranges {
		if r.Start < last || r.End > len(text) || r.Start >= r.End {
			continue
		}
		if r.Start > last {
			b.WriteString(p.styles.Text.Render(text[last:r.Start]))
		}
		b.WriteString(p.styles.Match.Render(text[r.Start:r.End]))
		last = r.End
	}
	if last < len(text) {
		b.WriteString(p.styles.Text.Render(text[last:]))
	}
	return b.String()
}
