package ui

import "github.com/charmbracelet/lipgloss"

// Color palette - single lime accent over grays.
const (
	ColorLime     = "154" // Primary accent - match highlights, headers
	ColorLimeDim  = "106" // Dimmed lime for selection markers
	ColorWhite    = "255" // Important text
	ColorGray     = "245" // Secondary text, verse references
	ColorDarkGray = "238" // Separators
	ColorRed      = "196" // Errors
)

// Styles holds all UI styles for terminal rendering.
type Styles struct {
	Source     lipgloss.Style // corpus heading (Quran / translation name)
	Ref        lipgloss.Style // verse reference like 2:255
	Match      lipgloss.Style // highlighted match range inside a verse
	Text       lipgloss.Style // surrounding verse text
	Dim        lipgloss.Style // counts, separators
	Error      lipgloss.Style
	Prompt     lipgloss.Style // suggest prompt label
	Suggestion lipgloss.Style
	Selected   lipgloss.Style // selected suggestion row
}

// DefaultStyles returns styled components for color-capable terminals.
func DefaultStyles() Styles {
	return Styles{
		Source:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLime)),
		Ref:        lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Match:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLime)),
		Text:       lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWhite)),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Prompt:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLime)),
		Suggestion: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Selected:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLimeDim)),
	}
}

// NoColorStyles returns unstyled components for plain mode.
func NoColorStyles() Styles {
	return Styles{
		Source:     lipgloss.NewStyle(),
		Ref:        lipgloss.NewStyle(),
		Match:      lipgloss.NewStyle(),
		Text:       lipgloss.NewStyle(),
		Dim:        lipgloss.NewStyle(),
		Error:      lipgloss.NewStyle(),
		Prompt:     lipgloss.NewStyle(),
		Suggestion: lipgloss.NewStyle(),
		Selected:   lipgloss.NewStyle(),
	}
}

// GetStyles returns the appropriate styles based on color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}
