// Package formatter renders records for terminal output.
package formatter

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/rotina/internal/domain"
)

var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorPink   = lipgloss.Color("#d3869b")
	ColorTeal   = lipgloss.Color("#689d6a")
	ColorIndigo = lipgloss.Color("#b16286")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)

	// StyleCard frames one side of a conflict prompt.
	StyleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDim).
			Padding(0, 2)
)

// tagStyles maps the record color tags to terminal styles.
var tagStyles = map[domain.ColorTag]lipgloss.Style{
	"blue":   lipgloss.NewStyle().Foreground(ColorBlue),
	"green":  lipgloss.NewStyle().Foreground(ColorGreen),
	"purple": lipgloss.NewStyle().Foreground(ColorPurple),
	"pink":   lipgloss.NewStyle().Foreground(ColorPink),
	"yellow": lipgloss.NewStyle().Foreground(ColorYellow),
	"indigo": lipgloss.NewStyle().Foreground(ColorIndigo),
	"red":    lipgloss.NewStyle().Foreground(ColorRed),
	"teal":   lipgloss.NewStyle().Foreground(ColorTeal),
}

// TagStyle returns the style for a record's color tag.
func TagStyle(c domain.ColorTag) lipgloss.Style {
	if s, ok := tagStyles[c]; ok {
		return s
	}
	return StyleDim
}
