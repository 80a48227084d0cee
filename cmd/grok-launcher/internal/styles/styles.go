// Package styles holds the lipgloss styles used to print result items.
package styles

import "github.com/charmbracelet/lipgloss"

// GitHub terminal light theme palette.
var (
	ColorFg      = lipgloss.Color("#24292f") // primary foreground
	ColorMuted   = lipgloss.Color("#656d76") // muted/dim text
	ColorAccent  = lipgloss.Color("#0969da") // accent blue
	ColorError   = lipgloss.Color("#cf222e") // error red
	ColorSuccess = lipgloss.Color("#1a7f37") // success green
)

var (
	// Item titles.
	ResponseTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	PlaceholderTitleStyle = lipgloss.NewStyle().Italic(true).Foreground(ColorMuted)
	ErrorTitleStyle       = lipgloss.NewStyle().Bold(true).Foreground(ColorError)

	// Item body, indented under the title.
	DescriptionStyle = lipgloss.NewStyle().Foreground(ColorFg).PaddingLeft(2)

	// Action hints.
	HintStyle = lipgloss.NewStyle().Foreground(ColorSuccess).PaddingLeft(2)

	// Key/value listing of the prefs command.
	KeyStyle = lipgloss.NewStyle().Bold(true)
	DimStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Bullet prefixes each item title.
const Bullet = "● "
