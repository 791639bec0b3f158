// Package style holds the colours and glyphs of the pretty log output.
package style

import "github.com/charmbracelet/lipgloss"

// Level colours.
var (
	ErrorColor = lipgloss.Color("#D93025")
	WarnColor  = lipgloss.Color("#F59E0B")
	InfoColor  = lipgloss.Color("#667085")
	DebugColor = lipgloss.Color("#8B5CF6")
)

// Level glyphs. Info records carry none.
const (
	ErrorIcon = "✗"
	WarnIcon  = "!"
	DebugIcon = "~"
)
