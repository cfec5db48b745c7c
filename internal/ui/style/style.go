// Package style provides the colour palette and icons shared by the logger
// and the CLI summaries.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Elm    = lipgloss.Color("#60B5CC")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "·"
	Arrow   = "→"
)
