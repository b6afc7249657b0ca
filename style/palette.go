package style

import "github.com/charmbracelet/lipgloss"

// Colors of boxed notices.
var (
	Text        = lipgloss.Color("#cdd6f4")
	AccentColor = lipgloss.Color("#cba6f7")
	ErrorColor  = lipgloss.Color("#f38ba8")
)
