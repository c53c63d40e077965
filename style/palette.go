package style

import "github.com/charmbracelet/lipgloss"

// Colors shared by the TUI views and the CLI boxes.
var (
	Text        = lipgloss.Color("#cdd6f4")
	AccentColor = lipgloss.Color("#cba6f7")
	ErrorColor  = lipgloss.Color("#f38ba8")

	// SyncedColor is used while the track follows the replay.
	SyncedColor = lipgloss.Color("#a6e3a1")
	// HoldingColor is used while the replay is paused, seeking or over.
	HoldingColor = lipgloss.Color("#ffb703")
)
