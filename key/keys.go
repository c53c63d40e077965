// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Synchronization - these keys govern how the spectator timeline is polled and followed.
const (
	SyncEndpoint   = "sync.endpoint"
	SyncIntervalMs = "sync.interval_ms"
	SyncTimeoutMs  = "sync.timeout_ms"
)

// Media Playback - these keys configure the local mpv transport.
const (
	PlayerBinary = "player.binary"
	PlayerVolume = "player.volume"
)

// Terminal User Interface (TUI) - these keys define refresh cadence and navigation steps.
const (
	TUIRefreshIntervalMs = "tui.refresh_interval_ms"
	TUISeekStepMs        = "tui.seek_step_ms"
)

// History Tracking - these keys configure the persistence of the last opened media.
const (
	HistorySave = "history.save"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored = "cli.colored"
)
