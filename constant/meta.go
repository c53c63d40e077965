// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// App is the canonical application identifier used for filesystem paths and CLI branding.
	App = "replaysync"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is the HTTP User-Agent sent to the spectator status endpoint.
	UserAgent = App + "/" + Version
)

// Build metadata, overridden at link time with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// DefaultEndpoint is the replay playback resource exposed by the game client on loopback.
const DefaultEndpoint = "https://127.0.0.1:2999/replay/playback"
