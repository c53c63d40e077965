package syncer

import "github.com/replaysync/replaysync/spectator"

// InitialDiff anchors how far the local clock is ahead of the remote clock when sync starts.
func InitialDiff(remoteTimeMs, localTimeMs int) int {
	return localTimeMs - remoteTimeMs
}

// Corrected maps a remote position onto the local timeline.
func Corrected(remoteTimeMs, timeDiffMs int) int {
	return remoteTimeMs + timeDiffMs
}

// ShouldPause reports whether the local transport must be held. The end of
// the replay counts as a pause.
func ShouldPause(status spectator.Status) bool {
	return status.Paused || status.Seeking || status.Ended()
}
