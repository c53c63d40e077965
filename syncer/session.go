package syncer

import "time"

// Session is the anchor of one sync-enabled period. It is built once from the
// initial poll and never mutated; turning sync off discards it.
type Session struct {
	SpectatorTimeMs int
	AudioTimeMs     int
	TimeDiffMs      int
	StartedAt       time.Time
}

func newSession(spectatorTimeMs, audioTimeMs int, now time.Time) *Session {
	return &Session{
		SpectatorTimeMs: spectatorTimeMs,
		AudioTimeMs:     audioTimeMs,
		TimeDiffMs:      InitialDiff(spectatorTimeMs, audioTimeMs),
		StartedAt:       now,
	}
}

// Target returns the local position matching remoteTimeMs.
func (s *Session) Target(remoteTimeMs int) int {
	return Corrected(remoteTimeMs, s.TimeDiffMs)
}
