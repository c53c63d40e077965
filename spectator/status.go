// Package spectator implements the client for the game client's replay playback API.
package spectator

import "math"

// Status is one sample of the remote replay timeline. Times are in seconds.
type Status struct {
	Paused  bool    `json:"paused" jsonschema:"description=Replay playback is paused"`
	Seeking bool    `json:"seeking" jsonschema:"description=The spectator is scrubbing the timeline"`
	Time    float64 `json:"time" jsonschema:"description=Elapsed replay time in seconds"`
	Length  float64 `json:"length" jsonschema:"description=Total replay length in seconds"`
	Speed   float64 `json:"speed" jsonschema:"description=Playback speed multiplier"`
}

// TimeMs returns the remote position in whole milliseconds.
func (s Status) TimeMs() int {
	return int(math.Round(s.Time * 1000))
}

// LengthMs returns the remote length in whole milliseconds.
func (s Status) LengthMs() int {
	return int(math.Round(s.Length * 1000))
}

// Ended reports whether the replay reached its end.
func (s Status) Ended() bool {
	return s.Length <= s.Time
}
