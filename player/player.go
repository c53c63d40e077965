// Package player defines the local media transport used to play the recorded track.
// The primary implementation drives 'mpv' through its JSON-IPC interface.
package player

import "fmt"

// Transport is an opaque local playback device. Positions and lengths are in milliseconds.
// Every call is synchronous; failures are reported as *CommandError.
type Transport interface {
	// Open loads the media file at path and starts playing it.
	Open(path string) error

	// Position retrieves the current playback position.
	Position() (int, error)

	// SetPosition moves playback to an absolute position.
	SetPosition(ms int) error

	// Length retrieves the duration of the loaded media.
	Length() (int, error)

	// Play resumes playback.
	Play() error

	// Pause suspends playback, keeping the position.
	Pause() error

	// Stop suspends playback and rewinds to the beginning, keeping the media loaded.
	Stop() error

	// IsPlaying reports whether media is loaded and not paused.
	IsPlaying() (bool, error)

	// SetRate changes the playback speed multiplier.
	SetRate(rate float64) error

	// Rate retrieves the playback speed multiplier.
	Rate() (float64, error)

	// Volume retrieves the volume in the range 0-100.
	Volume() (int, error)

	// SetVolume changes the volume in the range 0-100.
	SetVolume(volume int) error

	// ToggleMute flips the mute flag and returns the new value.
	ToggleMute() (bool, error)

	// IsRunning validates the liveness of the underlying playback process.
	IsRunning() bool

	// Close terminates the playback engine and releases all associated system resources.
	Close() error

	// Wait returns a channel that is closed when the playback process exits.
	Wait() <-chan struct{}
}

// CommandError reports a failed transport command.
type CommandError struct {
	Op  string
	Err error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("player %s: %v", e.Op, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// wrap turns err into a *CommandError for op; nil stays nil.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &CommandError{Op: op, Err: err}
}
