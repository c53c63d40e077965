package tui

import (
	"sync"

	"github.com/replaysync/replaysync/syncer"
)

// transportControls tracks which transport keys are usable. The sync
// controller flips it from its own goroutine while the UI reads it.
type transportControls struct {
	mu    sync.Mutex
	state controlsSnapshot
}

type controlsSnapshot struct {
	locked            bool
	play, pause, stop bool
}

var _ syncer.Controls = (*transportControls)(nil)

func newTransportControls() *transportControls {
	return &transportControls{
		state: controlsSnapshot{play: true, pause: true, stop: true},
	}
}

// DisableTransport leaves only volume and mute usable.
func (c *transportControls) DisableTransport() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = controlsSnapshot{locked: true}
}

// EnableTransport unlocks the controls that make sense for state.
func (c *transportControls) EnableTransport(state syncer.TransportState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = controlsSnapshot{
		play:  !state.Playing,
		pause: state.Playing,
		stop:  state.PositionMs != 0,
	}
}

// follow mirrors the local play state while unlocked.
func (c *transportControls) follow(playing bool, positionMs int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.locked {
		return
	}
	c.state = controlsSnapshot{
		play:  !playing,
		pause: playing,
		stop:  positionMs != 0,
	}
}

func (c *transportControls) snapshot() controlsSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
