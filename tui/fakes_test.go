package tui

import (
	"context"
	"sync"

	"github.com/replaysync/replaysync/player"
	"github.com/replaysync/replaysync/spectator"
	"github.com/replaysync/replaysync/syncer"
)

type fakeTransport struct {
	mu       sync.Mutex
	running  bool
	playing  bool
	position int
	volume   int
	muted    bool
	opened   []string
	closed   int
	exited   chan struct{}
	calls    []string
}

var _ player.Transport = (*fakeTransport)(nil)

func newFakeTransport() *fakeTransport {
	return &fakeTransport{volume: 50, exited: make(chan struct{})}
}

func (t *fakeTransport) record(call string) {
	t.calls = append(t.calls, call)
}

func (t *fakeTransport) Open(path string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("open")
	t.opened = append(t.opened, path)
	t.running = true
	t.playing = true
	return nil
}

func (t *fakeTransport) Position() (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return 0, player.ErrNoMedia
	}
	return t.position, nil
}

func (t *fakeTransport) SetPosition(ms int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("seek")
	t.position = ms
	return nil
}

func (t *fakeTransport) Length() (int, error) { return 60000, nil }

func (t *fakeTransport) Play() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("play")
	t.playing = true
	return nil
}

func (t *fakeTransport) Pause() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("pause")
	t.playing = false
	return nil
}

func (t *fakeTransport) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("stop")
	t.playing = false
	t.position = 0
	return nil
}

func (t *fakeTransport) IsPlaying() (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.playing, nil
}

func (t *fakeTransport) SetRate(float64) error  { return nil }
func (t *fakeTransport) Rate() (float64, error) { return 1, nil }

func (t *fakeTransport) Volume() (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.volume, nil
}

func (t *fakeTransport) SetVolume(volume int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("volume")
	t.volume = volume
	return nil
}

func (t *fakeTransport) ToggleMute() (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.muted = !t.muted
	return t.muted, nil
}

func (t *fakeTransport) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *fakeTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed++
	t.running = false
	return nil
}

func (t *fakeTransport) Wait() <-chan struct{} { return t.exited }

func (t *fakeTransport) history() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.calls...)
}

// fakeController toggles between idle and syncing without polling anything.
type fakeController struct {
	mu        sync.Mutex
	controls  syncer.Controls
	session   *syncer.Session
	toggleErr error
	toggles   int
	stops     int
	shutdowns int
	errs      chan error
}

func newFakeController(controls syncer.Controls) *fakeController {
	return &fakeController{controls: controls, errs: make(chan error, 1)}
}

func (c *fakeController) Toggle(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toggles++

	if c.toggleErr != nil {
		return &syncer.InitialPollError{Err: c.toggleErr}
	}

	if c.session != nil {
		c.session = nil
		c.controls.EnableTransport(syncer.TransportState{Playing: true, PositionMs: 1000})
		return nil
	}

	c.session = &syncer.Session{SpectatorTimeMs: 1000, AudioTimeMs: 1250, TimeDiffMs: 250}
	c.controls.DisableTransport()
	return nil
}

func (c *fakeController) Stop() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stops++

	if c.session == nil {
		return false
	}
	c.session = nil
	c.controls.EnableTransport(syncer.TransportState{})
	return true
}

func (c *fakeController) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != nil
}

func (c *fakeController) Session() (syncer.Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return syncer.Session{}, false
	}
	return *c.session, true
}

func (c *fakeController) LastStatus() (spectator.Status, bool) {
	if !c.Active() {
		return spectator.Status{}, false
	}
	return spectator.Status{Time: 1.0, Length: 60.0, Speed: 1.0}, true
}

func (c *fakeController) Errors() <-chan error { return c.errs }

func (c *fakeController) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shutdowns++
	c.session = nil
}
