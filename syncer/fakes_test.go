package syncer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/replaysync/replaysync/player"
	"github.com/replaysync/replaysync/spectator"
)

// fakeSource serves a settable status. When gate is set, FetchStatus signals
// entered and blocks until gate is closed, ignoring cancellation.
type fakeSource struct {
	mu      sync.Mutex
	status  spectator.Status
	err     error
	calls   int
	gate    chan struct{}
	entered chan struct{}
}

func (s *fakeSource) FetchStatus(ctx context.Context) (spectator.Status, error) {
	s.mu.Lock()
	s.calls++
	gate, entered := s.gate, s.entered
	s.mu.Unlock()

	if gate != nil {
		select {
		case entered <- struct{}{}:
		default:
		}
		<-gate
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.err
}

func (s *fakeSource) set(status spectator.Status, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status, s.err = status, err
}

func (s *fakeSource) block() (entered <-chan struct{}, release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gate = make(chan struct{})
	s.entered = make(chan struct{}, 1)
	gate := s.gate
	return s.entered, func() { close(gate) }
}

func (s *fakeSource) fetches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// fakeTransport records every mutating call.
type fakeTransport struct {
	mu       sync.Mutex
	playing  bool
	position int
	rate     float64
	calls    []string
	seeks    []int
	rates    []float64
	failRate bool

	// rateDelay stalls SetRate like an mpv that is slow to answer.
	// rateStarted, when set, is signalled as the stall begins.
	rateDelay   time.Duration
	rateStarted chan struct{}
}

var _ player.Transport = (*fakeTransport)(nil)

func (t *fakeTransport) record(call string) {
	t.calls = append(t.calls, call)
}

func (t *fakeTransport) Open(string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("open")
	return nil
}

func (t *fakeTransport) Position() (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.position, nil
}

func (t *fakeTransport) SetPosition(ms int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("seek")
	t.seeks = append(t.seeks, ms)
	t.position = ms
	return nil
}

func (t *fakeTransport) Length() (int, error) { return 120000, nil }

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

func (t *fakeTransport) SetRate(rate float64) error {
	t.mu.Lock()
	delay, started := t.rateDelay, t.rateStarted
	t.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	time.Sleep(delay)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("rate")
	if t.failRate {
		return &player.CommandError{Op: "set rate", Err: errors.New("boom")}
	}
	t.rates = append(t.rates, rate)
	t.rate = rate
	return nil
}

func (t *fakeTransport) Rate() (float64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rate, nil
}

func (t *fakeTransport) Volume() (int, error)      { return 50, nil }
func (t *fakeTransport) SetVolume(int) error       { return nil }
func (t *fakeTransport) ToggleMute() (bool, error) { return false, nil }
func (t *fakeTransport) IsRunning() bool           { return true }
func (t *fakeTransport) Close() error              { return nil }
func (t *fakeTransport) Wait() <-chan struct{}     { return nil }

func (t *fakeTransport) stallRate(delay time.Duration) <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rateDelay = delay
	t.rateStarted = make(chan struct{}, 1)
	return t.rateStarted
}

func (t *fakeTransport) history() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.calls...)
}

func (t *fakeTransport) isPlaying() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.playing
}

// fakeControls records lock and unlock notifications.
type fakeControls struct {
	mu       sync.Mutex
	disabled int
	enabled  int
	last     TransportState
}

func (c *fakeControls) DisableTransport() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disabled++
}

func (c *fakeControls) EnableTransport(state TransportState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled++
	c.last = state
}

func (c *fakeControls) counts() (disabled, enabled int, last TransportState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disabled, c.enabled, c.last
}

// eventually polls cond until it holds or the timeout elapses.
func eventually(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(2 * time.Millisecond)
	}
	return cond()
}
