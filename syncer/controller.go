// Package syncer keeps the local transport in lock-step with the spectator replay timeline.
//
// A Controller is either idle or syncing. Turning sync on takes one remote
// sample, anchors the offset between the local and remote clocks and starts a
// poll goroutine. Each tick mirrors the remote pause state and speed onto the
// transport and jumps to the anchored position only when the remote side
// seeks.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/replaysync/replaysync/log"
	"github.com/replaysync/replaysync/player"
	"github.com/replaysync/replaysync/spectator"
	"github.com/samber/mo"
)

// DefaultInterval is the poll cadence used when Options.Interval is zero.
const DefaultInterval = 100 * time.Millisecond

// errStale marks a tick whose session ended while it was in flight.
var errStale = errors.New("stale tick")

// StatusSource samples the remote timeline. *spectator.Client implements it.
type StatusSource interface {
	FetchStatus(ctx context.Context) (spectator.Status, error)
}

// TransportState is the transport snapshot handed back to the UI when sync turns off.
type TransportState struct {
	Playing    bool
	PositionMs int
}

// Controls is the UI capability the controller needs: locking out every
// transport control except volume while a session runs.
type Controls interface {
	DisableTransport()
	EnableTransport(state TransportState)
}

type noControls struct{}

func (noControls) DisableTransport()              {}
func (noControls) EnableTransport(TransportState) {}

// Options configures a Controller.
type Options struct {
	// Interval between ticks. Defaults to DefaultInterval.
	Interval time.Duration

	// Controls is notified on session start and end. Optional.
	Controls Controls

	// Now is the clock used to stamp sessions. Defaults to time.Now.
	Now func() time.Time
}

// Controller owns the sync session and its poll task.
type Controller struct {
	source    StatusSource
	transport player.Transport
	controls  Controls
	interval  time.Duration
	now       func() time.Time
	errs      chan error

	// toggleMu serialises Toggle, Stop and Shutdown.
	toggleMu sync.Mutex

	// applyMu is held while a tick mutates the transport. stop takes it once
	// the session is cleared, so a correction already past its stale check
	// finishes before stop returns.
	applyMu sync.Mutex

	// mu guards the fields below. It is never held across transport I/O.
	mu         sync.Mutex
	session    mo.Option[*Session]
	poll       *pollTask
	lastStatus mo.Option[spectator.Status]
}

// New creates an idle controller.
func New(source StatusSource, transport player.Transport, options Options) *Controller {
	c := &Controller{
		source:    source,
		transport: transport,
		controls:  options.Controls,
		interval:  options.Interval,
		now:       options.Now,
		errs:      make(chan error, 1),
	}

	if c.controls == nil {
		c.controls = noControls{}
	}
	if c.interval <= 0 {
		c.interval = DefaultInterval
	}
	if c.now == nil {
		c.now = time.Now
	}

	return c
}

// Toggle turns sync on when idle and off when syncing.
//
// Turning on blocks for one remote poll. If it fails the controller stays
// idle and an *InitialPollError is returned. Turning off returns only after
// the poll task has exited; no tick of the old session touches the transport
// afterwards.
func (c *Controller) Toggle(ctx context.Context) error {
	c.toggleMu.Lock()
	defer c.toggleMu.Unlock()

	if c.Active() {
		c.disable()
		return nil
	}

	return c.start(ctx)
}

// Stop turns sync off if it is on and reports whether a session was ended.
// Unlike Toggle it never starts a session.
func (c *Controller) Stop() bool {
	c.toggleMu.Lock()
	defer c.toggleMu.Unlock()

	if !c.Active() {
		return false
	}
	c.disable()
	return true
}

// disable ends the session and hands the transport back to the UI. Callers hold toggleMu.
func (c *Controller) disable() {
	c.stop()
	c.controls.EnableTransport(c.transportState())
}

func (c *Controller) start(ctx context.Context) error {
	status, err := c.source.FetchStatus(ctx)
	if err != nil {
		return &InitialPollError{Err: err}
	}

	local, err := c.transport.Position()
	if err != nil {
		return &InitialPollError{Err: fmt.Errorf("read local position: %w", err)}
	}

	session := newSession(status.TimeMs(), local, c.now())
	task := newPollTask()

	c.mu.Lock()
	c.session = mo.Some(session)
	c.lastStatus = mo.Some(status)
	c.poll = task
	c.mu.Unlock()

	c.controls.DisableTransport()
	go c.run(task)

	log.WithFields(log.Fields{
		"spectator_ms": session.SpectatorTimeMs,
		"audio_ms":     session.AudioTimeMs,
		"diff_ms":      session.TimeDiffMs,
		"interval":     c.interval,
	}).Info("sync started")

	return nil
}

// stop detaches the session and waits for its poll task. Callers hold toggleMu.
func (c *Controller) stop() {
	c.mu.Lock()
	task := c.poll
	c.poll = nil
	c.session = mo.None[*Session]()
	c.lastStatus = mo.None[spectator.Status]()
	if task != nil {
		task.cancel()
	}
	c.mu.Unlock()

	// wait out a correction that passed its stale check before the clear
	c.applyMu.Lock()
	c.applyMu.Unlock() //nolint:staticcheck

	if task != nil {
		task.stop()
	}

	log.Info("sync stopped")
}

// Shutdown cancels an active session's poll task. It is safe to call when idle
// and more than once. Controls are left untouched.
func (c *Controller) Shutdown() {
	c.toggleMu.Lock()
	defer c.toggleMu.Unlock()

	if c.Active() {
		c.stop()
	}
}

// Active reports whether a session is running.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.IsPresent()
}

// Session returns a copy of the active session.
func (c *Controller) Session() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.session.Get()
	if !ok {
		return Session{}, false
	}
	return *s, true
}

// TimeDiffMs returns the active session's offset. It panics when idle.
func (c *Controller) TimeDiffMs() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.MustGet().TimeDiffMs
}

// LastStatus returns the most recent remote sample of the active session.
func (c *Controller) LastStatus() (spectator.Status, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastStatus.Get()
}

// Errors delivers tick failures. Only the latest undelivered one is kept.
func (c *Controller) Errors() <-chan error {
	return c.errs
}

// Tick runs one poll-and-correct cycle for the active session outside the
// schedule. It returns ErrNotSyncing when idle.
func (c *Controller) Tick(ctx context.Context) error {
	c.mu.Lock()
	task := c.poll
	c.mu.Unlock()

	if task == nil {
		return ErrNotSyncing
	}

	err := c.tick(ctx, task)
	if errors.Is(err, errStale) {
		return ErrNotSyncing
	}
	return err
}

func (c *Controller) run(task *pollTask) {
	defer close(task.done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-task.ctx.Done():
			return
		case <-ticker.C:
		}

		err := c.tick(task.ctx, task)
		if err == nil || errors.Is(err, errStale) || task.ctx.Err() != nil {
			continue
		}
		c.report(err)
	}
}

// tick fetches without any controller lock, then applies under applyMu only
// if task is still the current one.
func (c *Controller) tick(ctx context.Context, task *pollTask) error {
	task.tickMu.Lock()
	defer task.tickMu.Unlock()

	status, err := c.source.FetchStatus(ctx)
	if err != nil {
		return fmt.Errorf("poll: %w", err)
	}

	c.applyMu.Lock()
	defer c.applyMu.Unlock()

	session, ok := c.current(task, status)
	if !ok {
		return errStale
	}
	return c.apply(status, session)
}

// current records status and returns the session if task still owns it.
func (c *Controller) current(task *pollTask, status spectator.Status) (*Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.poll != task || task.ctx.Err() != nil {
		return nil, false
	}

	c.lastStatus = mo.Some(status)
	return c.session.MustGet(), true
}

// apply mirrors one remote sample onto the transport. Every step runs even if
// an earlier one failed; failures are joined.
func (c *Controller) apply(status spectator.Status, session *Session) error {
	var errs []error

	hold := ShouldPause(status)
	playing, err := c.transport.IsPlaying()
	if err != nil {
		errs = append(errs, err)
	} else {
		switch {
		case hold && playing:
			errs = append(errs, c.transport.Pause())
		case !hold && !playing:
			errs = append(errs, c.transport.Play())
		}
	}

	if status.Seeking {
		target := session.Target(status.TimeMs())
		log.Debugf("remote seeking to %dms, moving local transport to %dms", status.TimeMs(), target)
		errs = append(errs, c.transport.SetPosition(target))
	}

	errs = append(errs, c.transport.SetRate(status.Speed))

	return errors.Join(errs...)
}

// report publishes a tick failure without blocking, replacing an undelivered one.
func (c *Controller) report(err error) {
	log.WithFields(log.Fields{"error": err}).Warn("sync tick failed")

	select {
	case c.errs <- err:
		return
	default:
	}

	select {
	case <-c.errs:
	default:
	}

	select {
	case c.errs <- err:
	default:
	}
}

// transportState snapshots the transport for re-enabling UI controls.
func (c *Controller) transportState() TransportState {
	var state TransportState

	if playing, err := c.transport.IsPlaying(); err == nil {
		state.Playing = playing
	}
	if pos, err := c.transport.Position(); err == nil {
		state.PositionMs = pos
	}

	return state
}
