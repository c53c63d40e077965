package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/replaysync/replaysync/internal/ui"
	"github.com/replaysync/replaysync/player"
	"github.com/replaysync/replaysync/spectator"
	"github.com/replaysync/replaysync/syncer"
	"github.com/replaysync/replaysync/util"
	"github.com/samber/mo"
)

// syncController is the part of *syncer.Controller the UI drives.
type syncController interface {
	Toggle(ctx context.Context) error
	Stop() bool
	Active() bool
	Session() (syncer.Session, bool)
	LastStatus() (spectator.Status, bool)
	Errors() <-chan error
	Shutdown()
}

// playback is the last transport sample shown by the player view.
type playback struct {
	running    bool
	loaded     bool
	playing    bool
	positionMs int
	lengthMs   int
	volume     int
	muted      bool
}

// statefulBubble is the root bubbletea model.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	busy          bool

	keymap *statefulKeymap

	inputC    textinput.Model
	progressC progress.Model
	helpC     help.Model

	transport  player.Transport
	controller syncController
	controls   *transportControls

	media        mo.Option[string]
	suggestion   mo.Option[string]
	playback     playback
	watchingExit bool
	lastError    error

	refreshInterval time.Duration
	seekStep        time.Duration
	saveHistory     bool

	width, height int
	notifier      *ui.Model

	options *Options
}

// raiseError dispatches a terminal error and transitions the application to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

// setState performs a synchronous transition of both the application workflow and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState transitions to s, remembering the current state for back navigation.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if b.state != errorState {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

// previousState restores the application to its immediate predecessor in the navigation stack.
func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		s := b.statesHistory.Pop()
		b.setState(s)
	}
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y

	b.progressC.Width = b.width
	b.inputC.Width = b.width
	b.helpC.Width = b.width
}

// refreshKeymap enables the bindings the transport controls currently allow.
func (b *statefulBubble) refreshKeymap() {
	b.keymap.lock(b.controls.snapshot())
	b.keymap.sync.SetEnabled(b.playback.loaded)
}

func newBubble(options *Options, deps dependencies) *statefulBubble {
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        newStatefulKeymap(),

		transport:  deps.transport,
		controller: deps.controller,
		controls:   deps.controls,

		refreshInterval: deps.refreshInterval,
		seekStep:        deps.seekStep,
		saveHistory:     deps.saveHistory,

		notifier: &ui.Model{},
		options:  options,
	}

	bubble.helpC = help.New()

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = "/path/to/commentary.ogg"
	bubble.inputC.Prompt = "File: "

	bubble.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.setState(idleState)
	bubble.refreshKeymap()

	return &bubble
}
