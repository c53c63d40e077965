package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/replaysync/replaysync/color"
	"github.com/replaysync/replaysync/style"
)

// statefulKeymap defines the keyboard interactions available within various application states.
type statefulKeymap struct {
	state state

	quit, forceQuit,
	open, confirm, back, acceptSuggestion,
	playPause, stop, sync,
	seekBackward, seekForward,
	volumeUp, volumeDown, mute,
	showHelp key.Binding
}

// setState updates the active keymap configuration to match the specified application state.
func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

// lock enables only the bindings allowed by the transport controls.
func (k *statefulKeymap) lock(c controlsSnapshot) {
	k.open.SetEnabled(!c.locked)
	k.seekBackward.SetEnabled(!c.locked)
	k.seekForward.SetEnabled(!c.locked)
	k.playPause.SetEnabled(c.play || c.pause)
	k.stop.SetEnabled(c.stop)
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		acceptSuggestion: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "accept suggestion"),
		),
		playPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		sync: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp(style.Fg(color.Orange)("y"), style.Fg(color.Orange)("sync")),
		),
		seekBackward: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "rewind"),
		),
		seekForward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "forward"),
		),
		volumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "volume up"),
		),
		volumeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "volume down"),
		),
		mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case idleState:
		return to2(h(k.open, k.quit))
	case openState:
		return to2(h(k.confirm, k.acceptSuggestion, k.back))
	case playerState:
		return h(k.sync, k.playPause, k.volumeUp, k.volumeDown, k.showHelp),
			h(k.sync, k.playPause, k.stop, k.seekBackward, k.seekForward, k.volumeUp, k.volumeDown, k.mute, k.open, k.quit)
	case errorState:
		return to2(h(k.back, k.quit))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}
