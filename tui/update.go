package tui

import (
	"fmt"
	"strings"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/replaysync/replaysync/history"
	"github.com/replaysync/replaysync/internal/ui"
	"github.com/replaysync/replaysync/util"
	"github.com/samber/mo"
)

// Init starts the refresh loop and the sync failure listener, and opens the startup media if any.
func (b *statefulBubble) Init() tea.Cmd {
	cmds := []tea.Cmd{b.waitForSyncFailure(), b.scheduleRefresh()}

	if media, ok := b.options.Media.Get(); ok {
		b.busy = true
		cmds = append(cmds, b.openMedia(media))
	}

	return tea.Batch(cmds...)
}

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = uiCmd
	}

	switch msg := msg.(type) {
	case error:
		b.busy = false
		b.raiseError(msg)
		return b, cmd
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, cmd
	case refreshMsg:
		return b, tea.Batch(cmd, b.sample(), b.scheduleRefresh())
	case sampleMsg:
		muted := b.playback.muted
		b.playback = playback(msg)
		b.playback.muted = muted && b.playback.loaded
		b.controls.follow(msg.playing, msg.positionMs)
		b.refreshKeymap()
		return b, cmd
	case mutedMsg:
		b.playback.muted = bool(msg)
		return b, tea.Batch(cmd, b.sample())
	case syncFailedMsg:
		return b, tea.Batch(cmd, ui.NotifySyncFailure(msg.err), b.waitForSyncFailure())
	case syncToggledMsg:
		b.busy = false
		b.refreshKeymap()
		return b, tea.Batch(cmd, ui.Notify(b.syncNotice(msg.active)), b.sample())
	case mediaOpenedMsg:
		b.busy = false
		b.media = mo.Some(msg.path)
		b.statesHistory = util.Stack[state]{}
		b.setState(playerState)

		cmds := []tea.Cmd{cmd, b.sample()}
		if !b.watchingExit {
			b.watchingExit = true
			cmds = append(cmds, b.waitForMpvExit())
		}
		return b, tea.Batch(cmds...)
	case mpvExitMsg:
		b.watchingExit = false
		b.media = mo.None[string]()
		b.playback = playback{}
		b.statesHistory = util.Stack[state]{}
		b.setState(idleState)

		cmds := []tea.Cmd{cmd, ui.Notify("player closed")}
		if b.controller.Active() {
			b.busy = true
			cmds = append(cmds, b.stopSync())
		}
		return b, tea.Batch(cmds...)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			b.shutdown()
			return b, tea.Quit
		}

		// Input Guard: Ignore keys while a toggle or an open is in flight.
		if b.busy && b.state != errorState {
			return b, cmd
		}
	}

	var stateCmd tea.Cmd
	switch b.state {
	case idleState:
		stateCmd = b.updateIdle(msg)
	case openState:
		stateCmd = b.updateOpen(msg)
	case playerState:
		stateCmd = b.updatePlayer(msg)
	case errorState:
		stateCmd = b.updateError(msg)
	}

	return b, tea.Batch(cmd, stateCmd)
}

func (b *statefulBubble) syncNotice(active bool) string {
	if !active {
		return "sync off"
	}

	session, ok := b.controller.Session()
	if !ok {
		return "sync on"
	}
	return fmt.Sprintf("sync on, offset %+dms", session.TimeDiffMs)
}

func (b *statefulBubble) startOpen() tea.Cmd {
	b.newState(openState)
	b.inputC.SetValue("")
	b.suggestion = mo.None[string]()
	b.inputC.Focus()
	return textinput.Blink
}

func (b *statefulBubble) updateIdle(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			b.shutdown()
			return tea.Quit
		case bubblesKey.Matches(msg, b.keymap.open):
			return b.startOpen()
		}
	}
	return nil
}

func (b *statefulBubble) updateOpen(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.inputC.Blur()
			b.previousState()
			return nil
		case bubblesKey.Matches(msg, b.keymap.confirm):
			path := strings.TrimSpace(b.inputC.Value())
			if path == "" {
				return nil
			}
			b.inputC.Blur()
			b.busy = true
			return b.openMedia(path)
		case bubblesKey.Matches(msg, b.keymap.acceptSuggestion) && b.suggestion.IsPresent():
			b.inputC.SetValue(b.suggestion.MustGet())
			b.inputC.CursorEnd()
			b.suggestion = mo.None[string]()
			return nil
		}
	}

	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)

	if suggestion, ok := history.Suggest(b.inputC.Value()).Get(); ok && suggestion != b.inputC.Value() {
		b.suggestion = mo.Some(suggestion)
	} else {
		b.suggestion = mo.None[string]()
	}

	return cmd
}

func (b *statefulBubble) updatePlayer(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case bubblesKey.Matches(keyMsg, b.keymap.quit):
		b.shutdown()
		return tea.Quit
	case bubblesKey.Matches(keyMsg, b.keymap.sync):
		b.busy = true
		return b.toggleSync()
	case bubblesKey.Matches(keyMsg, b.keymap.open):
		return b.startOpen()
	case bubblesKey.Matches(keyMsg, b.keymap.playPause):
		return b.togglePlay()
	case bubblesKey.Matches(keyMsg, b.keymap.stop):
		return b.stopPlayback()
	case bubblesKey.Matches(keyMsg, b.keymap.seekBackward):
		return b.seek(-b.seekStep)
	case bubblesKey.Matches(keyMsg, b.keymap.seekForward):
		return b.seek(b.seekStep)
	case bubblesKey.Matches(keyMsg, b.keymap.volumeUp):
		return b.changeVolume(volumeStep)
	case bubblesKey.Matches(keyMsg, b.keymap.volumeDown):
		return b.changeVolume(-volumeStep)
	case bubblesKey.Matches(keyMsg, b.keymap.mute):
		return b.toggleMute()
	case bubblesKey.Matches(keyMsg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
	}

	return nil
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			b.shutdown()
			return tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			if b.state == openState {
				b.inputC.Focus()
			}
		}
	}
	return nil
}
