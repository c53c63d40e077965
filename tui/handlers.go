package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/replaysync/replaysync/filesystem"
	"github.com/replaysync/replaysync/history"
	"github.com/replaysync/replaysync/log"
	"github.com/replaysync/replaysync/player"
	"github.com/replaysync/replaysync/util"
)

type (
	refreshMsg     struct{}
	sampleMsg      playback
	mutedMsg       bool
	mpvExitMsg     struct{}
	mediaOpenedMsg struct{ path string }
	syncToggledMsg struct{ active bool }
	syncFailedMsg  struct{ err error }
)

const volumeStep = 5

func (b *statefulBubble) scheduleRefresh() tea.Cmd {
	return tea.Tick(b.refreshInterval, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

// sample reads the transport off the UI goroutine.
func (b *statefulBubble) sample() tea.Cmd {
	transport := b.transport
	return func() tea.Msg {
		return samplePlayback(transport)
	}
}

func samplePlayback(transport player.Transport) sampleMsg {
	var p playback

	if !transport.IsRunning() {
		return sampleMsg(p)
	}
	p.running = true

	position, err := transport.Position()
	if err != nil {
		if !errors.Is(err, player.ErrNoMedia) {
			log.Debugf("sample position: %v", err)
		}
		return sampleMsg(p)
	}
	p.loaded = true
	p.positionMs = position

	if length, err := transport.Length(); err == nil {
		p.lengthMs = length
	}
	if playing, err := transport.IsPlaying(); err == nil {
		p.playing = playing
	}
	if volume, err := transport.Volume(); err == nil {
		p.volume = volume
	}

	return sampleMsg(p)
}

// run executes a transport command and answers with a fresh sample, or the error.
func (b *statefulBubble) run(command func(player.Transport) error) tea.Cmd {
	transport := b.transport
	return func() tea.Msg {
		if err := command(transport); err != nil {
			return err
		}
		return samplePlayback(transport)
	}
}

func (b *statefulBubble) togglePlay() tea.Cmd {
	if b.playback.playing {
		return b.run(player.Transport.Pause)
	}
	return b.run(player.Transport.Play)
}

func (b *statefulBubble) stopPlayback() tea.Cmd {
	return b.run(player.Transport.Stop)
}

func (b *statefulBubble) seek(delta time.Duration) tea.Cmd {
	return b.run(func(t player.Transport) error {
		position, err := t.Position()
		if err != nil {
			return err
		}
		length, err := t.Length()
		if err != nil {
			return err
		}

		target := util.Clamp(position+int(delta.Milliseconds()), 0, length)
		return t.SetPosition(target)
	})
}

func (b *statefulBubble) changeVolume(delta int) tea.Cmd {
	return b.run(func(t player.Transport) error {
		volume, err := t.Volume()
		if err != nil {
			return err
		}
		return t.SetVolume(util.Clamp(volume+delta, 0, 100))
	})
}

func (b *statefulBubble) toggleMute() tea.Cmd {
	transport := b.transport
	return func() tea.Msg {
		muted, err := transport.ToggleMute()
		if err != nil {
			return err
		}
		return mutedMsg(muted)
	}
}

func (b *statefulBubble) openMedia(path string) tea.Cmd {
	transport, save := b.transport, b.saveHistory
	return func() tea.Msg {
		exists, err := filesystem.API().Exists(path)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("open %s: %w", path, os.ErrNotExist)
		}

		log.Infof("opening %s", path)
		if err := transport.Open(path); err != nil {
			return err
		}

		if save {
			if err := history.Save(path); err != nil {
				log.Warnf("save history: %v", err)
			}
		}

		return mediaOpenedMsg{path: path}
	}
}

func (b *statefulBubble) waitForMpvExit() tea.Cmd {
	exited := b.transport.Wait()
	return func() tea.Msg {
		<-exited
		return mpvExitMsg{}
	}
}

// toggleSync flips the controller off the UI goroutine; turning sync on blocks for one poll.
func (b *statefulBubble) toggleSync() tea.Cmd {
	controller := b.controller
	return func() tea.Msg {
		if err := controller.Toggle(context.Background()); err != nil {
			return err
		}
		return syncToggledMsg{active: controller.Active()}
	}
}

// stopSync turns sync off without ever turning it on.
func (b *statefulBubble) stopSync() tea.Cmd {
	controller := b.controller
	return func() tea.Msg {
		controller.Stop()
		return syncToggledMsg{active: controller.Active()}
	}
}

func (b *statefulBubble) waitForSyncFailure() tea.Cmd {
	errs := b.controller.Errors()
	return func() tea.Msg {
		return syncFailedMsg{err: <-errs}
	}
}

// shutdown stops syncing before the player goes away.
func (b *statefulBubble) shutdown() {
	b.controller.Shutdown()
	if err := b.transport.Close(); err != nil {
		log.Warnf("close player: %v", err)
	}
}
