package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/replaysync/replaysync/filesystem"
	"github.com/replaysync/replaysync/history"
	"github.com/replaysync/replaysync/internal/ui"
	"github.com/replaysync/replaysync/spectator"
	"github.com/replaysync/replaysync/syncer"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestBubble() (*statefulBubble, *fakeTransport, *fakeController) {
	transport := newFakeTransport()
	controls := newTransportControls()
	controller := newFakeController(controls)

	bubble := newBubble(&Options{}, dependencies{
		transport:       transport,
		controller:      controller,
		controls:        controls,
		refreshInterval: time.Second,
		seekStep:        5 * time.Second,
	})
	return bubble, transport, controller
}

// feed runs cmd and hands its message back to the bubble.
func feed(b *statefulBubble, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	_, next := b.Update(cmd())
	return next
}

func TestTransportControls(t *testing.T) {
	Convey("Given fresh transport controls", t, func() {
		c := newTransportControls()
		So(c.snapshot().locked, ShouldBeFalse)

		Convey("Disabling locks everything", func() {
			c.DisableTransport()
			So(c.snapshot(), ShouldResemble, controlsSnapshot{locked: true})

			Convey("And local samples do not unlock it", func() {
				c.follow(false, 0)
				So(c.snapshot().locked, ShouldBeTrue)
			})
		})

		Convey("Enabling mirrors the handed back transport state", func() {
			c.DisableTransport()

			c.EnableTransport(syncer.TransportState{Playing: true, PositionMs: 0})
			So(c.snapshot(), ShouldResemble, controlsSnapshot{pause: true})

			c.EnableTransport(syncer.TransportState{Playing: false, PositionMs: 1500})
			So(c.snapshot(), ShouldResemble, controlsSnapshot{play: true, stop: true})
		})
	})
}

func TestBubble(t *testing.T) {
	Convey("Given an idle bubble", t, func() {
		So(filesystem.API().WriteFile("/media/commentary.ogg", []byte("ogg"), 0o644), ShouldBeNil)

		b, transport, controller := newTestBubble()
		So(b.state, ShouldEqual, idleState)

		Convey("Opening a missing file shows the error view", func() {
			b.Update(runes("o"))
			So(b.state, ShouldEqual, openState)

			b.inputC.SetValue("/media/missing.ogg")
			_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyEnter})
			So(b.busy, ShouldBeTrue)

			feed(b, cmd)
			So(b.state, ShouldEqual, errorState)
			So(b.busy, ShouldBeFalse)
			So(transport.history(), ShouldBeEmpty)

			Convey("And going back returns to the prompt", func() {
				b.Update(tea.KeyMsg{Type: tea.KeyEsc})
				So(b.state, ShouldEqual, openState)
			})
		})

		Convey("When a file is opened", func() {
			b.Update(runes("o"))
			b.inputC.SetValue("/media/commentary.ogg")
			_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyEnter})
			feed(b, cmd)

			So(b.state, ShouldEqual, playerState)
			So(b.media, ShouldResemble, mo.Some("/media/commentary.ogg"))
			So(transport.opened, ShouldResemble, []string{"/media/commentary.ogg"})
			So(b.watchingExit, ShouldBeTrue)

			_, _ = b.Update(samplePlayback(transport))
			So(b.playback.loaded, ShouldBeTrue)
			So(b.playback.playing, ShouldBeTrue)

			Convey("Space pauses the player", func() {
				_, cmd := b.Update(runes(" "))
				feed(b, cmd)
				So(transport.history(), ShouldResemble, []string{"open", "pause"})
				So(b.playback.playing, ShouldBeFalse)
			})

			Convey("Seeking forward moves by the seek step", func() {
				_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyRight})
				feed(b, cmd)
				So(transport.position, ShouldEqual, 5000)
			})

			Convey("Seeking backward never goes below zero", func() {
				_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyLeft})
				feed(b, cmd)
				So(transport.position, ShouldEqual, 0)
			})

			Convey("Volume steps stay within bounds", func() {
				transport.volume = 98
				_, cmd := b.Update(runes("+"))
				feed(b, cmd)
				So(transport.volume, ShouldEqual, 100)
			})

			Convey("Mute is tracked across samples", func() {
				_, cmd := b.Update(runes("m"))
				feed(b, feed(b, cmd))
				So(b.playback.muted, ShouldBeTrue)
			})

			Convey("Turning sync on locks the transport keys but not volume", func() {
				_, cmd := b.Update(runes("y"))
				So(b.busy, ShouldBeTrue)
				feed(b, cmd)
				So(b.busy, ShouldBeFalse)
				So(controller.Active(), ShouldBeTrue)
				So(b.viewSync(), ShouldContainSubstring, "+250ms")

				_, cmd = b.Update(runes(" "))
				So(cmd, ShouldBeNil)
				_, cmd = b.Update(tea.KeyMsg{Type: tea.KeyRight})
				So(cmd, ShouldBeNil)
				_, cmd = b.Update(runes("o"))
				So(b.state, ShouldEqual, playerState)

				_, cmd = b.Update(runes("-"))
				feed(b, cmd)
				So(transport.volume, ShouldEqual, 45)

				Convey("And turning it off unlocks them again", func() {
					_, cmd := b.Update(runes("y"))
					feed(b, cmd)
					So(controller.Active(), ShouldBeFalse)
					So(b.keymap.playPause.Enabled(), ShouldBeTrue)
					So(b.keymap.seekForward.Enabled(), ShouldBeTrue)
				})
			})

			Convey("A failed initial poll shows the error view", func() {
				controller.toggleErr = spectator.ErrUnreachable
				_, cmd := b.Update(runes("y"))
				feed(b, cmd)

				So(b.state, ShouldEqual, errorState)
				So(errors.Is(b.lastError, syncer.ErrInitialPoll), ShouldBeTrue)
				So(b.keymap.playPause.Enabled(), ShouldBeTrue)
			})

			Convey("A tick failure only raises a notification", func() {
				_, cmd := b.Update(syncFailedMsg{err: errors.New("poll: timeout")})
				So(cmd, ShouldNotBeNil)
				So(b.state, ShouldEqual, playerState)

				b.Update(ui.NotificationMsg("sync tick failed: poll: timeout"))
				So(b.View(), ShouldContainSubstring, "poll: timeout")
			})

			Convey("The player exiting turns sync off and returns to idle", func() {
				_, cmd := b.Update(runes("y"))
				feed(b, cmd)

				_, _ = b.Update(mpvExitMsg{})
				So(b.state, ShouldEqual, idleState)
				So(b.busy, ShouldBeTrue)
				So(b.watchingExit, ShouldBeFalse)

				b.Update(b.stopSync()())
				So(b.busy, ShouldBeFalse)
				So(controller.Active(), ShouldBeFalse)
				So(controller.stops, ShouldEqual, 1)
				So(controller.toggles, ShouldEqual, 1)

				Convey("And a late stop never turns sync back on", func() {
					b.Update(b.stopSync()())
					So(controller.Active(), ShouldBeFalse)
					So(controller.toggles, ShouldEqual, 1)
				})
			})

			Convey("Quitting stops sync before closing the player", func() {
				_, cmd := b.Update(runes("q"))
				So(cmd, ShouldNotBeNil)
				So(controller.shutdowns, ShouldEqual, 1)
				So(transport.closed, ShouldEqual, 1)
			})
		})
	})
}

func TestOpenSuggestion(t *testing.T) {
	Convey("Given a previously opened file", t, func() {
		So(history.Save("/media/worlds-final.ogg"), ShouldBeNil)

		b, _, _ := newTestBubble()
		b.Update(runes("o"))

		Convey("Typing part of its path suggests it and tab accepts", func() {
			b.Update(runes("w"))
			b.Update(runes("f"))
			So(b.suggestion, ShouldResemble, mo.Some("/media/worlds-final.ogg"))
			So(b.View(), ShouldContainSubstring, "worlds-final")

			b.Update(tea.KeyMsg{Type: tea.KeyTab})
			So(b.inputC.Value(), ShouldEqual, "/media/worlds-final.ogg")
			So(b.suggestion.IsAbsent(), ShouldBeTrue)
		})
	})
}
