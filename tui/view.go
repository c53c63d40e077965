package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/replaysync/replaysync/color"
	"github.com/replaysync/replaysync/constant"
	"github.com/replaysync/replaysync/icon"
	"github.com/replaysync/replaysync/style"
	"github.com/replaysync/replaysync/syncer"
	"github.com/replaysync/replaysync/util"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case idleState:
		output = b.viewIdle()
	case openState:
		output = b.viewOpen()
	case playerState:
		output = b.viewPlayer()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewIdle() string {
	return b.renderLines(
		true,
		[]string{
			style.Title(constant.App),
			"",
			"No media loaded",
			style.Faint("Open the commentary track recorded for this replay."),
		},
	)
}

func (b *statefulBubble) viewOpen() string {
	lines := []string{
		style.Title("Open Media"),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.suggestion.Get(); ok {
		lines = append(lines, "", style.Truncate(b.width)(style.Faint(icon.Get(icon.Question)+" "+suggestion)))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewPlayer() string {
	name := b.media.OrEmpty()
	if name != "" {
		name = util.FileStem(name)
	}

	stateIcon := icon.Get(icon.Pause)
	if b.playback.playing {
		stateIcon = icon.Get(icon.Play)
	}

	var ratio float64
	if b.playback.lengthMs > 0 {
		ratio = float64(b.playback.positionMs) / float64(b.playback.lengthMs)
	}

	volumeIcon := icon.Get(icon.Volume)
	if b.playback.muted {
		volumeIcon = icon.Get(icon.Mute)
	}

	return b.renderLines(
		true,
		[]string{
			style.Title("Now Playing"),
			"",
			style.Truncate(b.width)(fmt.Sprintf("%s %s", stateIcon, style.Fg(color.Purple)(name))),
			"",
			b.progressC.ViewAs(util.Clamp(ratio, 0, 1)),
			fmt.Sprintf("%s / %s", util.FormatMs(b.playback.positionMs), util.FormatMs(b.playback.lengthMs)),
			"",
			fmt.Sprintf("%s %d%%", volumeIcon, b.playback.volume),
			b.viewSync(),
		},
	)
}

func (b *statefulBubble) viewSync() string {
	session, ok := b.controller.Session()
	if !ok {
		return style.Faint("sync off")
	}

	line := fmt.Sprintf("%s synced, offset %+dms", icon.Get(icon.Sync), session.TimeDiffMs)
	lineColor := style.SyncedColor

	if remote, ok := b.controller.LastStatus(); ok {
		if syncer.ShouldPause(remote) {
			lineColor = style.HoldingColor
		}

		flags := make([]string, 0, 2)
		if remote.Paused {
			flags = append(flags, "paused")
		}
		if remote.Seeking {
			flags = append(flags, "seeking")
		}

		line += fmt.Sprintf(" · replay %s x%.2g", util.FormatMs(remote.TimeMs()), remote.Speed)
		if len(flags) > 0 {
			line += " (" + strings.Join(flags, ", ") + ")"
		}
	}

	return style.Fg(lineColor)(line)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(style.ErrorColor).Bold(true)
	errorMsg := wrap.String(errorStyle.Render(b.lastError.Error()), b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
