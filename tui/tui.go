// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/replaysync/replaysync/key"
	"github.com/replaysync/replaysync/network"
	"github.com/replaysync/replaysync/player"
	"github.com/replaysync/replaysync/spectator"
	"github.com/replaysync/replaysync/syncer"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Media is opened as soon as the UI starts.
	Media mo.Option[string]
}

type dependencies struct {
	transport  player.Transport
	controller syncController
	controls   *transportControls

	refreshInterval time.Duration
	seekStep        time.Duration
	saveHistory     bool
}

func millis(k string) time.Duration {
	return time.Duration(viper.GetInt(k)) * time.Millisecond
}

// Run wires the player, the spectator client and the sync controller from
// the configuration and blocks until the UI exits.
func Run(options *Options) error {
	transport := player.NewMPV(viper.GetString(key.PlayerBinary), viper.GetInt(key.PlayerVolume))
	client := spectator.NewClient(
		viper.GetString(key.SyncEndpoint),
		network.Loopback(millis(key.SyncTimeoutMs)),
	)
	controls := newTransportControls()
	controller := syncer.New(client, transport, syncer.Options{
		Interval: millis(key.SyncIntervalMs),
		Controls: controls,
	})

	bubble := newBubble(options, dependencies{
		transport:       transport,
		controller:      controller,
		controls:        controls,
		refreshInterval: millis(key.TUIRefreshIntervalMs),
		seekStep:        millis(key.TUISeekStepMs),
		saveHistory:     viper.GetBool(key.HistorySave),
	})
	defer bubble.shutdown()

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
