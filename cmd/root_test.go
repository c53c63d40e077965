package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/replaysync/replaysync/config"
	"github.com/replaysync/replaysync/filesystem"
	"github.com/replaysync/replaysync/history"
	"github.com/replaysync/replaysync/key"
	"github.com/replaysync/replaysync/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestStartupMedia(t *testing.T) {
	Convey("Given the startup arguments", t, func() {
		Convey("An explicit file wins and is made absolute", func() {
			media, err := startupMedia([]string{"commentary.ogg"}, true)
			So(err, ShouldBeNil)
			path := media.MustGet()
			So(filepath.IsAbs(path), ShouldBeTrue)
			So(filepath.Base(path), ShouldEqual, "commentary.ogg")
		})

		Convey("Nothing is opened without --continue", func() {
			media, err := startupMedia(nil, false)
			So(err, ShouldBeNil)
			So(media.IsAbsent(), ShouldBeTrue)
		})

		Convey("--continue reopens the last history entry", func() {
			So(filesystem.API().WriteFile("/media/finals-game-3.ogg", []byte("ogg"), 0o644), ShouldBeNil)
			So(history.Save("/media/finals-game-3.ogg"), ShouldBeNil)

			media, err := startupMedia(nil, true)
			So(err, ShouldBeNil)
			So(media.MustGet(), ShouldEqual, "/media/finals-game-3.ogg")
		})

		Convey("--continue drops a last entry whose file is gone", func() {
			So(history.Save("/media/deleted-vod.ogg"), ShouldBeNil)

			_, err := startupMedia(nil, true)
			So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "/media/deleted-vod.ogg")

			saved, err := history.Get()
			So(err, ShouldBeNil)
			So(saved, ShouldNotContainKey, "/media/deleted-vod.ogg")
		})
	})
}

func TestValidateOverrides(t *testing.T) {
	Convey("Given the default configuration", t, func() {
		So(config.Setup(), ShouldBeNil)
		Reset(func() {
			viper.Set(key.SyncIntervalMs, config.Default[key.SyncIntervalMs].Value)
			viper.Set(key.SyncEndpoint, config.Default[key.SyncEndpoint].Value)
		})

		So(validateOverrides(key.SyncEndpoint, key.SyncIntervalMs), ShouldBeNil)

		Convey("Out of range overrides are reported together", func() {
			viper.Set(key.SyncIntervalMs, 0)
			viper.Set(key.SyncEndpoint, "not a url")

			err := validateOverrides(key.SyncEndpoint, key.SyncIntervalMs)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, key.SyncIntervalMs)
			So(err.Error(), ShouldContainSubstring, key.SyncEndpoint)
		})
	})
}

func TestExposedEnv(t *testing.T) {
	Convey("Every config key and the config path override are exposed", t, func() {
		names := exposedEnv()
		So(names, ShouldHaveLength, len(config.EnvExposed)+1)
		So(names, ShouldContain, "REPLAYSYNC_SYNC_ENDPOINT")
		So(names, ShouldContain, where.EnvConfigPath)
	})
}

func TestCurrentBuild(t *testing.T) {
	Convey("Given a player binary that is not installed", t, func() {
		viper.Set(key.PlayerBinary, "definitely-not-mpv-xyz")
		viper.Set(key.SyncEndpoint, "https://127.0.0.1:2999/replay/playback")
		defer viper.Set(key.PlayerBinary, config.Default[key.PlayerBinary].Value)

		info := currentBuild()

		Convey("It is reported as missing with the configured endpoint", func() {
			So(info.PlayerFound, ShouldBeFalse)
			So(info.Player, ShouldEqual, "definitely-not-mpv-xyz")
			So(info.Endpoint, ShouldEqual, "https://127.0.0.1:2999/replay/playback")
			So(info.Platform, ShouldContainSubstring, "/")
		})
	})
}
