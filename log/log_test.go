package log

import (
	"path/filepath"
	"testing"

	"github.com/replaysync/replaysync/filesystem"
	"github.com/replaysync/replaysync/key"
	"github.com/replaysync/replaysync/where"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)

		Convey("Setup succeeds and emissions are dropped", func() {
			So(Setup(), ShouldBeNil)
			So(Enabled(), ShouldBeFalse)
			So(func() { Infof("ignored %d", 1) }, ShouldNotPanic)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		viper.Set(key.LogsJson, true)
		Reset(func() { viper.Set(key.LogsWrite, false) })

		Convey("Setup creates a daily log file", func() {
			So(Setup(), ShouldBeNil)
			So(Enabled(), ShouldBeTrue)

			WithFields(Fields{"tick": 1}).Info("hello")

			matches := lo.Must(filesystem.API().ReadDir(where.Logs()))
			So(matches, ShouldNotBeEmpty)
			So(filepath.Ext(matches[0].Name()), ShouldEqual, ".log")
		})
	})
}
