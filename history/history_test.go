package history

import (
	"testing"
	"time"

	"github.com/replaysync/replaysync/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given a clock that advances a minute per call", t, func() {
		clock := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
		now = func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		}
		Reset(func() { now = time.Now })

		So(cacher.Set(map[string]*Record{}), ShouldBeNil)

		Convey("When nothing was opened", func() {
			last, err := Last()
			So(err, ShouldBeNil)
			So(last.IsAbsent(), ShouldBeTrue)
		})

		Convey("When two files are opened in turn", func() {
			So(Save("/media/game-one.ogg"), ShouldBeNil)
			So(Save("/media/game-two.ogg"), ShouldBeNil)

			Convey("Then the later one is the last", func() {
				last, err := Last()
				So(err, ShouldBeNil)
				record := last.MustGet()
				So(record.Path, ShouldEqual, "/media/game-two.ogg")
				So(record.Name, ShouldEqual, "game-two")
			})

			Convey("And reopening the first one moves it back to the top", func() {
				So(Save("/media/./game-one.ogg"), ShouldBeNil)

				saved, err := Get()
				So(err, ShouldBeNil)
				So(saved, ShouldHaveLength, 2)
				So(saved["/media/game-one.ogg"].Opens, ShouldEqual, 2)

				last, _ := Last()
				So(last.MustGet().Name, ShouldEqual, "game-one")
			})

			Convey("And typing part of a path suggests the latest match", func() {
				So(Suggest("game").MustGet(), ShouldEqual, "/media/game-two.ogg")
				So(Suggest("ONE").MustGet(), ShouldEqual, "/media/game-one.ogg")
				So(Suggest("mdgo").IsPresent(), ShouldBeTrue)
				So(Suggest("xyz").IsAbsent(), ShouldBeTrue)
				So(Suggest("  ").IsAbsent(), ShouldBeTrue)
			})

			Convey("And a removed record is forgotten", func() {
				So(Remove("/media/game-two.ogg"), ShouldBeNil)
				last, _ := Last()
				So(last.MustGet().Path, ShouldEqual, "/media/game-one.ogg")
			})
		})
	})
}
