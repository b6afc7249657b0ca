package history

import (
	"testing"
	"time"

	"github.com/reelcast/reelcast/dispatch"
	"github.com/reelcast/reelcast/filesystem"
	"github.com/reelcast/reelcast/provider"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given a plan that played", t, func() {
		plan := &dispatch.Plan{
			Provider:     provider.VidSrc,
			URL:          "https://vidsrc.to/embed/movie/603?server=upcloud",
			ServerIndex:  1,
			ServerName:   "VidSrc",
			AttemptIndex: 2,
		}
		record := NewRecord("The Matrix", 0, 0, plan)

		Convey("When saving it", func() {
			So(Save(record), ShouldBeNil)

			Convey("Then it should be found by title, ignoring case", func() {
				last, err := Last("the matrix", 0, 0)
				So(err, ShouldBeNil)
				So(last.IsPresent(), ShouldBeTrue)
				So(last.MustGet().Index, ShouldEqual, 1)
				So(last.MustGet().Attempt, ShouldEqual, 2)
				So(last.MustGet().String(), ShouldEqual, "The Matrix: VidSrc (vidsrc)")
			})

			Convey("Then another episode should not match", func() {
				last, err := Last("The Matrix", 1, 1)
				So(err, ShouldBeNil)
				So(last.IsPresent(), ShouldBeFalse)
			})

			Convey("Then newer records should be listed first", func() {
				newer := NewRecord("Game of Thrones", 1, 2, plan)
				newer.PlayedAt = record.PlayedAt.Add(time.Minute)
				So(Save(newer), ShouldBeNil)

				records, err := List()
				So(err, ShouldBeNil)
				So(len(records), ShouldBeGreaterThanOrEqualTo, 2)
				So(records[0].String(), ShouldEqual, "Game of Thrones S01E02: VidSrc (vidsrc)")
				So(Remove(newer), ShouldBeNil)
			})

			Convey("Then removing it should forget it", func() {
				So(Remove(record), ShouldBeNil)
				last, err := Last("The Matrix", 0, 0)
				So(err, ShouldBeNil)
				So(last.IsPresent(), ShouldBeFalse)
			})
		})
	})
}
