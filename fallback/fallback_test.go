package fallback

import (
	"testing"

	"github.com/reelcast/reelcast/provider"
	"github.com/reelcast/reelcast/source"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNextAttempt(t *testing.T) {
	Convey("Given a cascade over the built-in table", t, func() {
		c := New(provider.Builtin(), 3)

		Convey("Every provider should yield exactly its limit", func() {
			servers := map[provider.Provider]string{
				provider.VidSrc:      "https://vidsrc.to/embed/movie/603",
				provider.VidJoy:      "https://vidjoy.pro/embed/movie/603",
				provider.VidBinge:    "https://vidbinge.dev/embed/movie?tmdb=603",
				provider.SuperEmbed:  "https://superembed.mov/movie/603",
				provider.MultiEmbed:  "https://multiembed.mov/directstream.php?video_id=603&tmdb=1",
				provider.YouTube:     "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
				provider.GoogleDrive: "https://drive.google.com/file/d/1AbC_d/view",
			}
			limits := map[provider.Provider]int{
				provider.VidSrc:      4,
				provider.VidJoy:      4,
				provider.VidBinge:    4,
				provider.SuperEmbed:  4,
				provider.MultiEmbed:  3,
				provider.YouTube:     3,
				provider.GoogleDrive: 3,
			}

			for p, raw := range servers {
				server := source.NewServer(string(p), raw)
				n := limits[p]
				So(c.Limit(p), ShouldEqual, n)
				for i := 0; i < n; i++ {
					attempt, ok := c.NextAttempt(server, p, i).Get()
					So(ok, ShouldBeTrue)
					So(attempt.Index, ShouldEqual, i)
				}
				So(c.NextAttempt(server, p, n).IsPresent(), ShouldBeFalse)
				So(c.NextAttempt(server, p, -1).IsPresent(), ShouldBeFalse)
			}
		})

		Convey("Providers without a list should be exhausted at once", func() {
			for _, p := range []provider.Provider{provider.Mega, provider.Unknown, provider.DashManifest, provider.StreamWish, "nonexistent"} {
				So(c.NextAttempt(source.NewServer("", "https://mega.nz/file/abc"), p, 0).IsPresent(), ShouldBeFalse)
			}
		})

		Convey("Overrides should swap keys in place on the enhanced URL", func() {
			server := source.NewServer("vidsrc", "https://vidsrc.to/embed/movie/603?lang=en")
			attempt := c.NextAttempt(server, provider.VidSrc, 1).MustGet()
			So(attempt.URL, ShouldEqual, "https://vidsrc.to/embed/movie/603?lang=en&server=upcloud&quality=1080p&autoplay=1&t=1")
			So(attempt.Label, ShouldEqual, "server=upcloud")
		})

		Convey("Replacements should use the id on the new base", func() {
			server := source.NewServer("multi", "https://multiembed.mov/movie/603")
			attempt := c.NextAttempt(server, provider.MultiEmbed, 1).MustGet()
			So(attempt.URL, ShouldEqual, "https://multiembed.mov/directstream.php?video_id=603&tmdb=1&autoplay=1&muted=1&controls=1")

			attempt = c.NextAttempt(source.NewServer("drive", "https://drive.google.com/file/d/1AbC_d/view"), provider.GoogleDrive, 2).MustGet()
			So(attempt.URL, ShouldEqual, "https://drive.google.com/uc?export=view&id=1AbC_d")
		})

		Convey("A missing id should end the cascade", func() {
			server := source.NewServer("multi", "https://multiembed.mov/")
			So(c.NextAttempt(server, provider.MultiEmbed, 0).IsPresent(), ShouldBeFalse)
		})

		Convey("A lower default cap should bound providers without their own", func() {
			So(New(provider.Builtin(), 2).Limit(provider.YouTube), ShouldEqual, 2)
			So(New(provider.Builtin(), 2).Limit(provider.VidSrc), ShouldEqual, 4)
		})

		Convey("Attempts should be pure and listed in order", func() {
			server := source.NewServer("joy", "https://vidjoy.pro/embed/movie/603")
			attempts := c.Attempts(server, provider.VidJoy)
			So(lo.Map(attempts, func(a Attempt, _ int) string { return a.Label }), ShouldResemble,
				[]string{"quality=1080p", "quality=720p", "quality=480p", "quality=360p"})
			So(c.Attempts(server, provider.VidJoy), ShouldResemble, attempts)
		})
	})
}
