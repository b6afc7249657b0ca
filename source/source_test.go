package source

import (
	"testing"

	"github.com/reelcast/reelcast/provider"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServer(t *testing.T) {
	Convey("Given a server", t, func() {
		s := NewServer("Primary", "https://vidsrc.to/embed/movie/603")

		Convey("It should carry no license or flag", func() {
			So(s.License.IsPresent(), ShouldBeFalse)
			So(s.DRM.IsPresent(), ShouldBeFalse)
			So(s.Validate(), ShouldBeNil)
		})

		Convey("With methods should not touch the original", func() {
			protected := s.WithLicense("abc:def").WithDRM(true)
			So(protected.License.MustGet(), ShouldEqual, "abc:def")
			So(protected.DRM.MustGet(), ShouldBeTrue)
			So(s.License.IsPresent(), ShouldBeFalse)
		})

		Convey("An empty license should be absent", func() {
			So(s.WithLicense("").License.IsPresent(), ShouldBeFalse)
		})

		Convey("A server without url should be invalid", func() {
			So(NewServer("Empty", "").Validate(), ShouldNotBeNil)
		})
	})
}

func TestRank(t *testing.T) {
	Convey("Given unordered servers", t, func() {
		servers := []Server{
			NewServer("zeta", "https://mixdrop.co/e/1"),
			NewServer("Alpha", "https://youtube.com/watch?v=dQw4w9WgXcQ"),
			NewServer("beta", "https://vidsrc.to/embed/movie/1"),
			NewServer("gamma", "https://example.com/video.mp4"),
		}
		names := func(servers []Server) []string {
			return lo.Map(servers, func(s Server, _ int) string { return s.Name })
		}

		Convey("Equal ranks should be ordered by name", func() {
			ranked := Rank(servers, func(Server) int { return 0 })
			So(names(ranked), ShouldResemble, []string{"Alpha", "beta", "gamma", "zeta"})
			So(names(servers)[0], ShouldEqual, "zeta")
		})

		Convey("Preferred providers and names should come first", func() {
			rank := Preferred([]string{"vidsrc", "Zeta"}, provider.Builtin())
			ranked := Rank(servers, rank)
			So(names(ranked), ShouldResemble, []string{"beta", "zeta", "Alpha", "gamma"})
		})
	})
}
