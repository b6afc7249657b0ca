package classify

import (
	"testing"

	"github.com/reelcast/reelcast/provider"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassify(t *testing.T) {
	Convey("Classify", t, func() {
		Convey("DASH manifests should win over every other rule", func() {
			for _, raw := range []string{
				"https://cdn.example.com/movie/manifest.mpd",
				"https://vidsrc.to/streams/manifest.mpd",
				"https://www.youtube.com/dash/stream",
				"https://media.example.com/dash/video.mp4",
				"HTTPS://CDN.EXAMPLE.COM/MANIFEST.MPD?token=1",
			} {
				c := Classify(raw)
				So(c.Provider, ShouldEqual, provider.DashManifest)
				So(c.Category, ShouldEqual, provider.DashDrmWebPlayer)
				So(c.Container, ShouldEqual, provider.DASH)
				So(c.Warning(), ShouldBeNil)
			}
		})

		Convey("The dash token should be delimited", func() {
			c := Classify("https://dashboard.example.com/watch")
			So(c.Provider, ShouldEqual, provider.Unknown)
		})

		Convey("Embed hosts should match with their subdomains", func() {
			c := Classify("https://player.vidsrc.to/embed/movie/603")
			So(c.Provider, ShouldEqual, provider.VidSrc)
			So(c.Category, ShouldEqual, provider.SandboxedEmbed)
			So(c.Rule, ShouldEqual, RuleHost)

			So(Classify("https://youtu.be/dQw4w9WgXcQ").Provider, ShouldEqual, provider.YouTube)
			So(Classify("https://drive.google.com/file/d/abc/view").Provider, ShouldEqual, provider.GoogleDrive)
		})

		Convey("An embed host should beat a direct file extension", func() {
			c := Classify("https://mixdrop.co/files/movie.mp4")
			So(c.Provider, ShouldEqual, provider.MixDrop)
			So(c.Category, ShouldEqual, provider.SandboxedEmbed)
		})

		Convey("HLS playlists should be adaptive", func() {
			c := Classify("https://cdn.example.com/live/master.m3u8")
			So(c.Provider, ShouldEqual, provider.HLSStream)
			So(c.Category, ShouldEqual, provider.NativeAdaptive)
			So(c.Container, ShouldEqual, provider.HLS)

			So(Classify("https://cdn.example.com/hls/stream").Provider, ShouldEqual, provider.HLSStream)
		})

		Convey("Direct files and rtmp should be direct", func() {
			c := Classify("https://files.example.com/movie.MKV")
			So(c.Provider, ShouldEqual, provider.DirectFile)
			So(c.Category, ShouldEqual, provider.NativeDirect)
			So(c.Container, ShouldEqual, provider.MKV)

			c = Classify("rtmp://live.example.com/app/stream")
			So(c.Category, ShouldEqual, provider.NativeDirect)
			So(c.Container, ShouldEqual, provider.RTMP)
		})

		Convey("Unknown and unparsable input should be sandboxed", func() {
			for _, raw := range []string{"https://example.com/watch/1", "", "   ", "::::", "http://"} {
				c := Classify(raw)
				So(c.Provider, ShouldEqual, provider.Unknown)
				So(c.Category, ShouldEqual, provider.SandboxedEmbed)
				So(c.Warning(), ShouldEqual, ErrUnknownProvider)
			}
		})

		Convey("Bare hosts should be accepted", func() {
			So(Classify("vidsrc.to/embed/movie/603").Provider, ShouldEqual, provider.VidSrc)
		})

		Convey("Classification should be a pure function of the input", func() {
			raw := "https://vidjoy.pro/embed/movie/603"
			So(Classify(raw), ShouldResemble, Classify(raw))
		})
	})
}

func TestCustomProviders(t *testing.T) {
	Convey("Given a registry with a custom provider", t, func() {
		registry, err := provider.Builtin().Extend(&provider.Profile{
			Provider: "streamly",
			Hosts:    []string{"streamly.example"},
			Category: provider.NativeAdaptive,
			Custom:   true,
		})
		So(err, ShouldBeNil)
		c := New(registry)

		Convey("Its host should be recognized with its category", func() {
			got := c.Classify("https://cdn.streamly.example/watch/1")
			So(got.Provider, ShouldEqual, provider.Provider("streamly"))
			So(got.Category, ShouldEqual, provider.NativeAdaptive)
			So(got.Container, ShouldEqual, provider.HLS)
		})

		Convey("DASH should still come first", func() {
			So(c.Classify("https://streamly.example/a.mpd").Provider, ShouldEqual, provider.DashManifest)
		})
	})
}

func TestIsDirectFile(t *testing.T) {
	Convey("IsDirectFile", t, func() {
		So(IsDirectFile("https://files.example.com/movie.mp4"), ShouldBeTrue)
		So(IsDirectFile("https://files.example.com/movie.webm?sig=1"), ShouldBeTrue)
		So(IsDirectFile("https://mixdrop.co/files/movie.mp4"), ShouldBeFalse)
		So(IsDirectFile("rtmp://live.example.com/movie.mp4"), ShouldBeFalse)
		So(IsDirectFile("https://files.example.com/watch"), ShouldBeFalse)
	})
}
