package provider

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/reelcast/reelcast/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestBuiltin(t *testing.T) {
	Convey("Given the built-in registry", t, func() {
		r := Builtin()

		Convey("Every profile should be valid", func() {
			for _, p := range r.Profiles() {
				So(p.Validate(), ShouldBeNil)
			}
		})

		Convey("The media kinds should be registered", func() {
			for _, p := range mediaKinds {
				_, ok := r.Lookup(p)
				So(ok, ShouldBeTrue)
			}
		})

		Convey("Hosts should match on label boundaries", func() {
			p, ok := r.MatchHost("player.autoembed.cc")
			So(ok, ShouldBeTrue)
			So(p.Provider, ShouldEqual, AutoEmbed)

			p, ok = r.MatchHost("www.youtube.com")
			So(ok, ShouldBeTrue)
			So(p.Provider, ShouldEqual, YouTube)

			_, ok = r.MatchHost("notvidsrc.to")
			So(ok, ShouldBeFalse)
		})

		Convey("Canonical parameter strings should keep their order", func() {
			So(r.MustLookup(VidSrc).Canonical(), ShouldEqual, "server=vidcloud&quality=1080p&autoplay=1&t=1")
			So(r.MustLookup(VidJoy).Canonical(), ShouldEqual, "quality=1080p&server=auto&autoplay=1&sub.file=")
			So(r.MustLookup(SuperEmbed).Canonical(), ShouldEqual,
				"autoplay=1&muted=0&controls=1&rel=0&showinfo=0&iv_load_policy=3&modestbranding=1&playsinline=1&enablejsapi=1"+
					"&origin=https%3A%2F%2Fsuperembed.mov&widget_referrer=https%3A%2F%2Fsuperembed.mov")
		})

		Convey("Fallback limits should be capped by the list length", func() {
			So(r.MustLookup(VidSrc).Limit(3), ShouldEqual, 4)
			So(r.MustLookup(YouTube).Limit(3), ShouldEqual, 3)
			So(r.MustLookup(GoogleDrive).Limit(2), ShouldEqual, 2)
			So(r.MustLookup(Mega).Limit(3), ShouldEqual, 0)
		})

		Convey("The aggregator should know its downstream host", func() {
			p := r.MustLookup(MultiEmbed)
			So(p.Aggregator, ShouldBeTrue)
			So(p.IsDownstream("streamingnow.mov"), ShouldBeTrue)
			So(p.LoadTimeout, ShouldEqual, 15*time.Second)
		})
	})
}

func TestExtractID(t *testing.T) {
	Convey("ExtractID", t, func() {
		r := Builtin()

		Convey("YouTube watch, short and embed forms", func() {
			for _, raw := range []string{
				"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
				"https://youtu.be/dQw4w9WgXcQ",
				"https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1",
			} {
				id, ok := r.MustLookup(YouTube).ExtractID(raw)
				So(ok, ShouldBeTrue)
				So(id, ShouldEqual, "dQw4w9WgXcQ")
			}
		})

		Convey("Aggregator IDs prefer the video_id parameter", func() {
			id, ok := r.MustLookup(MultiEmbed).ExtractID("https://multiembed.mov/directstream.php?video_id=tt0133093&tmdb=1")
			So(ok, ShouldBeTrue)
			So(id, ShouldEqual, "tt0133093")

			id, ok = r.MustLookup(MultiEmbed).ExtractID("https://multiembed.mov/movie/603")
			So(ok, ShouldBeTrue)
			So(id, ShouldEqual, "603")
		})

		Convey("Missing IDs are reported", func() {
			_, ok := r.MustLookup(GoogleDrive).ExtractID("https://drive.google.com/drive/my-drive")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestExtend(t *testing.T) {
	Convey("Given a custom profile", t, func() {
		custom := &Profile{
			Provider: "streamly",
			Hosts:    []string{"streamly.example"},
			Category: SandboxedEmbed,
			Custom:   true,
		}

		Convey("Extend should match it first", func() {
			r, err := Builtin().Extend(custom)
			So(err, ShouldBeNil)
			p, ok := r.MatchHost("cdn.streamly.example")
			So(ok, ShouldBeTrue)
			So(p.Provider, ShouldEqual, Provider("streamly"))
		})

		Convey("A custom row should shadow the built-in row with its id", func() {
			custom.Provider = VidSrc
			custom.Hosts = []string{"vidsrc.example"}
			r, err := Builtin().Extend(custom)
			So(err, ShouldBeNil)
			So(r.MustLookup(VidSrc).Custom, ShouldBeTrue)
			_, ok := r.MatchHost("vidsrc.to")
			So(ok, ShouldBeFalse)
		})

		Convey("Media kinds cannot be shadowed", func() {
			custom.Provider = DashManifest
			_, err := Builtin().Extend(custom)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLoadCustom(t *testing.T) {
	Convey("Given a providers directory", t, func() {
		dir := filepath.Join("/", "providers")
		So(filesystem.API().MkdirAll(dir, 0o755), ShouldBeNil)
		defer filesystem.API().RemoveAll(dir)

		Convey("A scaffolded definition should load back", func() {
			path, err := Scaffold(dir, "Streamly", []string{"streamly.example"})
			So(err, ShouldBeNil)
			So(filepath.Base(path), ShouldEqual, "streamly.json")

			profiles, err := LoadCustom(dir)
			So(err, ShouldBeNil)
			So(profiles, ShouldHaveLength, 1)
			So(profiles[0].Provider, ShouldEqual, Provider("streamly"))
			So(profiles[0].Canonical(), ShouldEqual, "autoplay=1")
			So(profiles[0].Fallbacks, ShouldHaveLength, 1)

			Convey("Scaffolding twice should fail", func() {
				_, err := Scaffold(dir, "Streamly", []string{"streamly.example"})
				So(err, ShouldNotBeNil)
			})
		})

		Convey("Unknown fields should be rejected", func() {
			So(filesystem.API().WriteFile(filepath.Join(dir, "bad.json"), []byte(`{"hosts":["a.example"],"colour":"red"}`), 0o644), ShouldBeNil)
			_, err := LoadCustom(dir)
			So(err, ShouldNotBeNil)
		})

		Convey("Templates without id patterns should be rejected", func() {
			So(filesystem.API().WriteFile(filepath.Join(dir, "bad.json"), []byte(`{"hosts":["a.example"],"rewrite":"https://a.example/e/{id}"}`), 0o644), ShouldBeNil)
			_, err := LoadCustom(dir)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestBuildEmbedURL(t *testing.T) {
	Convey("BuildEmbedURL", t, func() {
		u, err := BuildEmbedURL(VidSrc, Target{Kind: Movie, ID: "603"})
		So(err, ShouldBeNil)
		So(u, ShouldEqual, "https://vidsrc.to/embed/movie/603")

		u, err = BuildEmbedURL(VidJoy, Target{Kind: TV, ID: "1399", Season: 1, Episode: 2})
		So(err, ShouldBeNil)
		So(u, ShouldEqual, "https://vidjoy.pro/embed/tv/1399-1-2")

		u, err = BuildEmbedURL(MultiEmbed, Target{Kind: TV, ID: "1399", Season: 3, Episode: 9})
		So(err, ShouldBeNil)
		So(u, ShouldEqual, "https://multiembed.mov/directstream.php?video_id=1399&tmdb=1&s=3&e=9")

		_, err = BuildEmbedURL(VidSrc, Target{Kind: TV, ID: "1399"})
		So(err, ShouldNotBeNil)

		_, err = BuildEmbedURL(YouTube, Target{Kind: Movie, ID: "x"})
		So(err, ShouldNotBeNil)

		u, err = BuildDirectURL(GoogleDrive, "abc_123")
		So(err, ShouldBeNil)
		So(u, ShouldEqual, "https://drive.google.com/file/d/abc_123/preview")
	})
}
