package enhance

import (
	"testing"

	"github.com/reelcast/reelcast/provider"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEnhance(t *testing.T) {
	Convey("Enhance", t, func() {
		Convey("Canonical parameters should replace the provider keys in order", func() {
			got := Enhance("https://vidsrc.to/embed/movie/603?autoplay=0&lang=en&server=nova", provider.VidSrc)
			So(got, ShouldEqual, "https://vidsrc.to/embed/movie/603?lang=en&server=vidcloud&quality=1080p&autoplay=1&t=1")
		})

		Convey("The fragment should be kept", func() {
			got := Enhance("https://vidjoy.pro/embed/movie/603#start", provider.VidJoy)
			So(got, ShouldEqual, "https://vidjoy.pro/embed/movie/603?quality=1080p&server=auto&autoplay=1&sub.file=#start")
		})

		Convey("YouTube watch URLs should become embed URLs", func() {
			got, err := EnhanceReport("https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42", provider.YouTube)
			So(err, ShouldBeNil)
			So(got, ShouldStartWith, "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1&muted=0")
			So(got, ShouldEndWith, "&origin=https%3A%2F%2Fwww.youtube.com&widget_referrer=https%3A%2F%2Fwww.youtube.com")
		})

		Convey("Drive file links should become preview URLs", func() {
			got := Enhance("https://drive.google.com/open?id=1AbC_d", provider.GoogleDrive)
			So(got, ShouldEqual, "https://drive.google.com/file/d/1AbC_d/preview?usp=sharing&rm=minimal&ui=2&chrome=false")
		})

		Convey("A failed extraction should return the input with ErrNoop", func() {
			raw := "https://www.youtube.com/feed/trending"
			got, err := EnhanceReport(raw, provider.YouTube)
			So(err, ShouldEqual, ErrNoop)
			So(got, ShouldEqual, raw)
		})

		Convey("Unknown providers and media kinds should pass through", func() {
			for _, p := range []provider.Provider{provider.Unknown, provider.DashManifest, provider.DirectFile, "nonexistent"} {
				raw := "https://cdn.example.com/a.mpd?x=1"
				got, err := EnhanceReport(raw, p)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, raw)
			}
		})
	})
}

func TestIdempotence(t *testing.T) {
	Convey("Enhancing twice should equal enhancing once for every provider", t, func() {
		samples := map[provider.Provider]string{
			provider.YouTube:     "https://youtu.be/dQw4w9WgXcQ?t=10",
			provider.GoogleDrive: "https://drive.google.com/file/d/1AbC_d/view?usp=drive_link",
			provider.Mega:        "https://mega.nz/file/AbCdEf#key",
		}

		for _, profile := range provider.Builtin().Profiles() {
			raw, ok := samples[profile.Provider]
			if !ok {
				host := "cdn.example.com"
				if len(profile.Hosts) > 0 {
					host = profile.Hosts[0]
				}
				raw = "https://" + host + "/embed/movie/603?autoplay=0&extra=a%20b#frag"
			}

			once := Enhance(raw, profile.Provider)
			So(Enhance(once, profile.Provider), ShouldEqual, once)
		}
	})
}

func TestSplit(t *testing.T) {
	Convey("Split", t, func() {
		u := Split("https://a.example/p?x=1&&y=%20&z#f")
		So(u.Base, ShouldEqual, "https://a.example/p")
		So(u.Pairs, ShouldResemble, []provider.Param{{Key: "x", Value: "1"}, {Key: "y", Value: "%20"}, {Key: "z", Value: ""}})
		So(u.Fragment, ShouldEqual, "f")

		Convey("Set should override in place and append missing keys", func() {
			So(u.Set("x", "2").Set("w", "3").String(), ShouldEqual, "https://a.example/p?x=2&y=%20&z=&w=3#f")
			So(u.String(), ShouldEqual, "https://a.example/p?x=1&y=%20&z=#f")
		})

		Convey("Without should drop keys", func() {
			So(u.Without("y", "z").String(), ShouldEqual, "https://a.example/p?x=1#f")
		})
	})
}
