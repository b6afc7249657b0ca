package hostname

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalize(t *testing.T) {
	Convey("Normalize", t, func() {
		So(Normalize("WWW.VidSrc.TO"), ShouldEqual, "www.vidsrc.to")
		So(Normalize("vidsrc.to:443"), ShouldEqual, "vidsrc.to")
		So(Normalize("embed.su."), ShouldEqual, "embed.su")
		So(Normalize(""), ShouldEqual, "")
	})
}

func TestWithin(t *testing.T) {
	Convey("Within", t, func() {
		Convey("Should match the domain and its subdomains", func() {
			So(Within("vidsrc.to", "vidsrc.to"), ShouldBeTrue)
			So(Within("player.vidsrc.to", "vidsrc.to"), ShouldBeTrue)
		})

		Convey("Should not match on a partial label", func() {
			So(Within("notvidsrc.to", "vidsrc.to"), ShouldBeFalse)
			So(Within("vidsrc.to.evil.com", "vidsrc.to"), ShouldBeFalse)
		})

		Convey("Should reject empty input", func() {
			So(Within("", "vidsrc.to"), ShouldBeFalse)
		})
	})
}

func TestRegistrable(t *testing.T) {
	Convey("Registrable", t, func() {
		So(Registrable("player.autoembed.cc"), ShouldEqual, "autoembed.cc")
		So(Registrable("autoembed.cc"), ShouldEqual, "autoembed.cc")
		So(SameRegistrable("a.vidlink.pro", "b.vidlink.pro"), ShouldBeTrue)
		So(SameRegistrable("vidlink.pro", "embed.su"), ShouldBeFalse)
		So(SameRegistrable("", ""), ShouldBeFalse)
	})
}

func TestFromURL(t *testing.T) {
	Convey("FromURL", t, func() {
		So(FromURL("https://Player.VidSrc.to:8443/embed/movie/1"), ShouldEqual, "player.vidsrc.to")
		So(FromURL("rtmp://live.example/app"), ShouldEqual, "live.example")
		So(FromURL("not a url"), ShouldEqual, "")
		So(FromURL("://bad"), ShouldEqual, "")
	})
}
