package drm

import (
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBuild(t *testing.T) {
	Convey("Given a builder with a fallback license server", t, func() {
		b := Builder{FallbackLicenseServer: "https://license.fallback.example/no_auth", Robustness: "SW_SECURE_CRYPTO"}

		Convey("A license on unprotected content should be an auth token", func() {
			c := b.Build(mo.Some("abc:def"), mo.Some(false), false)
			So(c.Kind, ShouldEqual, KindAuthToken)
			So(c.AuthToken.Token, ShouldEqual, "abc:def")
			So(c.ClearKey, ShouldBeNil)
			So(c.Protected(), ShouldBeFalse)
		})

		Convey("A key pair on protected content should be a clear key", func() {
			c := b.Build(mo.Some("abc:def"), mo.Some(true), false)
			So(c.Kind, ShouldEqual, KindClearKey)
			So(*c.ClearKey, ShouldResemble, ClearKey{ID: "abc", Key: "def"})
			So(c.Warning, ShouldBeNil)
		})

		Convey("A URL on protected content should be a license server", func() {
			c := b.Build(mo.Some("https://license.example/widevine"), mo.Some(true), false)
			So(c.Kind, ShouldEqual, KindLicenseServer)
			So(c.LicenseServer.URL, ShouldEqual, "https://license.example/widevine")
			So(c.LicenseServer.Schemes, ShouldResemble, []string{Widevine, PlayReady})
			So(c.LicenseServer.Robustness, ShouldEqual, "SW_SECURE_CRYPTO")
			So(c.Warning, ShouldBeNil)
		})

		Convey("Protected content without license should use the fallback server", func() {
			c := b.Build(mo.None[string](), mo.Some(true), false)
			So(c.Kind, ShouldEqual, KindLicenseServer)
			So(c.LicenseServer.URL, ShouldEqual, "https://license.fallback.example/no_auth")
		})

		Convey("Without a fallback server it should be none", func() {
			b.FallbackLicenseServer = ""
			So(b.Build(mo.Some(""), mo.Some(true), false).Kind, ShouldEqual, KindNone)
		})

		Convey("Without a flag, a license or the heuristic should imply protection", func() {
			So(b.Build(mo.Some("abc:def"), mo.None[bool](), false).Kind, ShouldEqual, KindClearKey)
			So(b.Build(mo.None[string](), mo.None[bool](), true).Kind, ShouldEqual, KindLicenseServer)
			So(b.Build(mo.None[string](), mo.None[bool](), false).Kind, ShouldEqual, KindNone)
		})

		Convey("An explicit false flag should override the heuristic", func() {
			So(b.Build(mo.None[string](), mo.Some(false), true).Kind, ShouldEqual, KindNone)
		})

		Convey("Malformed licenses should be license servers with a warning", func() {
			for _, license := range []string{"a:b:c", "abc:", "just-a-token"} {
				c := b.Build(mo.Some(license), mo.Some(true), false)
				So(c.Kind, ShouldEqual, KindLicenseServer)
				So(c.LicenseServer.URL, ShouldEqual, license)
				So(c.Warning, ShouldEqual, ErrMalformedLicense)
			}
		})
	})
}

func TestShaka(t *testing.T) {
	Convey("Shaka", t, func() {
		So(None().Shaka(), ShouldBeNil)
		So(Config{Kind: KindAuthToken, AuthToken: &AuthToken{Token: "t"}}.Shaka(), ShouldBeNil)

		c := Config{Kind: KindClearKey, ClearKey: &ClearKey{ID: "keyid123", Key: "keyval456"}}
		So(c.Shaka(), ShouldResemble, map[string]any{
			"clearKeys": map[string]string{"keyid123": "keyval456"},
		})

		c = Builder{Robustness: "HW_SECURE_ALL"}.Build(mo.Some("https://l.example"), mo.Some(true), false)
		servers := c.Shaka()["servers"].(map[string]string)
		So(servers[Widevine], ShouldEqual, "https://l.example")
		So(servers[PlayReady], ShouldEqual, "https://l.example")
	})
}

func TestHeuristic(t *testing.T) {
	Convey("Heuristic", t, func() {
		So(Heuristic("https://cdn.example.com/Widevine/manifest.mpd"), ShouldBeTrue)
		So(Heuristic("https://cdn.example.com/drm/a.mpd"), ShouldBeTrue)
		So(Heuristic("https://cdn.example.com/plain/a.mpd"), ShouldBeFalse)
	})
}
