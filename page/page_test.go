package page

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/reelcast/reelcast/constant"
	"github.com/reelcast/reelcast/dispatch"
	"github.com/reelcast/reelcast/drm"
	"github.com/reelcast/reelcast/provider"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func dashPlan(config drm.Config) *dispatch.Plan {
	return &dispatch.Plan{
		Category:   provider.DashDrmWebPlayer,
		URL:        "https://cdn.example.com/manifest.mpd",
		Container:  provider.DASH,
		DRM:        config,
		Provider:   provider.DashManifest,
		ServerName: "Main <HD>",
	}
}

func TestRenderDash(t *testing.T) {
	Convey("RenderDash", t, func() {
		Convey("A clear key plan should configure the player and skip the request filter", func() {
			out, err := RenderDash(dashPlan(drm.Config{Kind: drm.KindClearKey, ClearKey: &drm.ClearKey{ID: "keyid123", Key: "keyval456"}}))
			So(err, ShouldBeNil)
			page := string(out)
			So(page, ShouldContainSubstring, `const manifestUri = "https://cdn.example.com/manifest.mpd";`)
			So(page, ShouldContainSubstring, `const drmConfig = {"clearKeys":{"keyid123":"keyval456"}};`)
			So(page, ShouldContainSubstring, `const authToken = null;`)
			So(page, ShouldContainSubstring, `<script src="`+constant.ShakaPlayerScript+`"></script>`)
			So(page, ShouldContainSubstring, `<title>Main &lt;HD&gt;</title>`)
			So(page, ShouldNotContainSubstring, "registerRequestFilter")
		})

		Convey("An auth token plan should inject the request headers", func() {
			out, err := RenderDash(dashPlan(drm.Config{Kind: drm.KindAuthToken, AuthToken: &drm.AuthToken{Token: "tok"}}))
			So(err, ShouldBeNil)
			page := string(out)
			So(page, ShouldContainSubstring, `const drmConfig = null;`)
			So(page, ShouldContainSubstring, `const authToken = "tok";`)
			So(page, ShouldContainSubstring, "registerRequestFilter")
			So(page, ShouldContainSubstring, `request.headers['X-Auth-Token'] = authToken;`)
		})

		Convey("Rendering should be byte-reproducible", func() {
			config := drm.Builder{Robustness: "SW_SECURE_CRYPTO"}.Build(mo.Some("https://license.example/wv"), mo.Some(true), false)
			a, err := RenderDash(dashPlan(config))
			So(err, ShouldBeNil)
			b, err := RenderDash(dashPlan(config))
			So(err, ShouldBeNil)
			So(cmp.Diff(string(a), string(b)), ShouldBeEmpty)
		})

		Convey("Script-breaking URLs should stay inside the literal", func() {
			plan := dashPlan(drm.None())
			plan.URL = "https://cdn.example.com/a.mpd?x=</script><script>alert(1)"
			out, err := RenderDash(plan)
			So(err, ShouldBeNil)
			So(string(out), ShouldNotContainSubstring, "</script><script>alert")
		})

		Convey("Other categories should be rejected", func() {
			_, err := RenderDash(&dispatch.Plan{Category: provider.SandboxedEmbed})
			So(errors.Is(err, ErrCategory), ShouldBeTrue)
		})
	})
}

func TestSandbox(t *testing.T) {
	Convey("Sandbox", t, func() {
		plan := &dispatch.Plan{
			Category: provider.SandboxedEmbed,
			URL:      "https://vidsrc.to/embed/movie/603?autoplay=1",
			Cleanup:  provider.Builtin().MustLookup(provider.MultiEmbed).Cleanup,
		}

		payload, err := Sandbox(plan)
		So(err, ShouldBeNil)
		So(payload.URL, ShouldEqual, plan.URL)
		So(payload.Rules.Selectors, ShouldContain, "[class*=countdown]")
		So(payload.Script, ShouldContainSubstring, `var selectors = ["[class*=ad]",`)
		So(payload.Script, ShouldContainSubstring, "el.autoplay = true;")

		Convey("Without force media the media block should be left out", func() {
			script, err := CleanupScript(provider.Cleanup{Selectors: []string{".x"}})
			So(err, ShouldBeNil)
			So(script, ShouldContainSubstring, `var selectors = [".x"];`)
			So(script, ShouldNotContainSubstring, "autoplay")
		})

		Convey("Empty rules should render nothing", func() {
			script, err := CleanupScript(provider.Cleanup{})
			So(err, ShouldBeNil)
			So(script, ShouldBeEmpty)
		})

		Convey("Native plans should be rejected", func() {
			_, err := Sandbox(&dispatch.Plan{Category: provider.NativeDirect})
			So(errors.Is(err, ErrCategory), ShouldBeTrue)
		})
	})
}
