package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/reelcast/reelcast/dispatch"
	"github.com/reelcast/reelcast/drm"
	"github.com/reelcast/reelcast/filesystem"
	"github.com/reelcast/reelcast/key"
	"github.com/reelcast/reelcast/provider"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestParseValue(t *testing.T) {
	Convey("parseValue should follow the type of the default", t, func() {
		v, err := parseValue(key.FallbackDefaultMaxAttempts, []string{"5"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, 5)

		v, err = parseValue(key.HistorySaveOnPlay, []string{"false"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, false)

		v, err = parseValue(key.ServersPreferred, []string{"vidsrc", "youtube"})
		So(err, ShouldBeNil)
		So(v, ShouldResemble, []string{"vidsrc", "youtube"})

		Convey("Durations and player names should be validated", func() {
			_, err := parseValue(key.NavigationLoadTimeout, []string{"soon"})
			So(err, ShouldNotBeNil)

			v, err := parseValue(key.NavigationLoadTimeout, []string{"45s"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "45s")

			_, err = parseValue(key.Player, []string{"vlc"})
			So(err, ShouldNotBeNil)
		})

		Convey("A missing value should be an error", func() {
			_, err := parseValue(key.Player, nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestPrintPlan(t *testing.T) {
	Convey("Given a plan", t, func() {
		plan := &dispatch.Plan{
			Category:    provider.DashDrmWebPlayer,
			URL:         "https://cdn.example.com/stream.mpd",
			Container:   provider.DASH,
			DRM:         drm.Config{Kind: drm.KindClearKey, ClearKey: &drm.ClearKey{ID: "0123", Key: "abcd"}},
			Provider:    provider.DashManifest,
			ServerName:  "server 1",
			ServerIndex: 0,
			Warnings:    []error{drm.ErrMalformedLicense},
		}

		Convey("JSON output should carry warnings as text", func() {
			var buf bytes.Buffer
			So(printPlan(&buf, plan, true), ShouldBeNil)

			var view map[string]any
			So(json.Unmarshal(buf.Bytes(), &view), ShouldBeNil)
			So(view["url"], ShouldEqual, plan.URL)
			So(view["warnings"], ShouldResemble, []any{"malformed license"})
			So(view["drm"].(map[string]any)["kind"], ShouldEqual, "clearkey")
		})

		Convey("Text output should name the server and the key system", func() {
			var buf bytes.Buffer
			So(printPlan(&buf, plan, false), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "server 1")
			So(buf.String(), ShouldContainSubstring, "clearkey 0123")
		})
	})
}
