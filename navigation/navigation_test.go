package navigation

import (
	"testing"
	"time"

	"github.com/reelcast/reelcast/provider"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/goleak"
)

func options() Options {
	return Options{MaxRedirects: 3, LoadTimeout: 30 * time.Second, AggregatorLoadTimeout: 15 * time.Second}
}

func TestRules(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	Convey("Given a session on a trusted provider", t, func() {
		s := NewSession(provider.Builtin(), "https://vidsrc.to/embed/movie/603", options())
		defer s.Close()

		Convey("The block list should win even on the origin host", func() {
			for _, target := range []string{
				"intent://open#Intent;end",
				"MEGA://file/abc",
				"https://play.google.com/store/apps/details?id=x",
				"https://vidsrc.to/download/603",
				"https://vidsrc.to/watch?action=download",
			} {
				d := s.Evaluate(target)
				So(d.Allowed, ShouldBeFalse)
				So(d.Rule, ShouldEqual, RuleBlockList)
				So(d.Err, ShouldEqual, ErrNavigationBlocked)
			}
		})

		Convey("The same host should be allowed without counting", func() {
			So(s.ShouldAllow("https://vidsrc.to/embed/movie/604"), ShouldBeTrue)
			So(s.RedirectCount(), ShouldEqual, 0)
		})

		Convey("Family members and the registrable domain should be allowed as hops", func() {
			d := s.Evaluate("https://embed.su/embed/movie/603")
			So(d.Allowed, ShouldBeTrue)
			So(d.Rule, ShouldEqual, RuleFamily)
			So(d.Hop, ShouldBeTrue)

			So(s.ShouldAllow("https://cdn.vidsrc.to/player"), ShouldBeTrue)
			So(s.RedirectCount(), ShouldEqual, 2)
		})

		Convey("Unrelated hosts should be denied", func() {
			d := s.Evaluate("https://ads.example.com/click")
			So(d.Allowed, ShouldBeFalse)
			So(d.Rule, ShouldEqual, RuleDefault)
			So(s.RedirectCount(), ShouldEqual, 0)
		})

		Convey("The fourth hop should tear the session down", func() {
			var terminal []error
			s.onTerminal = func(err error) { terminal = append(terminal, err) }

			for _, target := range []string{
				"https://embed.su/a",
				"https://vidlink.pro/b",
				"https://player.autoembed.cc/c",
			} {
				So(s.ShouldAllow(target), ShouldBeTrue)
			}
			So(s.RedirectCount(), ShouldEqual, 3)

			d := s.Evaluate("https://vidsrc.xyz/d")
			So(d.Allowed, ShouldBeFalse)
			So(d.Err, ShouldEqual, ErrRedirectLoopExceeded)
			So(s.State(), ShouldEqual, TornDown)
			So(s.Err(), ShouldEqual, ErrRedirectLoopExceeded)
			So(terminal, ShouldResemble, []error{ErrRedirectLoopExceeded})

			Convey("No rule should be evaluated afterwards", func() {
				d := s.Evaluate("https://player.autoembed.cc/c")
				So(d.Allowed, ShouldBeFalse)
				So(d.Err, ShouldEqual, ErrSessionClosed)
				So(s.RedirectCount(), ShouldEqual, 4)
			})
		})
	})

	Convey("Given a session that hopped to another family member", t, func() {
		registry, err := provider.NewRegistry(
			&provider.Profile{Provider: "alpha", Hosts: []string{"alpha.example"}, Category: provider.SandboxedEmbed, Family: "shared", Trusted: true},
			&provider.Profile{Provider: "beta", Hosts: []string{"play.beta.example"}, Category: provider.SandboxedEmbed, Family: "shared"},
		)
		So(err, ShouldBeNil)

		s := NewSession(registry, "https://alpha.example/embed/1", options())
		defer s.Close()
		So(s.ShouldAllow("https://play.beta.example/embed/1"), ShouldBeTrue)

		Convey("The registrable domain of that member should not be trusted", func() {
			d := s.Evaluate("https://ads.beta.example/click")
			So(d.Allowed, ShouldBeFalse)
			So(d.Rule, ShouldEqual, RuleDefault)
			So(s.RedirectCount(), ShouldEqual, 1)
		})

		Convey("The origin's registrable domain should still be", func() {
			So(s.ShouldAllow("https://cdn.alpha.example/player"), ShouldBeTrue)
			So(s.RedirectCount(), ShouldEqual, 2)
		})
	})

	Convey("Given a session on an untrusted provider", t, func() {
		s := NewSession(provider.Builtin(), "https://vidjoy.pro/embed/movie/603", options())
		defer s.Close()

		So(s.ShouldAllow("https://embed.su/a"), ShouldBeFalse)
		So(s.ShouldAllow("https://cdn.vidjoy.pro/a"), ShouldBeFalse)
		So(s.ShouldAllow("https://vidjoy.pro/embed/movie/604"), ShouldBeTrue)
	})

	Convey("Given a session on the aggregator", t, func() {
		s := NewSession(provider.Builtin(), "https://multiembed.mov/directstream.php?video_id=603&tmdb=1", options())
		defer s.Close()

		Convey("It should use the shorter load timeout", func() {
			So(s.Timeout(), ShouldEqual, 15*time.Second)
		})

		Convey("It should hop to its downstream host", func() {
			d := s.Evaluate("https://streamingnow.mov/player/603")
			So(d.Allowed, ShouldBeTrue)
			So(d.Rule, ShouldEqual, RuleAggregator)
			So(s.RedirectCount(), ShouldEqual, 1)

			So(s.ShouldAllow("https://random.example/"), ShouldBeFalse)
		})
	})

	Convey("Given a session on an unknown origin", t, func() {
		s := NewSession(provider.Builtin(), "https://example.com/watch", Options{})
		defer s.Close()

		So(s.Timeout(), ShouldEqual, 30*time.Second)
		So(s.ShouldAllow("https://example.com/next"), ShouldBeTrue)
		So(s.ShouldAllow("https://cdn.example.com/next"), ShouldBeFalse)
		So(s.ShouldAllow("not a url"), ShouldBeFalse)
	})
}

func TestWatchdog(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	Convey("Given a session with a short load timeout", t, func() {
		fired := make(chan error, 1)
		opts := Options{LoadTimeout: 20 * time.Millisecond, OnTerminal: func(err error) { fired <- err }}
		s := NewSession(provider.Builtin(), "https://example.com/watch", opts)
		defer s.Close()

		Convey("A load that never finishes should time out", func() {
			s.OnLoadStarted()
			select {
			case err := <-fired:
				So(err, ShouldEqual, ErrLoadTimeout)
			case <-time.After(2 * time.Second):
				So("watchdog did not fire", ShouldBeEmpty)
			}
			So(s.State(), ShouldEqual, TornDown)
			So(s.Err(), ShouldEqual, ErrLoadTimeout)
		})

		Convey("A finished load should never time out", func() {
			s.OnLoadStarted()
			s.OnLoadFinished()
			time.Sleep(80 * time.Millisecond)
			So(fired, ShouldBeEmpty)
			So(s.State(), ShouldEqual, Loaded)
		})

		Convey("A restarted load should rearm the watchdog", func() {
			s.OnLoadStarted()
			s.OnLoadStarted()
			s.OnLoadFinished()
			time.Sleep(80 * time.Millisecond)
			So(fired, ShouldBeEmpty)
		})

		Convey("A closed session should never time out", func() {
			s.OnLoadStarted()
			s.Close()
			time.Sleep(80 * time.Millisecond)
			So(fired, ShouldBeEmpty)
			So(s.State(), ShouldEqual, TornDown)
			So(s.Err(), ShouldBeNil)

			s.OnLoadStarted()
			So(s.State(), ShouldEqual, TornDown)
		})

		Convey("A renderer timeout should end a loading session", func() {
			s.OnLoadStarted()
			s.OnTimeout()
			So(<-fired, ShouldEqual, ErrLoadTimeout)
			So(s.State(), ShouldEqual, TornDown)
		})

		Convey("A renderer timeout after load should be ignored", func() {
			s.OnLoadStarted()
			s.OnLoadFinished()
			s.OnTimeout()
			So(fired, ShouldBeEmpty)
			So(s.State(), ShouldEqual, Loaded)
		})
	})
}
