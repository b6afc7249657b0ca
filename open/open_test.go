package open

import (
	"testing"

	"github.com/reelcast/reelcast/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCommandLine(t *testing.T) {
	Convey("commandLine", t, func() {
		Convey("The default handler should be used without an app", func() {
			name, args, ok := commandLine(constant.Linux, "https://a.example/?x=1&y=2", "")
			So(ok, ShouldBeTrue)
			So(name, ShouldEqual, "xdg-open")
			So(args, ShouldResemble, []string{"https://a.example/?x=1&y=2"})

			name, _, ok = commandLine(constant.Darwin, "/tmp/page.html", "")
			So(ok, ShouldBeTrue)
			So(name, ShouldEqual, "open")
		})

		Convey("A named app should be launched", func() {
			name, args, ok := commandLine(constant.Linux, "/tmp/page.html", "firefox")
			So(ok, ShouldBeTrue)
			So(name, ShouldEqual, "firefox")
			So(args, ShouldResemble, []string{"/tmp/page.html"})

			_, args, _ = commandLine(constant.Windows, "https://a.example/?x=1&y=2", "chrome")
			So(args[len(args)-1], ShouldEqual, "https://a.example/?x=1^&y=2")
		})

		Convey("Unknown systems should be rejected", func() {
			_, _, ok := commandLine("plan9", "x", "")
			So(ok, ShouldBeFalse)
		})
	})
}
