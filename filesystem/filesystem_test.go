package filesystem

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})
	})
}

func TestWriteAtomic(t *testing.T) {
	Convey("Given an in-memory backend", t, func() {
		SetMemMapFs()

		Convey("WriteAtomic should leave only the target file", func() {
			So(WriteAtomic("/page.html", []byte("<html></html>")), ShouldBeNil)

			data, err := API().ReadFile("/page.html")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "<html></html>")

			exists, err := API().Exists("/page.html.tmp")
			So(err, ShouldBeNil)
			So(exists, ShouldBeFalse)
		})
	})
}
