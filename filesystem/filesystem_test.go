package filesystem

import (
	"io"
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func TestBackend(t *testing.T) {
	Convey("Given the backend switches", t, func() {
		Convey("The OS filesystem is on disk", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
			So(OnDisk(), ShouldBeTrue)
		})

		Convey("The in-memory filesystem is not", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
			So(OnDisk(), ShouldBeFalse)
		})

		Convey("Set installs a wrapper over the active backend", func() {
			SetMemMapFs()
			So(API().WriteFile("/a.txt", []byte("a"), 0o644), ShouldBeNil)

			Set(afero.NewReadOnlyFs(API().Fs))
			So(OnDisk(), ShouldBeFalse)
			So(API().WriteFile("/b.txt", []byte("b"), 0o644), ShouldNotBeNil)

			data, err := API().ReadFile("/a.txt")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "a")

			Set(afero.NewOsFs())
			So(OnDisk(), ShouldBeTrue)
		})

		Convey("Each switch to memory starts empty", func() {
			SetMemMapFs()
			So(API().WriteFile("/a.txt", []byte("a"), 0o644), ShouldBeNil)

			SetMemMapFs()
			exists, err := API().Exists("/a.txt")
			So(err, ShouldBeNil)
			So(exists, ShouldBeFalse)
		})
	})
}

func TestGacheFs(t *testing.T) {
	Convey("Given the in-memory backend", t, func() {
		SetMemMapFs()
		fs := GacheFs{}

		Convey("Files written through the adapter are visible to the backend", func() {
			So(fs.MkdirAll("/cache", os.ModePerm), ShouldBeNil)

			f, err := fs.OpenFile("/cache/history.json", os.O_CREATE|os.O_RDWR, 0o644)
			So(err, ShouldBeNil)
			_, err = io.WriteString(f, `{}`)
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)

			data, err := API().ReadFile("/cache/history.json")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, `{}`)
		})
	})
}
