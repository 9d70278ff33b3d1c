package util

import (
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/tubemux/tubemux/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSanitizeFilename(t *testing.T) {
	Convey("SanitizeFilename", t, func() {
		Convey("Should replace invalid chars", func() {
			So(SanitizeFilename("file:name?.txt"), ShouldEqual, "file_name_.txt")
		})
		Convey("Should collapse underscores", func() {
			So(SanitizeFilename("My  Video / Part 2"), ShouldEqual, "My_Video_Part_2")
		})
		Convey("Should trim separators", func() {
			So(SanitizeFilename("-file-name-"), ShouldEqual, "file-name")
		})
		Convey("Should never keep path separators", func() {
			So(SanitizeFilename("../../etc/passwd"), ShouldEqual, "etc_passwd")
		})
	})
}

func TestEscapePathSeparators(t *testing.T) {
	Convey("EscapePathSeparators", t, func() {
		So(EscapePathSeparators("AC/DC: Live?"), ShouldEqual, "AC_DC: Live?")
		So(EscapePathSeparators(`a\b`), ShouldEqual, "a_b")
		So(EscapePathSeparators(".."), ShouldBeEmpty)
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "video", "videos"), ShouldEqual, "1 video")
		So(Quantify(3, "video", "videos"), ShouldEqual, "3 videos")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("mux"), ShouldEqual, "Mux")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max/Min", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
		So(Max[int](), ShouldEqual, 0)
	})
}

func TestHumanBytes(t *testing.T) {
	Convey("HumanBytes", t, func() {
		So(HumanBytes(512), ShouldEqual, "512 B")
		So(HumanBytes(1536), ShouldEqual, "1.5 KiB")
		So(HumanBytes(5*1024*1024), ShouldEqual, "5.0 MiB")
	})
}

func TestDelete(t *testing.T) {
	Convey("Delete", t, func() {
		fs := filesystem.API()
		lo.Must0(fs.MkdirAll("/scratch/nested", 0o755))
		lo.Must0(fs.WriteFile("/scratch/nested/a.mp4", []byte("x"), 0o644))

		So(Delete("/scratch"), ShouldBeNil)
		So(lo.Must(fs.Exists("/scratch")), ShouldBeFalse)
		So(Delete("/missing"), ShouldNotBeNil)
	})
}
