package version

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tubemux/tubemux/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestCompare(t *testing.T) {
	Convey("Compare", t, func() {
		cmp, err := Compare("0.3.1", "v0.3.0")
		So(err, ShouldBeNil)
		So(cmp, ShouldEqual, 1)

		cmp, _ = Compare("0.9.9", "1.0.0")
		So(cmp, ShouldEqual, -1)

		cmp, _ = Compare("1.0.0", "1.0.0")
		So(cmp, ShouldEqual, 0)

		_, err = Compare("latest", "1.0.0")
		So(err, ShouldNotBeNil)

		Convey("Missing components count as zero", func() {
			cmp, err := Compare("1.2", "1.2.0")
			So(err, ShouldBeNil)
			So(cmp, ShouldEqual, 0)
		})

		Convey("Pre-releases come before their release", func() {
			cmp, _ := Compare("1.0.0-rc1", "1.0.0")
			So(cmp, ShouldEqual, -1)

			cmp, _ = Compare("1.0.0-rc2", "1.0.0-rc1")
			So(cmp, ShouldEqual, 1)
		})

		Convey("Build metadata is ignored", func() {
			cmp, _ := Compare("1.0.0+abc", "1.0.0")
			So(cmp, ShouldEqual, 0)
		})
	})
}

func TestFetchLatest(t *testing.T) {
	Convey("Given a release endpoint", t, func() {
		ctx := context.Background()

		Convey("It strips the v prefix of the tag", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"tag_name":"v1.2.3"}`))
			}))
			defer server.Close()

			ver, err := fetchLatest(ctx, server.URL)
			So(err, ShouldBeNil)
			So(ver, ShouldEqual, "1.2.3")
		})

		Convey("It rejects empty tags", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{}`))
			}))
			defer server.Close()

			_, err := fetchLatest(ctx, server.URL)
			So(err, ShouldNotBeNil)
		})

		Convey("It reports rate limiting", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			}))
			defer server.Close()

			_, err := fetchLatest(ctx, server.URL)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestNotice(t *testing.T) {
	Convey("Given the running version", t, func() {
		Convey("A newer release produces a notice with its link", func() {
			msg, ok := notice("1.0.0", "0.3.1")
			So(ok, ShouldBeTrue)
			So(msg, ShouldContainSubstring, "New version is available")
			So(msg, ShouldContainSubstring, "releases/tag/v1.0.0")
		})

		Convey("The same or an older release is ignored", func() {
			_, ok := notice("0.3.1", "0.3.1")
			So(ok, ShouldBeFalse)

			_, ok = notice("0.2.0", "0.3.1")
			So(ok, ShouldBeFalse)
		})

		Convey("An unparsable release is ignored", func() {
			_, ok := notice("nightly", "0.3.1")
			So(ok, ShouldBeFalse)
		})
	})
}
