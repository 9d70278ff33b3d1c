package youtube

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kkdai/youtube/v2"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/tubemux/tubemux/source"
)

func TestToStream(t *testing.T) {
	Convey("Given player formats", t, func() {
		Convey("A muxed mp4 format is a progressive video stream", func() {
			stream, ok := toStream(&youtube.Format{
				ItagNo:        22,
				MimeType:      `video/mp4; codecs="avc1.64001F, mp4a.40.2"`,
				QualityLabel:  "720p",
				Bitrate:       1500000,
				Width:         1280,
				Height:        720,
				AudioChannels: 2,
			})

			So(ok, ShouldBeTrue)
			So(stream.Kind, ShouldEqual, source.KindVideo)
			So(stream.Container, ShouldEqual, "mp4")
			So(stream.Progressive, ShouldBeTrue)
			So(stream.Height, ShouldEqual, 720)
			So(stream.Label, ShouldEqual, "720p")
			So(stream.ID, ShouldEqual, 22)
		})

		Convey("An adaptive video format is not progressive", func() {
			stream, ok := toStream(&youtube.Format{
				ItagNo:   137,
				MimeType: `video/mp4; codecs="avc1.640028"`,
				Height:   1080,
			})

			So(ok, ShouldBeTrue)
			So(stream.Progressive, ShouldBeFalse)
			So(stream.Label, ShouldEqual, "1080p")
		})

		Convey("An audio format falls back to the average bitrate", func() {
			stream, ok := toStream(&youtube.Format{
				ItagNo:         140,
				MimeType:       `audio/mp4; codecs="mp4a.40.2"`,
				AverageBitrate: 128000,
				AudioChannels:  2,
			})

			So(ok, ShouldBeTrue)
			So(stream.Kind, ShouldEqual, source.KindAudio)
			So(stream.Bitrate, ShouldEqual, 128000)
			So(stream.Label, ShouldEqual, "128kbps")
			So(stream.Extension(), ShouldEqual, "m4a")
		})

		Convey("Unknown media types are skipped", func() {
			_, ok := toStream(&youtube.Format{MimeType: "text/plain"})
			So(ok, ShouldBeFalse)

			_, ok = toStream(&youtube.Format{MimeType: ""})
			So(ok, ShouldBeFalse)
		})
	})
}

func TestToCaption(t *testing.T) {
	Convey("Caption tracks keep their language and origin", t, func() {
		manual := toCaption(youtube.CaptionTrack{LanguageCode: "fr", BaseURL: "https://example.com/tt?lang=fr"})
		So(manual.Language, ShouldEqual, "fr")
		So(manual.Generated, ShouldBeFalse)

		auto := toCaption(youtube.CaptionTrack{LanguageCode: "en", Kind: "asr"})
		So(auto.Generated, ShouldBeTrue)
	})
}

func TestCaptionURL(t *testing.T) {
	Convey("captionURL requests WebVTT", t, func() {
		u, err := captionURL("https://www.youtube.com/api/timedtext?v=abc&lang=fr&fmt=srv3")
		So(err, ShouldBeNil)
		So(u, ShouldContainSubstring, "fmt=vtt")
		So(u, ShouldNotContainSubstring, "srv3")
		So(u, ShouldContainSubstring, "lang=fr")

		_, err = captionURL("://bad")
		So(err, ShouldNotBeNil)
	})
}

func TestOpenCaption(t *testing.T) {
	Convey("Given a caption server", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("lang") != "fr" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = io.WriteString(w, "WEBVTT\n\n00:00.000 --> 00:01.000\nBonjour\n")
		}))
		defer server.Close()

		src := newSource(server.Client(), server.Client())

		Convey("It returns the track body", func() {
			rc, err := src.OpenCaption(context.Background(), &source.Caption{URL: server.URL + "/tt?lang=fr"})
			So(err, ShouldBeNil)
			defer rc.Close()

			body, _ := io.ReadAll(rc)
			So(string(body), ShouldStartWith, "WEBVTT")
		})

		Convey("It reports unexpected statuses", func() {
			_, err := src.OpenCaption(context.Background(), &source.Caption{URL: server.URL + "/tt?lang=de"})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestOpenStreamRequiresResolvedStream(t *testing.T) {
	Convey("OpenStream rejects foreign streams", t, func() {
		src := newSource(http.DefaultClient, http.DefaultClient)
		_, _, err := src.OpenStream(context.Background(), &source.Stream{ID: 18})
		So(err, ShouldNotBeNil)
	})
}

func TestWrap(t *testing.T) {
	Convey("wrap flags restricted videos", t, func() {
		err := wrap(youtube.ErrVideoPrivate, "fetching video metadata")
		So(errors.Is(err, ErrRestricted), ShouldBeTrue)
		So(errors.Is(err, youtube.ErrVideoPrivate), ShouldBeTrue)

		plain := wrap(io.ErrUnexpectedEOF, "fetching playlist")
		So(errors.Is(plain, ErrRestricted), ShouldBeFalse)
	})
}
