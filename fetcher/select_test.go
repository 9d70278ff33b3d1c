package fetcher

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tubemux/tubemux/source"
	"github.com/tubemux/tubemux/source/sourcetest"
)

func TestSelectVideo(t *testing.T) {
	Convey("Given candidate video streams", t, func() {
		adaptive := sourcetest.Progressive(137, 2160)
		adaptive.Progressive = false
		webm := sourcetest.Progressive(43, 1440)
		webm.Container = "webm"

		streams := []*source.Stream{
			sourcetest.Progressive(18, 360),
			adaptive,
			webm,
			sourcetest.Progressive(22, 720),
			sourcetest.Audio(140, 128000),
		}

		Convey("It picks the highest progressive stream of the target container", func() {
			stream, err := SelectVideo(streams, "mp4")
			So(err, ShouldBeNil)
			So(stream.ID, ShouldEqual, 22)
		})

		Convey("It matches the container case-insensitively", func() {
			stream, err := SelectVideo(streams, "WEBM")
			So(err, ShouldBeNil)
			So(stream.ID, ShouldEqual, 43)
		})

		Convey("It breaks ties on bitrate then format ID", func() {
			a, b, c := sourcetest.Progressive(59, 720), sourcetest.Progressive(22, 720), sourcetest.Progressive(95, 720)
			a.Bitrate, b.Bitrate, c.Bitrate = 2000, 1000, 2000

			first, _ := SelectVideo([]*source.Stream{a, b, c}, "mp4")
			second, _ := SelectVideo([]*source.Stream{c, b, a}, "mp4")
			So(first.ID, ShouldEqual, 59)
			So(second.ID, ShouldEqual, 59)
		})

		Convey("It fails with a selection error when nothing qualifies", func() {
			_, err := SelectVideo([]*source.Stream{adaptive, sourcetest.Audio(140, 128000)}, "mp4")
			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrNoVideoStream), ShouldBeTrue)

			var selection *SelectionError
			So(errors.As(err, &selection), ShouldBeTrue)
			So(selection.Kind, ShouldEqual, source.KindVideo)
		})

		Convey("An empty list is a selection error too", func() {
			_, err := SelectVideo(nil, "mp4")
			So(errors.Is(err, ErrNoVideoStream), ShouldBeTrue)
		})
	})
}

func TestSelectAudio(t *testing.T) {
	Convey("Given candidate audio streams", t, func() {
		Convey("It picks the highest bitrate audio-only stream", func() {
			stream, err := SelectAudio([]*source.Stream{
				sourcetest.Audio(139, 48000),
				sourcetest.Audio(251, 160000),
				sourcetest.Audio(140, 128000),
				sourcetest.Progressive(18, 360),
			})
			So(err, ShouldBeNil)
			So(stream.ID, ShouldEqual, 251)
		})

		Convey("It ignores the audio of progressive streams", func() {
			progressive := sourcetest.Progressive(18, 360)
			progressive.Bitrate = 900000

			stream, err := SelectAudio([]*source.Stream{progressive, sourcetest.Audio(140, 128000)})
			So(err, ShouldBeNil)
			So(stream.ID, ShouldEqual, 140)
		})

		Convey("It resolves equal bitrates to the lowest format ID", func() {
			stream, _ := SelectAudio([]*source.Stream{sourcetest.Audio(251, 128000), sourcetest.Audio(140, 128000)})
			So(stream.ID, ShouldEqual, 140)
		})

		Convey("It fails with a selection error when nothing qualifies", func() {
			_, err := SelectAudio([]*source.Stream{sourcetest.Progressive(22, 720)})
			So(errors.Is(err, ErrNoAudioStream), ShouldBeTrue)
		})
	})
}

func TestSelectCaption(t *testing.T) {
	Convey("Given caption tracks", t, func() {
		fr, frFR, en, de := sourcetest.Caption("fr"), sourcetest.Caption("fr-FR"), sourcetest.Caption("en"), sourcetest.Caption("de")

		Convey("The exact preferred language wins", func() {
			c := SelectCaption([]*source.Caption{en, frFR, fr}, "fr", "fr-FR")
			So(c.MustGet(), ShouldEqual, fr)
		})

		Convey("The regional variant comes second", func() {
			c := SelectCaption([]*source.Caption{en, frFR}, "fr", "fr-FR")
			So(c.MustGet(), ShouldEqual, frFR)
		})

		Convey("Any other track is the last resort", func() {
			c := SelectCaption([]*source.Caption{en, de}, "fr", "fr-FR")
			So(c.MustGet(), ShouldEqual, de)
		})

		Convey("Uploaded tracks beat generated ones", func() {
			auto := sourcetest.Caption("fr")
			auto.Generated = true
			manual := sourcetest.Caption("fr")

			c := SelectCaption([]*source.Caption{auto, manual}, "fr", "fr-FR")
			So(c.MustGet(), ShouldEqual, manual)
		})

		Convey("No tracks yields none", func() {
			So(SelectCaption(nil, "fr", "fr-FR").IsAbsent(), ShouldBeTrue)
		})
	})
}
