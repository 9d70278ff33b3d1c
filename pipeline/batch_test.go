package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/tubemux/tubemux/filesystem"
	"github.com/tubemux/tubemux/muxer/muxertest"
	"github.com/tubemux/tubemux/source"
	"github.com/tubemux/tubemux/source/sourcetest"
)

const playlistURL = "https://www.youtube.com/playlist?list=PL1"

func TestRunPlaylist(t *testing.T) {
	Convey("Given a playlist of three videos where the second has no usable video stream", t, func() {
		fs := filesystem.API()
		lo.Must0(fs.RemoveAll("/downloads"))

		ctx := context.Background()
		src := sourcetest.New()
		good := func() []*source.Stream {
			return []*source.Stream{sourcetest.Progressive(22, 720), sourcetest.Audio(140, 128000)}
		}

		src.AddVideo("u1", "First", good())
		src.AddVideo("u2", "Second", []*source.Stream{sourcetest.Audio(140, 128000)})
		src.AddVideo("u3", "Third", good())
		src.AddPlaylist(playlistURL, "Mix", "u1", "u2", "u3")

		mux := &muxertest.Muxer{}
		p, events := newTestPipeline(src, mux, true)

		Convey("It attempts every entry in order and still reports success", func() {
			batch := p.RunPlaylist(ctx, playlistURL)

			So(batch.OK(), ShouldBeTrue)
			So(batch.Title, ShouldEqual, "Mix")
			So(src.Resolved, ShouldResemble, []string{"u1", "u2", "u3"})
			So(batch.Items, ShouldHaveLength, 3)

			So(batch.Items[0].OK(), ShouldBeTrue)
			So(batch.Items[1].Err.Kind, ShouldEqual, KindSelection)
			So(batch.Items[2].OK(), ShouldBeTrue)
			So(batch.Items[2].Output, ShouldEqual, "/downloads/Third.mp4")

			So(batch.Succeeded(), ShouldHaveLength, 2)
			So(batch.Failed(), ShouldHaveLength, 1)
		})

		Convey("A later success leaves the scratch directory of an earlier failure alone", func() {
			batch := p.RunPlaylist(ctx, playlistURL)

			failed := batch.Items[1]
			So(failed.Scratch, ShouldEqual, VideoScratchDir("/downloads", failed.VideoID))
			So(lo.Must(fs.DirExists(failed.Scratch)), ShouldBeTrue)
			So(lo.Must(fs.DirExists(batch.Items[2].Scratch)), ShouldBeFalse)
			So(batch.Items[2].Scratch, ShouldBeEmpty)
		})

		Convey("Entry events carry their playlist position", func() {
			p.RunPlaylist(ctx, playlistURL)

			third := lo.Filter(*events, func(e Event, _ int) bool { return e.Item == 3 })
			So(third, ShouldNotBeEmpty)
			So(third[0].Items, ShouldEqual, 3)
			So(third[len(third)-1].Stage, ShouldEqual, StageDone)
		})

		Convey("An unreachable network stops before resolving the playlist", func() {
			offline, _ := newTestPipeline(src, mux, false)
			batch := offline.RunPlaylist(ctx, playlistURL)

			So(batch.OK(), ShouldBeFalse)
			So(batch.Err.Kind, ShouldEqual, KindConnectivity)
			So(batch.Items, ShouldBeEmpty)
			So(src.Resolved, ShouldBeEmpty)
		})

		Convey("An unknown playlist is a resolution failure", func() {
			batch := p.RunPlaylist(ctx, "https://www.youtube.com/playlist?list=missing")

			So(batch.OK(), ShouldBeFalse)
			So(batch.Err.Kind, ShouldEqual, KindResolution)
		})

		Convey("A failing muxer fails every item but not the batch", func() {
			mux.Err = errors.New("ffmpeg exited with code 1")
			batch := p.RunPlaylist(ctx, playlistURL)

			So(batch.OK(), ShouldBeTrue)
			So(batch.Failed(), ShouldHaveLength, 3)
		})

		Convey("Two entries failing to mux each keep their own artifacts", func() {
			small := sourcetest.Progressive(18, 360)
			large := sourcetest.Progressive(22, 720)
			src.AddVideo("u1", "First", []*source.Stream{small, sourcetest.Audio(140, 128000)})
			src.AddVideo("u2", "Second", []*source.Stream{large, sourcetest.Audio(140, 128000)})
			src.AddPlaylist(playlistURL, "Mix", "u1", "u2")
			mux.Err = errors.New("ffmpeg exited with code 1")

			batch := p.RunPlaylist(ctx, playlistURL)
			So(batch.Failed(), ShouldHaveLength, 2)

			first, second := batch.Items[0], batch.Items[1]
			So(first.Err.Kind, ShouldEqual, KindMux)
			So(second.Err.Kind, ShouldEqual, KindMux)
			So(first.Scratch, ShouldNotEqual, second.Scratch)

			So(lo.Must(fs.ReadFile(filepath.Join(first.Scratch, "video.mp4"))), ShouldResemble, sourcetest.Payload(small))
			So(lo.Must(fs.ReadFile(filepath.Join(second.Scratch, "video.mp4"))), ShouldResemble, sourcetest.Payload(large))
		})

		Convey("Without a connectivity check the batch fails instead of panicking", func() {
			p.Probe = nil
			batch := p.RunPlaylist(ctx, playlistURL)

			So(batch.OK(), ShouldBeFalse)
			So(batch.Err.Kind, ShouldEqual, KindConnectivity)
			So(batch.Err.Stage, ShouldEqual, StageConnectivity)
			So(src.Resolved, ShouldBeEmpty)

			last := (*events)[len(*events)-1]
			So(last.Err, ShouldNotBeNil)
		})

		Convey("A panicking playlist resolver is a resolution failure", func() {
			src.Panic[playlistURL] = true
			batch := p.RunPlaylist(ctx, playlistURL)

			So(batch.OK(), ShouldBeFalse)
			So(batch.Err.Kind, ShouldEqual, KindResolution)
			So(batch.Err.Stage, ShouldEqual, StageMetadata)
			So(batch.Items, ShouldBeEmpty)
		})

		Convey("A panicking observer does not stop the batch", func() {
			p.Observer = func(Event) { panic("observer exploded") }
			batch := p.RunPlaylist(ctx, playlistURL)

			So(batch.OK(), ShouldBeTrue)
			So(batch.Items, ShouldHaveLength, 3)
			So(batch.Succeeded(), ShouldHaveLength, 2)
		})

		Convey("A cancelled context stops before the next entry", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			batch := p.RunPlaylist(cancelled, playlistURL)
			So(batch.OK(), ShouldBeTrue)
			So(batch.Items, ShouldBeEmpty)
		})
	})
}
