package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/tubemux/tubemux/pipeline"
)

func TestFromResult(t *testing.T) {
	Convey("Given a published video", t, func() {
		result := pipeline.Result{
			URL:       "https://www.youtube.com/watch?v=abc",
			VideoID:   "abc",
			Title:     "A title",
			Output:    "downloads/A title.mp4",
			Subtitles: "fr",
			Elapsed:   1500 * time.Millisecond,
		}

		Convey("The report holds one successful item", func() {
			r := FromResult(result)
			So(r.Mode, ShouldEqual, ModeVideo)
			So(r.OK, ShouldBeTrue)
			So(r.Title, ShouldEqual, "A title")
			So(r.Items, ShouldHaveLength, 1)
			So(r.Items[0].Error, ShouldBeNil)
			So(r.Items[0].Elapsed, ShouldEqual, 1500)

			_, err := uuid.Parse(r.RunID)
			So(err, ShouldBeNil)
		})

		Convey("Every report has its own run id", func() {
			So(FromResult(result).RunID, ShouldNotEqual, FromResult(result).RunID)
		})
	})

	Convey("Given a failed video", t, func() {
		result := pipeline.Result{
			URL: "https://www.youtube.com/watch?v=abc",
			Err: &pipeline.Error{Kind: pipeline.KindMux, Stage: pipeline.StageMux, Err: errors.New("exit status 1")},
		}

		Convey("The failure is classified", func() {
			r := FromResult(result)
			So(r.OK, ShouldBeFalse)
			So(r.Items[0].Error, ShouldResemble, &Failure{Kind: pipeline.KindMux, Stage: pipeline.StageMux, Message: "exit status 1"})
		})
	})
}

func TestFromBatch(t *testing.T) {
	Convey("Given a playlist with one failing item", t, func() {
		batch := pipeline.BatchResult{
			URL:   "https://www.youtube.com/playlist?list=PL1",
			Title: "Playlist",
			Items: []pipeline.Result{
				{URL: "a", Output: "downloads/a.mp4"},
				{URL: "b", Err: &pipeline.Error{Kind: pipeline.KindSelection, Stage: pipeline.StageVideo, Err: errors.New("no video stream")}},
			},
		}

		Convey("Items keep their order and the failed one does not fail the report", func() {
			r := FromBatch(batch)
			So(r.Mode, ShouldEqual, ModePlaylist)
			So(r.OK, ShouldBeTrue)
			So(r.Error, ShouldBeNil)
			So(r.Items, ShouldHaveLength, 2)
			So(r.Items[0].URL, ShouldEqual, "a")
			So(r.Items[1].Error.Kind, ShouldEqual, pipeline.KindSelection)
		})
	})

	Convey("Given an unresolved playlist", t, func() {
		batch := pipeline.BatchResult{
			URL: "https://www.youtube.com/playlist?list=PL1",
			Err: &pipeline.Error{Kind: pipeline.KindConnectivity, Stage: pipeline.StageConnectivity, Err: pipeline.ErrUnreachable},
		}

		Convey("The report carries the error and no items", func() {
			r := FromBatch(batch)
			So(r.OK, ShouldBeFalse)
			So(r.Error.Kind, ShouldEqual, pipeline.KindConnectivity)
			So(r.Items, ShouldBeEmpty)
		})
	})
}

func TestWrite(t *testing.T) {
	Convey("Given a report", t, func() {
		r := FromResult(pipeline.Result{URL: "https://www.youtube.com/watch?v=abc", Output: "out.mp4"})

		Convey("It is written as JSON", func() {
			var buf bytes.Buffer
			So(r.Write(&buf), ShouldBeNil)

			var decoded map[string]any
			So(json.Unmarshal(buf.Bytes(), &decoded), ShouldBeNil)
			So(decoded["mode"], ShouldEqual, "video")
			So(decoded["ok"], ShouldEqual, true)
			So(decoded, ShouldNotContainKey, "error")
		})
	})
}

func TestSchema(t *testing.T) {
	Convey("The schema describes the report", t, func() {
		data, err := json.Marshal(Schema())
		So(err, ShouldBeNil)
		So(string(data), ShouldContainSubstring, "report.Report")
		So(string(data), ShouldContainSubstring, "run_id")
		So(string(data), ShouldContainSubstring, "elapsed_ms")
	})
}
