// Package report produces the machine-readable description of a run.
package report

import (
	"encoding/json"
	"io"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/tubemux/tubemux/constant"
	"github.com/tubemux/tubemux/pipeline"
)

// Mode is the kind of run a report describes.
type Mode string

const (
	ModeVideo    Mode = "video"
	ModePlaylist Mode = "playlist"
)

// Report is written by the --json and --report flags.
type Report struct {
	// RunID identifies the run in logs and reports.
	RunID   string    `json:"run_id" jsonschema:"format=uuid"`
	Version string    `json:"version"`
	Mode    Mode      `json:"mode" jsonschema:"enum=video,enum=playlist"`
	URL     string    `json:"url"`
	Title   string    `json:"title,omitempty"`
	OK      bool      `json:"ok"`
	At      time.Time `json:"at"`

	// Error is set when nothing could be attempted.
	Error *Failure `json:"error,omitempty"`
	Items []*Item  `json:"items"`
}

// Item is the outcome of one video.
type Item struct {
	URL       string   `json:"url"`
	VideoID   string   `json:"video_id,omitempty"`
	Title     string   `json:"title,omitempty"`
	Output    string   `json:"output,omitempty"`
	Subtitles string   `json:"subtitles,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
	Error     *Failure `json:"error,omitempty"`
	// Elapsed is the duration of the run in milliseconds.
	Elapsed int64 `json:"elapsed_ms"`
}

// Failure is a classified pipeline error.
type Failure struct {
	Kind    pipeline.ErrorKind `json:"kind" jsonschema:"enum=connectivity,enum=resolution,enum=selection,enum=fetch,enum=mux,enum=publish"`
	Stage   pipeline.Stage     `json:"stage"`
	Message string             `json:"message"`
}

func newReport(mode Mode, url string) *Report {
	return &Report{
		RunID:   uuid.NewString(),
		Version: constant.Version,
		Mode:    mode,
		URL:     url,
		At:      time.Now(),
		Items:   []*Item{},
	}
}

// FromResult describes a single video run.
func FromResult(result pipeline.Result) *Report {
	r := newReport(ModeVideo, result.URL)
	r.Title = result.Title
	r.OK = result.OK()
	r.Items = append(r.Items, newItem(result))
	return r
}

// FromBatch describes a playlist run. The report is OK when the playlist was resolved,
// failed items are listed with their own errors.
func FromBatch(batch pipeline.BatchResult) *Report {
	r := newReport(ModePlaylist, batch.URL)
	r.Title = batch.Title
	r.Error = newFailure(batch.Err)
	r.Items = append(r.Items, lo.Map(batch.Items, func(result pipeline.Result, _ int) *Item {
		return newItem(result)
	})...)
	r.OK = batch.OK()
	return r
}

func newItem(result pipeline.Result) *Item {
	return &Item{
		URL:       result.URL,
		VideoID:   result.VideoID,
		Title:     result.Title,
		Output:    result.Output,
		Subtitles: result.Subtitles,
		Warnings:  result.Warnings,
		Error:     newFailure(result.Err),
		Elapsed:   result.Elapsed.Milliseconds(),
	}
}

func newFailure(err *pipeline.Error) *Failure {
	if err == nil {
		return nil
	}

	return &Failure{
		Kind:    err.Kind,
		Stage:   err.Stage,
		Message: err.Err.Error(),
	}
}

// Write encodes the report as indented JSON.
func (r *Report) Write(out io.Writer) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// Schema returns the JSON schema of Report.
func Schema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		switch t.Name() {
		case "Report", "Item", "Failure":
			return "report." + t.Name()
		}

		return t.Name()
	}

	return reflector.Reflect(&Report{})
}
