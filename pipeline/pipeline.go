// Package pipeline sequences connectivity check, fetch, mux, publish and cleanup for
// single videos and whole playlists.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"github.com/tubemux/tubemux/constant"
	"github.com/tubemux/tubemux/fetcher"
	"github.com/tubemux/tubemux/filesystem"
	"github.com/tubemux/tubemux/key"
	"github.com/tubemux/tubemux/log"
	"github.com/tubemux/tubemux/muxer"
	"github.com/tubemux/tubemux/network"
	"github.com/tubemux/tubemux/publish"
	"github.com/tubemux/tubemux/source"
)

// Options configure a Pipeline.
type Options struct {
	// OutputDir receives published files. The scratch directory lives inside it.
	OutputDir         string
	SanitizeFilenames bool

	ProbeURL     string
	ProbeTimeout time.Duration

	Fetch fetcher.Options
}

// OptionsFromConfig reads the options from the configuration.
func OptionsFromConfig() Options {
	return Options{
		OutputDir:         viper.GetString(key.DownloadsDir),
		SanitizeFilenames: viper.GetBool(key.DownloadsSanitizeFilenames),
		ProbeURL:          viper.GetString(key.NetworkProbeURL),
		ProbeTimeout:      time.Duration(viper.GetInt(key.NetworkProbeTimeout)) * time.Second,
		Fetch:             fetcher.OptionsFromConfig(),
	}
}

// ScratchDir returns the scratch directory used for outputDir.
func ScratchDir(outputDir string) string {
	return filepath.Join(outputDir, constant.ScratchDir)
}

// Pipeline downloads, muxes and publishes videos one at a time.
type Pipeline struct {
	Source   source.Source
	Muxer    muxer.Muxer
	Probe    network.Prober
	Options  Options
	Observer Observer
}

// New returns a Pipeline using ffmpeg and the configured connectivity probe.
func New(src source.Source, options Options) *Pipeline {
	if options.OutputDir == "" {
		options.OutputDir = constant.DownloadsDir
	}
	if options.ProbeURL == "" {
		options.ProbeURL = constant.ProbeURL
	}
	if options.ProbeTimeout <= 0 {
		options.ProbeTimeout = constant.ProbeTimeout
	}

	return &Pipeline{
		Source:  src,
		Muxer:   muxer.NewFFmpeg(),
		Probe:   network.NewProber(options.ProbeURL, options.ProbeTimeout),
		Options: options,
	}
}

// Result is the outcome of one video.
type Result struct {
	URL     string
	VideoID string
	Title   string

	// Output is the published file, set on success only.
	Output string
	// Scratch is the per-video scratch directory. It still exists when the run
	// failed or cleanup did not go through.
	Scratch string
	// Subtitles is the language of the embedded caption track, empty without one.
	Subtitles string

	Warnings []string
	Err      *Error
	Elapsed  time.Duration
}

// OK reports whether the video was published.
func (r Result) OK() bool {
	return r.Err == nil
}

// Run processes a single video. It never panics and never returns a raw error:
// every failure is classified on Result.Err.
func (p *Pipeline) Run(ctx context.Context, url string) Result {
	started := time.Now()

	r := &run{Pipeline: p, result: Result{URL: url}, log: log.WithFields(log.Fields{"url": url})}
	r.execute(ctx)
	r.result.Elapsed = time.Since(started)

	if r.result.OK() {
		r.log.Infof("published %s in %s", r.result.Output, r.result.Elapsed.Round(time.Millisecond))
	} else {
		r.log.WithFields(log.Fields{"kind": r.result.Err.Kind}).Errorf("%s", r.result.Err)
	}

	return r.result
}

// run holds the state of one Pipeline.Run call.
type run struct {
	*Pipeline

	stage  Stage
	result Result
	log    *log.Entry
}

func (r *run) enter(stage Stage, detail string) {
	r.stage = stage
	r.log.WithFields(log.Fields{"stage": stage}).Debugf("%s", detail)
	r.emit(Event{Stage: stage, Detail: detail})
}

func (r *run) fail(kind ErrorKind, err error) {
	r.result.Err = &Error{Kind: kind, Stage: r.stage, Err: err}
	r.emit(Event{Stage: r.stage, Detail: err.Error(), Err: r.result.Err})
}

func (r *run) warn(detail string) {
	r.result.Warnings = append(r.result.Warnings, detail)
	r.log.WithFields(log.Fields{"stage": r.stage}).Warnf("%s", detail)
	r.emit(Event{Stage: r.stage, Detail: detail, Warning: true})
}

// emit hands event to the observer. A panicking observer is logged and ignored.
func (p *Pipeline) emit(event Event) {
	if p.Observer == nil {
		return
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			log.WithFields(log.Fields{"stage": event.Stage}).Warnf("observer panicked: %v", recovered)
		}
	}()
	p.Observer(event)
}

// panicError classifies a panic recovered while in stage.
func panicError(stage Stage, recovered any) *Error {
	log.WithFields(log.Fields{"stage": stage}).Errorf("recovered from panic: %v", recovered)
	return &Error{Kind: kindOfStage(stage), Stage: stage, Err: fmt.Errorf("unexpected failure: %v", recovered)}
}

func (r *run) execute(ctx context.Context) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err := panicError(r.stage, recovered)
			r.fail(err.Kind, err.Err)
		}
	}()

	r.enter(StageInit, r.result.URL)

	r.enter(StageConnectivity, r.Options.ProbeURL)
	if !r.Probe(ctx) {
		r.fail(KindConnectivity, ErrUnreachable)
		return
	}

	r.enter(StageMetadata, r.result.URL)
	video, err := r.Source.Resolve(ctx, r.result.URL)
	if err != nil {
		r.fail(KindResolution, err)
		return
	}
	r.result.VideoID = video.ID
	r.result.Title = video.Title

	outputDir := r.Options.OutputDir
	scratch := VideoScratchDir(outputDir, video.ID)
	r.result.Scratch = scratch
	if err := filesystem.API().MkdirAll(scratch, os.ModePerm); err != nil {
		r.fail(KindFetch, fmt.Errorf("create scratch directory: %w", err))
		return
	}

	f := fetcher.New(r.Options.Fetch)
	f.OnProgress = func(progress fetcher.Progress) {
		r.emit(Event{
			Stage:   stageOfPart(progress.Part),
			Detail:  progress.Label,
			Written: progress.Written,
			Total:   progress.Total,
		})
	}

	r.enter(StageVideo, video.Title)
	_, videoPath, err := f.FetchVideo(ctx, video, scratch)
	if err != nil {
		r.fail(kindOfFetchError(err), err)
		return
	}

	r.enter(StageAudio, video.Title)
	_, audioPath, err := f.FetchAudio(ctx, video, scratch)
	if err != nil {
		r.fail(kindOfFetchError(err), err)
		return
	}

	r.enter(StageSubtitles, video.Title)
	caption, subtitlePath, err := f.FetchSubtitles(ctx, video, scratch)
	switch {
	case err != nil:
		r.warn(err.Error())
	case caption != nil:
		r.result.Subtitles = caption.Language
	}

	name := OutputName(video.Title, video.ID, r.Options.Fetch.Container, r.Options.SanitizeFilenames)
	muxed := filepath.Join(scratch, name)

	r.enter(StageMux, muxed)
	job := muxer.Job{Video: videoPath, Audio: audioPath, Subtitle: subtitlePath, Output: muxed}
	if err := r.Muxer.Mux(ctx, job); err != nil {
		r.fail(KindMux, err)
		return
	}

	final := filepath.Join(outputDir, name)
	r.enter(StagePublish, final)
	if err := publish.Copy(muxed, final); err != nil {
		r.fail(KindPublish, err)
		return
	}
	r.result.Output = final

	r.enter(StageCleanup, scratch)
	if err := publish.Cleanup(scratch); err != nil {
		r.warn(fmt.Sprintf("scratch directory kept: %s", err))
	} else {
		r.result.Scratch = ""
		// the shared prefix goes only once no failed video left artifacts in it
		if err := publish.RemoveIfEmpty(ScratchDir(outputDir)); err != nil {
			r.log.Debugf("scratch prefix kept: %s", err)
		}
	}

	r.enter(StageDone, final)
}

func kindOfFetchError(err error) ErrorKind {
	var selection *fetcher.SelectionError
	if errors.As(err, &selection) {
		return KindSelection
	}
	return KindFetch
}

func kindOfStage(stage Stage) ErrorKind {
	switch stage {
	case StageInit, StageConnectivity:
		return KindConnectivity
	case StageMetadata:
		return KindResolution
	case StageVideo, StageAudio, StageSubtitles:
		return KindFetch
	case StageMux:
		return KindMux
	default:
		return KindPublish
	}
}

func stageOfPart(part fetcher.Part) Stage {
	switch part {
	case fetcher.PartVideo:
		return StageVideo
	case fetcher.PartAudio:
		return StageAudio
	default:
		return StageSubtitles
	}
}
