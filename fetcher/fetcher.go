// Package fetcher selects the streams of a video and materializes them into a scratch directory.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/tubemux/tubemux/constant"
	"github.com/tubemux/tubemux/filesystem"
	"github.com/tubemux/tubemux/key"
	"github.com/tubemux/tubemux/log"
	"github.com/tubemux/tubemux/source"
)

// Part names the artifact being fetched.
type Part string

const (
	PartVideo     Part = "video"
	PartAudio     Part = "audio"
	PartSubtitles Part = "subtitles"
)

// Progress is reported after every chunk written to disk.
type Progress struct {
	Part    Part
	Label   string
	Written int64
	// Total is zero when the size is unknown.
	Total int64
}

// Options control stream selection.
type Options struct {
	Container         string
	Subtitles         bool
	PreferredLanguage string
	RegionalLanguage  string
}

// OptionsFromConfig reads the selection options from the configuration.
func OptionsFromConfig() Options {
	return Options{
		Container:         viper.GetString(key.MuxContainer),
		Subtitles:         viper.GetBool(key.SubtitlesEnable),
		PreferredLanguage: viper.GetString(key.SubtitlesLanguage),
		RegionalLanguage:  viper.GetString(key.SubtitlesRegional),
	}
}

// Artifacts are the scratch files of one video.
type Artifacts struct {
	Video    string
	Audio    string
	Subtitle mo.Option[string]

	VideoStream *source.Stream
	AudioStream *source.Stream
	Caption     *source.Caption

	// Non-fatal problems, subtitle failures end up here.
	Warnings []string
}

// Fetcher downloads the selected streams of a video.
type Fetcher struct {
	Options    Options
	OnProgress func(Progress)
}

// New returns a Fetcher with the given options.
func New(options Options) *Fetcher {
	if options.Container == "" {
		options.Container = constant.TargetContainer
	}
	return &Fetcher{Options: options}
}

// Fetch downloads video, audio and, best effort, one subtitle track into dir.
// Partially written files are left where they are on failure.
func (f *Fetcher) Fetch(ctx context.Context, video *source.Video, dir string) (*Artifacts, error) {
	var (
		artifacts = &Artifacts{}
		err       error
	)

	if artifacts.VideoStream, artifacts.Video, err = f.FetchVideo(ctx, video, dir); err != nil {
		return artifacts, err
	}

	if artifacts.AudioStream, artifacts.Audio, err = f.FetchAudio(ctx, video, dir); err != nil {
		return artifacts, err
	}

	caption, path, err := f.FetchSubtitles(ctx, video, dir)
	if err != nil {
		artifacts.Warnings = append(artifacts.Warnings, err.Error())
	}
	artifacts.Caption = caption
	artifacts.Subtitle = path

	return artifacts, nil
}

// FetchVideo selects and downloads the video stream.
func (f *Fetcher) FetchVideo(ctx context.Context, video *source.Video, dir string) (*source.Stream, string, error) {
	stream, err := SelectVideo(video.Streams, f.Options.Container)
	if err != nil {
		return nil, "", err
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.%s", PartVideo, stream.Extension()))
	return stream, path, f.fetchStream(ctx, PartVideo, stream, path)
}

// FetchAudio selects and downloads the audio stream.
func (f *Fetcher) FetchAudio(ctx context.Context, video *source.Video, dir string) (*source.Stream, string, error) {
	stream, err := SelectAudio(video.Streams)
	if err != nil {
		return nil, "", err
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.%s", PartAudio, stream.Extension()))
	return stream, path, f.fetchStream(ctx, PartAudio, stream, path)
}

// FetchSubtitles downloads one caption track when subtitles are enabled.
//
// A returned error is a warning: the caption and path are empty and the caller
// should carry on without subtitles.
func (f *Fetcher) FetchSubtitles(ctx context.Context, video *source.Video, dir string) (*source.Caption, mo.Option[string], error) {
	none := mo.None[string]()

	if !f.Options.Subtitles {
		return nil, none, nil
	}

	caption, ok := SelectCaption(video.Captions, f.Options.PreferredLanguage, f.Options.RegionalLanguage).Get()
	if !ok {
		log.Infof("no subtitles available for %q", video.Title)
		return nil, none, nil
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.%s.%s", PartSubtitles, caption.Language, constant.SubtitleFormat))
	open := func() (io.ReadCloser, int64, error) {
		rc, err := caption.Open(ctx)
		return rc, 0, err
	}

	if err := f.download(PartSubtitles, caption.Language, open, path); err != nil {
		log.Warnf("subtitles skipped for %q: %s", video.Title, err)
		return nil, none, fmt.Errorf("subtitles skipped: %w", err)
	}

	return caption, mo.Some(path), nil
}

func (f *Fetcher) fetchStream(ctx context.Context, part Part, stream *source.Stream, path string) error {
	log.Infof("downloading %s stream %d (%s) to %s", part, stream.ID, stream.Label, path)

	open := func() (io.ReadCloser, int64, error) {
		return stream.Open(ctx)
	}

	return f.download(part, stream.Label, open, path)
}

func (f *Fetcher) download(part Part, label string, open func() (io.ReadCloser, int64, error), path string) error {
	rc, total, err := open()
	if err != nil {
		return &FetchError{Part: part, Err: err}
	}
	defer rc.Close()

	fs := filesystem.API()
	if err := fs.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return &FetchError{Part: part, Path: path, Err: err}
	}

	file, err := fs.Create(path)
	if err != nil {
		return &FetchError{Part: part, Path: path, Err: err}
	}

	counter := &progressWriter{
		report:   f.OnProgress,
		progress: Progress{Part: part, Label: label, Total: total},
	}

	_, err = io.Copy(file, io.TeeReader(rc, counter))
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return &FetchError{Part: part, Path: path, Err: err}
	}

	return nil
}

type progressWriter struct {
	report   func(Progress)
	progress Progress
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.progress.Written += int64(len(p))
	if w.report != nil {
		w.report(w.progress)
	}
	return len(p), nil
}
