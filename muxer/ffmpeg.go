package muxer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/spf13/viper"
	"github.com/tubemux/tubemux/constant"
	"github.com/tubemux/tubemux/filesystem"
	"github.com/tubemux/tubemux/key"
	"github.com/tubemux/tubemux/log"
)

// stderrTail bounds the ffmpeg output kept for diagnostics.
const stderrTail = 4096

// FFmpeg runs the ffmpeg executable.
type FFmpeg struct {
	Path          string
	AudioCodec    string
	AudioBitrate  string
	SubtitleCodec string
}

// NewFFmpeg returns an FFmpeg configured from the mux settings.
func NewFFmpeg() *FFmpeg {
	return &FFmpeg{
		Path:          viper.GetString(key.MuxFFmpeg),
		AudioCodec:    viper.GetString(key.MuxAudioCodec),
		AudioBitrate:  viper.GetString(key.MuxAudioBitrate),
		SubtitleCodec: viper.GetString(key.MuxSubtitleCodec),
	}
}

// Available reports whether the executable can be found.
func (f *FFmpeg) Available() bool {
	_, err := exec.LookPath(f.path())
	return err == nil
}

// Args builds the ffmpeg arguments for job.
//
// The video stream is copied and the audio re-encoded. Without subtitles the
// command has two inputs and relies on ffmpeg's default stream selection. With
// subtitles a third input is added and the first stream of each input is mapped
// explicitly: video, audio, then subtitles.
func (f *FFmpeg) Args(job Job) []string {
	args := []string{"-y", "-i", job.Video, "-i", job.Audio}

	subtitle, hasSubtitle := job.Subtitle.Get()
	if hasSubtitle {
		args = append(args, "-i", subtitle)
	}

	args = append(args,
		"-c:v", "copy",
		"-c:a", or(f.AudioCodec, constant.AudioCodec),
		"-b:a", or(f.AudioBitrate, constant.AudioBitrate),
	)

	if hasSubtitle {
		args = append(args,
			"-c:s", or(f.SubtitleCodec, constant.SubtitleCodec),
			"-map", "0:v:0",
			"-map", "1:a:0",
			"-map", "2:s:0",
		)
	}

	return append(args, job.Output)
}

// Mux runs ffmpeg for job and waits for it. There is no timeout: only ctx stops it.
func (f *FFmpeg) Mux(ctx context.Context, job Job) error {
	if err := filesystem.API().MkdirAll(filepath.Dir(job.Output), os.ModePerm); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if !filesystem.OnDisk() {
		log.Warnf("ffmpeg reads and writes the OS filesystem, not the active in-memory one")
	}

	args := f.Args(job)
	log.Debugf("running %s", shellescape.QuoteCommand(append([]string{f.path()}, args...)))

	var stderr tailBuffer
	cmd := exec.CommandContext(ctx, f.path(), args...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = &stderr
	cmd.SysProcAttr = sysProcAttr()
	cmd.Cancel = func() error {
		return killProcess(cmd)
	}

	if err := cmd.Run(); err != nil {
		muxErr := &Error{Output: job.Output, Stderr: stderr.String(), ExitCode: -1, Err: err}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			muxErr.ExitCode = exitErr.ExitCode()
		}

		log.Errorf("ffmpeg failed for %s: %s", job.Output, muxErr)
		return muxErr
	}

	log.Infof("muxed %s", job.Output)
	return nil
}

func (f *FFmpeg) path() string {
	return or(f.Path, "ffmpeg")
}

// Error is returned when ffmpeg cannot be started or exits with a non-zero status.
type Error struct {
	Output   string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("ffmpeg exited with code %d", e.ExitCode)
	if e.ExitCode < 0 {
		msg = fmt.Sprintf("ffmpeg could not run: %s", e.Err)
	}

	if last := lastLine(e.Stderr); last != "" {
		msg += ": " + last
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// tailBuffer keeps the last stderrTail bytes written to it.
type tailBuffer struct {
	buf bytes.Buffer
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	n := len(p)
	t.buf.Write(p)
	if extra := t.buf.Len() - stderrTail; extra > 0 {
		t.buf.Next(extra)
	}
	return n, nil
}

func (t *tailBuffer) String() string {
	return t.buf.String()
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

func or(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
