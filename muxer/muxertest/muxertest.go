// Package muxertest provides a muxer.Muxer that writes through the filesystem API instead of running ffmpeg.
package muxertest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tubemux/tubemux/filesystem"
	"github.com/tubemux/tubemux/muxer"
)

// Muxer records jobs and writes a fake container listing its inputs.
type Muxer struct {
	// Err, when set, fails every job after recording it.
	Err error
	// Jobs records every job received.
	Jobs []muxer.Job
}

func (m *Muxer) Available() bool { return true }

func (m *Muxer) Mux(_ context.Context, job muxer.Job) error {
	m.Jobs = append(m.Jobs, job)
	if m.Err != nil {
		return m.Err
	}

	fs := filesystem.API()
	if err := fs.MkdirAll(filepath.Dir(job.Output), os.ModePerm); err != nil {
		return err
	}

	inputs := []string{job.Video, job.Audio}
	if subtitle, ok := job.Subtitle.Get(); ok {
		inputs = append(inputs, subtitle)
	}

	return fs.WriteFile(job.Output, []byte(Container(inputs...)), 0o644)
}

// Container is the content written for the given inputs.
func Container(inputs ...string) string {
	return fmt.Sprintf("muxed[%s]", strings.Join(inputs, "|"))
}
