// Package muxer combines fetched artifacts into one container by running ffmpeg as a subprocess.
package muxer

import (
	"context"

	"github.com/samber/mo"
)

// Job describes one mux: two or three inputs and one output.
type Job struct {
	Video    string
	Audio    string
	Subtitle mo.Option[string]
	Output   string
}

// Muxer is an external multiplexer.
type Muxer interface {
	// Available reports whether the multiplexer can be run at all.
	Available() bool

	// Mux writes job.Output, creating its missing parent directories.
	// Inputs are never deleted.
	Mux(ctx context.Context, job Job) error
}
