// Package source defines the domain models and interfaces for media discovery and retrieval.
package source

import (
	"context"
	"io"
)

// Source defines the capabilities required from a hosting platform resolver.
type Source interface {
	// Name returns the human readable name of the platform.
	Name() string

	// ID returns the unique identifier of the source.
	ID() string

	// Resolve fetches the metadata and the available streams of a single video.
	Resolve(ctx context.Context, url string) (*Video, error)

	// Playlist resolves a playlist into its ordered entries.
	Playlist(ctx context.Context, url string) (*Playlist, error)

	// OpenStream opens the byte stream behind a stream descriptor.
	// The returned size is zero when the platform does not advertise it.
	OpenStream(ctx context.Context, stream *Stream) (io.ReadCloser, int64, error)

	// OpenCaption opens a caption track.
	OpenCaption(ctx context.Context, caption *Caption) (io.ReadCloser, error)
}
