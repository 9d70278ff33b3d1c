package source

import (
	"context"
	"fmt"
	"io"
)

// Kind distinguishes elementary stream types.
type Kind string

const (
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
)

// Stream describes one downloadable stream of a video.
type Stream struct {
	// Platform format identifier (itag for YouTube).
	ID int `json:"id"`
	// Kind of the stream. Progressive streams are KindVideo.
	Kind Kind `json:"kind"`
	// Container name derived from the MIME type (e.g. "mp4", "webm").
	Container string `json:"container"`
	MimeType  string `json:"mime_type"`

	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
	FPS    int `json:"fps,omitempty"`
	// Bits per second.
	Bitrate int `json:"bitrate"`
	// Progressive streams carry both video and audio.
	Progressive bool `json:"progressive"`
	// Human readable quality (e.g. "1080p", "128kbps").
	Label string `json:"label"`
	// Size in bytes, zero if unknown.
	Size int64 `json:"size,omitempty"`
	// Position in the resolver's enumeration.
	Index int `json:"index"`

	Video *Video `json:"-"`
	// Resolver specific handle.
	Raw any `json:"-"`
}

// String returns the display form of the stream.
func (s *Stream) String() string {
	return fmt.Sprintf("%s %s (%s)", s.Kind, s.Label, s.Container)
}

// Extension returns the file extension scratch files of this stream should use.
func (s *Stream) Extension() string {
	if s.Kind == KindAudio && s.Container == "mp4" {
		return "m4a"
	}
	if s.Container == "" {
		return "bin"
	}
	return s.Container
}

// Open materializes the stream through the source of its video.
func (s *Stream) Open(ctx context.Context) (io.ReadCloser, int64, error) {
	src, err := s.Video.source()
	if err != nil {
		return nil, 0, err
	}
	return src.OpenStream(ctx, s)
}
