// Package sourcetest provides an in-memory source.Source for tests.
package sourcetest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/tubemux/tubemux/source"
)

// Source serves registered videos and playlists from memory.
type Source struct {
	mu sync.Mutex

	videos    map[string]*source.Video
	playlists map[string]*source.Playlist
	added     int

	// ResolveErr fails Resolve for the given URLs.
	ResolveErr map[string]error
	// StreamErr fails OpenStream for the given format IDs.
	StreamErr map[int]error
	// CaptionErr fails every OpenCaption call.
	CaptionErr error
	// Panic makes Resolve and Playlist panic for the given URLs.
	Panic map[string]bool

	// Resolved records Resolve calls in order.
	Resolved []string
	// Opened records OpenStream calls by format ID.
	Opened []int
}

// New returns an empty Source.
func New() *Source {
	return &Source{
		videos:     make(map[string]*source.Video),
		playlists:  make(map[string]*source.Playlist),
		ResolveErr: make(map[string]error),
		StreamErr:  make(map[int]error),
		Panic:      make(map[string]bool),
	}
}

func (s *Source) Name() string { return "Memory" }
func (s *Source) ID() string   { return "memory" }

// AddVideo registers a video under url with the given streams and captions.
// Every call gets a new video ID, even when it replaces an earlier video.
func (s *Source) AddVideo(url, title string, streams []*source.Stream, captions ...*source.Caption) *source.Video {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.added++
	video := &source.Video{ID: fmt.Sprintf("v%d", s.added), URL: url, Title: title, Source: s}
	for _, stream := range streams {
		video.AddStream(stream)
	}
	for _, caption := range captions {
		video.AddCaption(caption)
	}

	s.videos[url] = video
	return video
}

// AddPlaylist registers a playlist made of the given entry URLs.
func (s *Source) AddPlaylist(url, title string, entries ...string) *source.Playlist {
	s.mu.Lock()
	defer s.mu.Unlock()

	playlist := &source.Playlist{ID: url, Title: title}
	for i, entry := range entries {
		playlist.Entries = append(playlist.Entries, &source.Entry{ID: fmt.Sprint(i), URL: entry})
	}

	s.playlists[url] = playlist
	return playlist
}

func (s *Source) Resolve(_ context.Context, url string) (*source.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Resolved = append(s.Resolved, url)
	if s.Panic[url] {
		panic("resolver exploded on " + url)
	}
	if err := s.ResolveErr[url]; err != nil {
		return nil, err
	}

	video, ok := s.videos[url]
	if !ok {
		return nil, fmt.Errorf("video %s not found", url)
	}
	return video, nil
}

func (s *Source) Playlist(_ context.Context, url string) (*source.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Panic[url] {
		panic("playlist resolver exploded on " + url)
	}

	playlist, ok := s.playlists[url]
	if !ok {
		return nil, fmt.Errorf("playlist %s not found", url)
	}
	return playlist, nil
}

func (s *Source) OpenStream(_ context.Context, stream *source.Stream) (io.ReadCloser, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Opened = append(s.Opened, stream.ID)
	if err := s.StreamErr[stream.ID]; err != nil {
		return nil, 0, err
	}

	payload := Payload(stream)
	return io.NopCloser(bytes.NewReader(payload)), int64(len(payload)), nil
}

func (s *Source) OpenCaption(_ context.Context, caption *source.Caption) (io.ReadCloser, error) {
	if s.CaptionErr != nil {
		return nil, s.CaptionErr
	}
	return io.NopCloser(bytes.NewBufferString("WEBVTT\n\n00:00.000 --> 00:01.000\n" + caption.Language + "\n")), nil
}

// Payload returns the bytes served for a stream.
func Payload(stream *source.Stream) []byte {
	return []byte(fmt.Sprintf("%s stream %d", stream.Kind, stream.ID))
}

// Progressive builds a progressive mp4 stream of the given height.
func Progressive(id, height int) *source.Stream {
	return &source.Stream{
		ID:          id,
		Kind:        source.KindVideo,
		Container:   "mp4",
		Height:      height,
		Width:       height * 16 / 9,
		Progressive: true,
		Label:       fmt.Sprintf("%dp", height),
	}
}

// Audio builds an audio-only mp4 stream of the given bitrate in bits per second.
func Audio(id, bitrate int) *source.Stream {
	return &source.Stream{
		ID:        id,
		Kind:      source.KindAudio,
		Container: "mp4",
		Bitrate:   bitrate,
		Label:     fmt.Sprintf("%dkbps", bitrate/1000),
	}
}

// Caption builds a caption track in the given language.
func Caption(language string) *source.Caption {
	return &source.Caption{Language: language, URL: "memory://" + language}
}
