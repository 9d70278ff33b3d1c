package source

import "fmt"

// Video is a resolved video: its metadata and every stream the platform offers.
// It is fetched fresh for every run and never cached.
type Video struct {
	// Platform identifier (e.g. "dQw4w9WgXcQ").
	ID string `json:"id"`
	// URL the video was resolved from.
	URL string `json:"url"`
	// Title as published.
	Title string `json:"title"`
	// Channel or uploader name.
	Author string `json:"author,omitempty"`

	Streams  []*Stream  `json:"streams,omitempty"`
	Captions []*Caption `json:"captions,omitempty"`

	// Source that resolved the video.
	Source Source `json:"-"`
	// Resolver specific handle.
	Raw any `json:"-"`
}

// String returns the title, or the identifier when the title is missing.
func (v *Video) String() string {
	if v.Title != "" {
		return v.Title
	}
	return v.ID
}

// AddStream attaches a stream to the video and assigns its enumeration index.
func (v *Video) AddStream(s *Stream) {
	s.Index = len(v.Streams)
	s.Video = v
	v.Streams = append(v.Streams, s)
}

// AddCaption attaches a caption track to the video and assigns its enumeration index.
func (v *Video) AddCaption(c *Caption) {
	c.Index = len(v.Captions)
	c.Video = v
	v.Captions = append(v.Captions, c)
}

func (v *Video) source() (Source, error) {
	if v == nil || v.Source == nil {
		return nil, fmt.Errorf("video has no source attached")
	}
	return v.Source, nil
}
