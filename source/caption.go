package source

import (
	"context"
	"io"
)

// Caption is a downloadable subtitle track.
type Caption struct {
	// BCP 47 like language tag (e.g. "fr", "fr-FR").
	Language string `json:"language"`
	Name     string `json:"name,omitempty"`
	URL      string `json:"url"`
	// Generated tracks come from automatic speech recognition.
	Generated bool `json:"generated"`
	// Position in the resolver's enumeration.
	Index int `json:"index"`

	Video *Video `json:"-"`
}

func (c *Caption) String() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Language
}

// Open materializes the caption track through the source of its video.
func (c *Caption) Open(ctx context.Context) (io.ReadCloser, error) {
	src, err := c.Video.source()
	if err != nil {
		return nil, err
	}
	return src.OpenCaption(ctx, c)
}
