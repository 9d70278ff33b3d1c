// Package youtube resolves YouTube videos and playlists with github.com/kkdai/youtube.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kkdai/youtube/v2"
	"github.com/spf13/viper"
	"github.com/tubemux/tubemux/constant"
	"github.com/tubemux/tubemux/key"
	"github.com/tubemux/tubemux/log"
	"github.com/tubemux/tubemux/network"
	"github.com/tubemux/tubemux/source"
)

const (
	ID   = "youtube"
	Name = "YouTube"

	watchURL = "https://www.youtube.com/watch?v="
)

// Hosts lists the hostnames served by this source.
var Hosts = []string{"youtube.com", "www.youtube.com", "m.youtube.com", "music.youtube.com", "youtu.be"}

// ErrRestricted marks videos that cannot be fetched without an account.
var ErrRestricted = errors.New("restricted content")

// Source implements source.Source for YouTube.
type Source struct {
	meta     *youtube.Client
	media    *youtube.Client
	captions *http.Client
}

// New returns a Source configured from the network settings.
func New() *Source {
	timeout := time.Duration(viper.GetInt(key.NetworkTimeout)) * time.Second
	return newSource(network.NewClient(timeout), network.NewClient(0))
}

// newSource wires the clients. Stream downloads use an unbounded client
// since a timeout would cut long transfers.
func newSource(bounded, unbounded *http.Client) *Source {
	return &Source{
		meta:     &youtube.Client{HTTPClient: bounded},
		media:    &youtube.Client{HTTPClient: unbounded},
		captions: bounded,
	}
}

func (*Source) ID() string   { return ID }
func (*Source) Name() string { return Name }

// Resolve fetches the video metadata and maps every format the player exposes.
func (s *Source) Resolve(ctx context.Context, rawURL string) (*source.Video, error) {
	log.Infof("resolving %s", rawURL)

	yv, err := s.meta.GetVideoContext(ctx, rawURL)
	if err != nil {
		return nil, wrap(err, "fetching video metadata")
	}

	video := &source.Video{
		ID:     yv.ID,
		URL:    rawURL,
		Title:  yv.Title,
		Author: yv.Author,
		Source: s,
		Raw:    yv,
	}

	for i := range yv.Formats {
		if stream, ok := toStream(&yv.Formats[i]); ok {
			video.AddStream(stream)
		}
	}

	for _, track := range yv.CaptionTracks {
		if track.BaseURL == "" {
			continue
		}
		video.AddCaption(toCaption(track))
	}

	log.Infof("resolved %q: %d streams, %d captions", video.Title, len(video.Streams), len(video.Captions))
	return video, nil
}

// Playlist resolves the ordered member list of a playlist.
func (s *Source) Playlist(ctx context.Context, rawURL string) (*source.Playlist, error) {
	log.Infof("resolving playlist %s", rawURL)

	yp, err := s.meta.GetPlaylistContext(ctx, rawURL)
	if err != nil {
		return nil, wrap(err, "fetching playlist")
	}

	playlist := &source.Playlist{ID: yp.ID, Title: yp.Title}
	for _, entry := range yp.Videos {
		if entry == nil || entry.ID == "" {
			continue
		}
		playlist.Entries = append(playlist.Entries, &source.Entry{
			ID:    entry.ID,
			URL:   watchURL + entry.ID,
			Title: entry.Title,
		})
	}

	return playlist, nil
}

// OpenStream opens the media bytes of a stream resolved by this source.
func (s *Source) OpenStream(ctx context.Context, stream *source.Stream) (io.ReadCloser, int64, error) {
	format, ok := stream.Raw.(*youtube.Format)
	if !ok || stream.Video == nil {
		return nil, 0, fmt.Errorf("stream %d was not resolved by %s", stream.ID, Name)
	}

	yv, ok := stream.Video.Raw.(*youtube.Video)
	if !ok {
		return nil, 0, fmt.Errorf("video %s was not resolved by %s", stream.Video.ID, Name)
	}

	rc, size, err := s.media.GetStreamContext(ctx, yv, format)
	if err != nil {
		return nil, 0, wrap(err, "opening stream")
	}

	return rc, size, nil
}

// OpenCaption downloads a caption track as WebVTT.
func (s *Source) OpenCaption(ctx context.Context, caption *source.Caption) (io.ReadCloser, error) {
	target, err := captionURL(caption.URL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := s.captions.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching captions: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("fetching captions: unexpected status %s", resp.Status)
	}

	return resp.Body, nil
}

// captionURL asks the timedtext endpoint for WebVTT, which ffmpeg reads natively.
func captionURL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid caption url: %w", err)
	}

	q := u.Query()
	q.Set("fmt", constant.SubtitleFormat)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func wrap(err error, action string) error {
	var status *youtube.ErrPlayabiltyStatus
	switch {
	case errors.Is(err, youtube.ErrLoginRequired),
		errors.Is(err, youtube.ErrVideoPrivate),
		errors.Is(err, youtube.ErrNotPlayableInEmbed),
		errors.As(err, &status):
		return fmt.Errorf("%s: %w: %w", action, ErrRestricted, err)
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}
