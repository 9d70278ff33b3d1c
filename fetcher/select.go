package fetcher

import (
	"cmp"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/tubemux/tubemux/source"
)

// SelectVideo picks the best progressive stream in the given container.
//
// Candidates are ordered by height, width, bitrate and frame rate, all descending.
// Remaining ties go to the lowest format ID, so the result never depends on the
// order the platform listed its formats in.
func SelectVideo(streams []*source.Stream, container string) (*source.Stream, error) {
	candidates := lo.Filter(streams, func(s *source.Stream, _ int) bool {
		return s.Kind == source.KindVideo && s.Progressive && strings.EqualFold(s.Container, container)
	})
	if len(candidates) == 0 {
		return nil, &SelectionError{Kind: source.KindVideo, Err: ErrNoVideoStream}
	}

	return slices.MinFunc(candidates, func(a, b *source.Stream) int {
		return cmp.Or(
			cmp.Compare(b.Height, a.Height),
			cmp.Compare(b.Width, a.Width),
			cmp.Compare(b.Bitrate, a.Bitrate),
			cmp.Compare(b.FPS, a.FPS),
			cmp.Compare(a.ID, b.ID),
		)
	}), nil
}

// SelectAudio picks the audio-only stream with the highest bitrate, lowest format ID on ties.
func SelectAudio(streams []*source.Stream) (*source.Stream, error) {
	candidates := lo.Filter(streams, func(s *source.Stream, _ int) bool {
		return s.Kind == source.KindAudio && !s.Progressive
	})
	if len(candidates) == 0 {
		return nil, &SelectionError{Kind: source.KindAudio, Err: ErrNoAudioStream}
	}

	return slices.MinFunc(candidates, func(a, b *source.Stream) int {
		return cmp.Or(
			cmp.Compare(b.Bitrate, a.Bitrate),
			cmp.Compare(a.ID, b.ID),
		)
	}), nil
}

// SelectCaption returns the preferred track, then the regional variant.
// Otherwise it falls back to the first track when ordered by origin (uploaded
// before generated), language tag and enumeration index.
func SelectCaption(captions []*source.Caption, preferred, regional string) mo.Option[*source.Caption] {
	if len(captions) == 0 {
		return mo.None[*source.Caption]()
	}

	for _, tag := range []string{preferred, regional} {
		if tag == "" {
			continue
		}

		matching := lo.Filter(captions, func(c *source.Caption, _ int) bool {
			return strings.EqualFold(c.Language, tag)
		})
		if len(matching) > 0 {
			return mo.Some(slices.MinFunc(matching, compareCaptions))
		}
	}

	return mo.Some(slices.MinFunc(captions, compareCaptions))
}

func compareCaptions(a, b *source.Caption) int {
	generated := func(c *source.Caption) int {
		return lo.Ternary(c.Generated, 1, 0)
	}

	return cmp.Or(
		cmp.Compare(generated(a), generated(b)),
		strings.Compare(strings.ToLower(a.Language), strings.ToLower(b.Language)),
		cmp.Compare(a.Index, b.Index),
	)
}
