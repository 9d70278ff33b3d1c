package youtube

import (
	"fmt"
	"mime"
	"strings"

	"github.com/kkdai/youtube/v2"
	"github.com/tubemux/tubemux/source"
)

// toStream maps a player format. Formats with an unknown media type are skipped.
func toStream(f *youtube.Format) (*source.Stream, bool) {
	mediaType, params, err := mime.ParseMediaType(f.MimeType)
	if err != nil {
		return nil, false
	}

	kind, container, ok := strings.Cut(mediaType, "/")
	if !ok {
		return nil, false
	}

	bitrate := f.Bitrate
	if bitrate == 0 {
		bitrate = f.AverageBitrate
	}

	stream := &source.Stream{
		ID:        f.ItagNo,
		Container: container,
		MimeType:  f.MimeType,
		Bitrate:   bitrate,
		Size:      f.ContentLength,
		Raw:       f,
	}

	switch source.Kind(kind) {
	case source.KindVideo:
		stream.Kind = source.KindVideo
		stream.Width = f.Width
		stream.Height = f.Height
		stream.FPS = f.FPS
		// muxed formats list two codecs, e.g. "avc1.42001E, mp4a.40.2"
		stream.Progressive = f.AudioChannels > 0 || strings.Contains(params["codecs"], ",")
		stream.Label = f.QualityLabel
		if stream.Label == "" && f.Height > 0 {
			stream.Label = fmt.Sprintf("%dp", f.Height)
		}
	case source.KindAudio:
		stream.Kind = source.KindAudio
		stream.Label = fmt.Sprintf("%dkbps", bitrate/1000)
	default:
		return nil, false
	}

	return stream, true
}

func toCaption(track youtube.CaptionTrack) *source.Caption {
	return &source.Caption{
		Language:  track.LanguageCode,
		Name:      track.LanguageCode,
		URL:       track.BaseURL,
		Generated: track.Kind == "asr",
	}
}
