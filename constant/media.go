package constant

import "time"

// Muxing defaults. The video stream is always copied, only audio and subtitles are re-encoded.
const (
	TargetContainer = "mp4"
	AudioCodec      = "aac"
	AudioBitrate    = "320k"
	SubtitleCodec   = "mov_text"
	SubtitleFormat  = "vtt"
)

// Caption language preference, tried in this order before any other track.
const (
	PreferredCaptionLanguage = "fr"
	RegionalCaptionLanguage  = "fr-FR"
)

// Connectivity probe defaults.
const (
	ProbeURL     = "http://www.google.com"
	ProbeTimeout = 3 * time.Second
)

const (
	// DownloadsDir is the default destination directory, relative to the working directory.
	DownloadsDir = "downloads"

	// ScratchDir is the name of the scratch directory created inside the destination directory.
	ScratchDir = "temp"
)
