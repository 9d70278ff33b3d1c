// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 23

// Downloads - these keys govern where published files land and how they are named.
const (
	DownloadsDir               = "downloads.dir"
	DownloadsSanitizeFilenames = "downloads.sanitize_filenames"
	DownloadsReveal            = "downloads.reveal"
)

// Subtitles - these keys configure the caption track selection.
const (
	SubtitlesEnable   = "subtitles.enable"
	SubtitlesLanguage = "subtitles.language"
	SubtitlesRegional = "subtitles.regional"
)

// Muxing - these keys configure the external transcoder invocation.
const (
	MuxFFmpeg        = "mux.ffmpeg"
	MuxContainer     = "mux.container"
	MuxAudioCodec    = "mux.audio_codec"
	MuxAudioBitrate  = "mux.audio_bitrate"
	MuxSubtitleCodec = "mux.subtitle_codec"
)

// Network - these keys tune the connectivity probe and the HTTP client.
const (
	NetworkProbeURL       = "network.probe_url"
	NetworkProbeTimeout   = "network.probe_timeout"
	NetworkTimeout        = "network.timeout"
	NetworkFingerprintTLS = "network.fingerprint_tls"
)

// History Tracking - these keys configure the persistence of published downloads.
const (
	HistorySave = "history.save"
)

// Search Interaction - these keys define the URL prompt behaviour.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern the command line behaviour.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
