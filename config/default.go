// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/tubemux/tubemux/color"
	"github.com/tubemux/tubemux/constant"
	"github.com/tubemux/tubemux/key"
	"github.com/tubemux/tubemux/style"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Tubemux + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.DownloadsDir, constant.DownloadsDir, "Directory where finished videos are published.\nA \"temp\" scratch directory is created inside it while downloading")
	register(key.DownloadsSanitizeFilenames, true, "Sanitize video titles before using them as file names.\nWhen disabled only path separators are replaced")
	register(key.DownloadsReveal, false, "Open the published file with the default application")
	register(key.SubtitlesEnable, true, "Fetch a subtitle track and embed it into the output")
	register(key.SubtitlesLanguage, constant.PreferredCaptionLanguage, "Preferred subtitle language tag")
	register(key.SubtitlesRegional, constant.RegionalCaptionLanguage, "Regional variant tried when the preferred language is missing.\nAny other track is used as a last resort")
	register(key.MuxFFmpeg, "ffmpeg", "Path or name of the ffmpeg executable")
	register(key.MuxContainer, constant.TargetContainer, "Output container. Only progressive video streams of this container are selected")
	register(key.MuxAudioCodec, constant.AudioCodec, "Audio codec used when muxing")
	register(key.MuxAudioBitrate, constant.AudioBitrate, "Audio bitrate used when muxing")
	register(key.MuxSubtitleCodec, constant.SubtitleCodec, "Subtitle codec used when muxing")
	register(key.NetworkProbeURL, constant.ProbeURL, "URL requested to check connectivity before downloading")
	register(key.NetworkProbeTimeout, int(constant.ProbeTimeout.Seconds()), "Connectivity check timeout in seconds")
	register(key.NetworkTimeout, 60, "HTTP client timeout in seconds for metadata requests. 0 disables it")
	register(key.NetworkFingerprintTLS, false, "Use a browser-like TLS fingerprint for requests to the platform")
	register(key.HistorySave, true, "Remember published downloads")
	register(key.SearchShowQuerySuggestions, true, "Suggest previously used URLs in the interactive prompt")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
