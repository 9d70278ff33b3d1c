// Package progress renders pipeline events on a terminal.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/muesli/reflow/truncate"
	"github.com/tubemux/tubemux/color"
	"github.com/tubemux/tubemux/icon"
	"github.com/tubemux/tubemux/pipeline"
	"github.com/tubemux/tubemux/style"
	"github.com/tubemux/tubemux/util"
)

const (
	defaultWidth = 80
	barWidth     = 30
	eraseLine    = "\r\033[K"
)

// Terminal prints one line per stage and redraws a progress bar in place while
// streams are downloaded.
type Terminal struct {
	out   io.Writer
	width int
	bar   progress.Model

	mu sync.Mutex
	// drawing is true while the cursor sits on a progress line.
	drawing bool
}

// NewTerminal returns a Terminal writing to out. The width follows the terminal
// when out is the standard output.
func NewTerminal(out io.Writer) *Terminal {
	width := defaultWidth
	if out == os.Stdout && util.IsTerminal() {
		if w, _, err := util.TerminalSize(); err == nil && w > 0 {
			width = w
		}
	}

	return &Terminal{
		out:   out,
		width: width,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth), progress.WithoutPercentage()),
	}
}

// Observer adapts the terminal to pipeline.Observer.
func (t *Terminal) Observer() pipeline.Observer {
	return t.Observe
}

// Observe renders a single event.
func (t *Terminal) Observe(event pipeline.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if event.IsProgress() {
		_, _ = fmt.Fprint(t.out, eraseLine+t.progressLine(event))
		t.drawing = true
		return
	}

	line, ok := t.line(event)
	if !ok {
		return
	}

	if t.drawing {
		_, _ = fmt.Fprint(t.out, eraseLine)
		t.drawing = false
	}
	_, _ = fmt.Fprintln(t.out, line)
}

func (t *Terminal) line(event pipeline.Event) (string, bool) {
	var (
		symbol string
		text   string
	)

	switch {
	case event.Err != nil:
		symbol = style.Fg(color.Red)(icon.Get(icon.Fail))
		text = event.Err.Error()
	case event.Warning:
		symbol = style.Fg(color.Yellow)(icon.Get(icon.Warn))
		text = event.Detail
	default:
		symbol, text = t.describe(event)
		if text == "" {
			return "", false
		}
	}

	return t.fit(prefix(event) + symbol + " " + text), true
}

func (t *Terminal) describe(event pipeline.Event) (string, string) {
	switch event.Stage {
	case pipeline.StageMetadata:
		return icon.Get(icon.Link), "Resolving " + event.Detail
	case pipeline.StageVideo:
		return icon.Get(icon.Video), "Downloading video " + event.Detail
	case pipeline.StageAudio:
		return icon.Get(icon.Audio), "Downloading audio " + event.Detail
	case pipeline.StageSubtitles:
		return icon.Get(icon.Subtitles), "Looking for subtitles"
	case pipeline.StageMux:
		return icon.Get(icon.Mux), "Muxing"
	case pipeline.StagePublish:
		return icon.Get(icon.Folder), "Saving to " + event.Detail
	case pipeline.StageCleanup:
		return icon.Get(icon.Cleanup), "Cleaning up"
	case pipeline.StageDone:
		return style.Fg(color.Green)(icon.Get(icon.Success)), "Done " + event.Detail
	default:
		return "", ""
	}
}

func (t *Terminal) progressLine(event pipeline.Event) string {
	label := fmt.Sprintf("%s %s", icon.Get(icon.Progress), util.HumanBytes(event.Written))

	var bar string
	if event.Total > 0 {
		ratio := float64(event.Written) / float64(event.Total)
		bar = t.bar.ViewAs(util.Min(ratio, 1)) + " "
		label = fmt.Sprintf("%s %s / %s", icon.Get(icon.Progress), util.HumanBytes(event.Written), util.HumanBytes(event.Total))
	}

	return prefix(event) + bar + t.fit(label)
}

func (t *Terminal) fit(line string) string {
	return truncate.StringWithTail(line, uint(t.width), "…")
}

func prefix(event pipeline.Event) string {
	if event.Items == 0 {
		return ""
	}

	digits := len(fmt.Sprint(event.Items))
	return style.Faint(fmt.Sprintf("[%*d/%d] ", digits, event.Item, event.Items))
}

// Summary renders the final message of a run.
func Summary(ok bool, subject string) string {
	if ok {
		return style.Fg(color.Green)(icon.Get(icon.Success)) + " " + subject + " completed successfully!"
	}
	return style.Fg(color.Red)(icon.Get(icon.Fail)) + " " + subject + " failed."
}

// BatchSummary renders the final message of a playlist run. Only an unresolved
// playlist fails it, failed items are listed below the headline.
func BatchSummary(batch pipeline.BatchResult) string {
	if !batch.OK() {
		return Summary(false, "Playlist download")
	}

	var sb strings.Builder
	sb.WriteString(Summary(true, "Playlist download"))
	sb.WriteString(fmt.Sprintf(" %d of %s published.", len(batch.Succeeded()), util.Quantify(len(batch.Items), "video", "videos")))

	for _, failed := range batch.Failed() {
		sb.WriteString("\n  " + style.Fg(color.Red)(icon.Get(icon.Fail)) + " " + titleOf(failed) + ": " + failed.Err.Error())
	}

	return sb.String()
}

func titleOf(result pipeline.Result) string {
	if result.Title != "" {
		return result.Title
	}
	return result.URL
}
