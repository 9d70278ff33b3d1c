package pipeline

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/tubemux/tubemux/log"
	"github.com/tubemux/tubemux/util"
)

// BatchResult is the outcome of a playlist.
type BatchResult struct {
	URL   string
	Title string

	// Items holds one result per attempted entry, in playlist order.
	Items []Result
	// Err is set when the playlist itself could not be processed.
	Err *Error
}

// OK reports whether the playlist was resolved. Failed items do not change it.
func (b BatchResult) OK() bool {
	return b.Err == nil
}

// Succeeded returns the items that were published.
func (b BatchResult) Succeeded() []Result {
	return lo.Filter(b.Items, func(r Result, _ int) bool { return r.OK() })
}

// Failed returns the items that were not published.
func (b BatchResult) Failed() []Result {
	return lo.Filter(b.Items, func(r Result, _ int) bool { return !r.OK() })
}

// RunPlaylist runs the single video pipeline for every playlist entry, in order.
// A failing entry never stops the batch. Like Run, it never panics.
func (p *Pipeline) RunPlaylist(ctx context.Context, url string) (batch BatchResult) {
	batch = BatchResult{URL: url}
	stage := StageInit

	defer func() {
		if recovered := recover(); recovered != nil {
			batch.Err = panicError(stage, recovered)
			p.emit(Event{Stage: stage, Detail: batch.Err.Error(), Err: batch.Err})
		}
	}()

	fail := func(kind ErrorKind, err error) {
		batch.Err = &Error{Kind: kind, Stage: stage, Err: err}
		p.emit(Event{Stage: stage, Detail: err.Error(), Err: batch.Err})
		log.Errorf("%s: %s", url, batch.Err)
	}

	p.emit(Event{Stage: stage, Detail: url})

	stage = StageConnectivity
	p.emit(Event{Stage: stage, Detail: p.Options.ProbeURL})
	if !p.Probe(ctx) {
		fail(KindConnectivity, ErrUnreachable)
		return batch
	}

	stage = StageMetadata
	p.emit(Event{Stage: stage, Detail: url})
	playlist, err := p.Source.Playlist(ctx, url)
	if err != nil {
		fail(KindResolution, err)
		return batch
	}

	batch.Title = playlist.Title
	total := len(playlist.Entries)
	summary := fmt.Sprintf("%s (%s)", playlist.Title, util.Quantify(total, "video", "videos"))
	log.Infof("playlist %s", summary)
	p.emit(Event{Stage: stage, Detail: summary, Items: total})

	for i, entry := range playlist.Entries {
		if ctx.Err() != nil {
			log.Warnf("playlist %s interrupted after %d of %d entries", url, i, total)
			break
		}

		item := *p
		item.Observer = func(event Event) {
			event.Item, event.Items = i+1, total
			p.emit(event)
		}

		result := item.Run(ctx, entry.URL)
		if !result.OK() {
			log.Warnf("playlist entry %d/%d failed, continuing", i+1, total)
		}
		batch.Items = append(batch.Items, result)
	}

	log.Infof("playlist %s done: %d published, %d failed", url, len(batch.Succeeded()), len(batch.Failed()))
	return batch
}
