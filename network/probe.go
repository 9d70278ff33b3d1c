package network

import (
	"context"
	"net/http"
	"time"

	"github.com/tubemux/tubemux/log"
)

// Prober reports whether the network looks usable.
type Prober func(ctx context.Context) bool

// Reachable issues a single GET against url bounded by timeout.
// Any response counts as reachable, whatever its status. Every error counts as unreachable.
func Reachable(ctx context.Context, url string, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Warnf("connectivity probe: %s", err)
		return false
	}

	resp, err := Client.Do(req)
	if err != nil {
		log.Debugf("connectivity probe %s failed: %s", url, err)
		return false
	}
	_ = resp.Body.Close()

	log.Debugf("connectivity probe %s: %s", url, resp.Status)
	return true
}

// NewProber binds Reachable to a fixed target.
func NewProber(url string, timeout time.Duration) Prober {
	return func(ctx context.Context) bool {
		return Reachable(ctx, url, timeout)
	}
}
