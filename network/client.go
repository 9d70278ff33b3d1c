// Package network provides the shared HTTP client, an optional browser-fingerprinted transport and the connectivity probe.
package network

import (
	"net/http"
	"time"

	"github.com/spf13/viper"
	"github.com/tubemux/tubemux/key"
)

// Client is the HTTP client shared by requests that do not need platform specific tuning.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

// newTransport initializes a tuned http.Transport with optimized pool and timeout parameters.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 16
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 5 * time.Second
	return t
}

// NewClient builds the client used to talk to the hosting platform.
//
// A zero timeout leaves the client unbounded, which is what stream downloads need.
// When network.fingerprint_tls is enabled the client presents a Chrome TLS fingerprint.
func NewClient(timeout time.Duration) *http.Client {
	var transport http.RoundTripper = newTransport()
	if viper.GetBool(key.NetworkFingerprintTLS) {
		transport = NewFingerprintTransport()
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
