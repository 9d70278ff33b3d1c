package network

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/tubemux/tubemux/key"
)

func TestReachable(t *testing.T) {
	Convey("Given a connectivity probe", t, func() {
		ctx := context.Background()

		Convey("It reports a responding host as reachable", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			}))
			defer server.Close()

			So(Reachable(ctx, server.URL, time.Second), ShouldBeTrue)
		})

		Convey("It treats an error status as reachable", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			}))
			defer server.Close()

			So(Reachable(ctx, server.URL, time.Second), ShouldBeTrue)
		})

		Convey("It reports a closed port as unreachable", func() {
			server := httptest.NewServer(http.NotFoundHandler())
			url := server.URL
			server.Close()

			So(Reachable(ctx, url, time.Second), ShouldBeFalse)
		})

		Convey("It gives up after the timeout", func() {
			release := make(chan struct{})
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-release:
				case <-r.Context().Done():
				}
			}))
			defer server.Close()
			defer close(release)

			start := time.Now()
			So(Reachable(ctx, server.URL, 100*time.Millisecond), ShouldBeFalse)
			So(time.Since(start), ShouldBeLessThan, 2*time.Second)
		})

		Convey("It rejects malformed urls", func() {
			So(Reachable(ctx, "://nope", time.Second), ShouldBeFalse)
		})

		Convey("NewProber binds the target", func() {
			server := httptest.NewServer(http.NotFoundHandler())
			defer server.Close()

			probe := NewProber(server.URL, time.Second)
			So(probe(ctx), ShouldBeTrue)
		})
	})
}

func TestNewClient(t *testing.T) {
	Convey("NewClient", t, func() {
		Convey("Uses the tuned transport by default", func() {
			viper.Set(key.NetworkFingerprintTLS, false)
			client := NewClient(time.Second)
			So(client.Timeout, ShouldEqual, time.Second)
			_, ok := client.Transport.(*http.Transport)
			So(ok, ShouldBeTrue)
		})

		Convey("Switches to the fingerprint transport when enabled", func() {
			viper.Set(key.NetworkFingerprintTLS, true)
			defer viper.Set(key.NetworkFingerprintTLS, false)
			client := NewClient(0)
			_, ok := client.Transport.(*FingerprintTransport)
			So(ok, ShouldBeTrue)
		})
	})
}

func TestFingerprintTransportPlainHTTP(t *testing.T) {
	Convey("FingerprintTransport passes plain http through", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		client := &http.Client{Transport: NewFingerprintTransport()}
		resp, err := client.Get(server.URL)
		So(err, ShouldBeNil)
		defer resp.Body.Close()
		So(resp.StatusCode, ShouldEqual, http.StatusOK)
	})
}
