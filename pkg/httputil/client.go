// Package httputil provides the shared HTTP plumbing for sentinel's
// external analyzers: pooled clients per timeout tier and bounded response
// reads.
package httputil

import (
	"io"
	"net"
	"net/http"
	"sync"
	"time"
)

// MaxResponseSize caps response bodies read through ReadResponseBody.
// External LLM and embedding providers are untrusted; a misbehaving backend
// must not be able to exhaust memory.
const MaxResponseSize = 2 * 1024 * 1024

// Shared pooled transport. All analyzer traffic reuses these connections.
var sharedTransport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	ForceAttemptHTTP2:   true,
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     90 * time.Second,
	TLSHandshakeTimeout: 10 * time.Second,
}

// TimeoutTier selects a client timeout class.
type TimeoutTier int

const (
	// TierFast for health probes (5s).
	TierFast TimeoutTier = iota
	// TierMedium for chat-completion and embedding calls (30s).
	TierMedium
	// TierSlow for bulk operations like exemplar seeding (60s).
	TierSlow
)

var (
	clients    map[TimeoutTier]*http.Client
	clientOnce sync.Once
)

// Client returns the shared HTTP client for a timeout tier. Callers must not
// mutate the returned client.
func Client(tier TimeoutTier) *http.Client {
	clientOnce.Do(func() {
		clients = map[TimeoutTier]*http.Client{
			TierFast:   {Timeout: 5 * time.Second, Transport: sharedTransport},
			TierMedium: {Timeout: 30 * time.Second, Transport: sharedTransport},
			TierSlow:   {Timeout: 60 * time.Second, Transport: sharedTransport},
		}
	})
	if c, ok := clients[tier]; ok {
		return c
	}
	return clients[TierMedium]
}

// ReadResponseBody reads a response body with a hard size cap. A maxSize of
// zero or less uses MaxResponseSize.
func ReadResponseBody(r io.Reader, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		maxSize = MaxResponseSize
	}
	return io.ReadAll(io.LimitReader(r, maxSize))
}

// DrainAndClose empties and closes a response body so the underlying
// connection returns to the pool.
func DrainAndClose(body io.ReadCloser) {
	if body != nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(body, MaxResponseSize))
		_ = body.Close()
	}
}
