// Package network provides pre-configured HTTP clients for talking to the local game client.
package network

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/replaysync/replaysync/log"
	"golang.org/x/net/http2"
)

// Loopback returns a client for the game client's status API. The API serves a
// self-signed certificate on 127.0.0.1, so certificate verification is disabled.
// Every request is bounded by timeout.
func Loopback(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: newLoopbackTransport(timeout),
	}
}

// newLoopbackTransport initializes a small keep-alive pool; a single host is polled at a high rate.
func newLoopbackTransport(timeout time.Duration) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.Proxy = nil
	t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // loopback endpoint with a self-signed certificate
	t.MaxIdleConns = 4
	t.MaxIdleConnsPerHost = 4
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = timeout
	t.TLSHandshakeTimeout = timeout

	// Offer h2 in ALPN; the transport falls back to HTTP/1.1 when the server declines.
	if err := http2.ConfigureTransport(t); err != nil {
		log.Warnf("http2 unavailable for loopback transport: %v", err)
	}

	return t
}
