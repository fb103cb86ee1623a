package ingest

import (
	"net"
	"net/http"
	"time"
)

// DefaultTimeout bounds a whole catalog download.
const DefaultTimeout = 30 * time.Second

// NewHTTPClient returns a client with bounded dial and TLS handshake times.
func NewHTTPClient(timeout time.Duration) *http.Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}
