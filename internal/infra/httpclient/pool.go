package httpclient

import (
	"net/http"
	"time"
)

// sharedTransport is reused across all pooled clients so the search, news and
// generation providers share one connection pool instead of re-handshaking
// per request.
var sharedTransport = &http.Transport{
	MaxIdleConns:        20,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     120 * time.Second,
	DisableKeepAlives:   false,
}

// NewPooledClient creates an http.Client with the shared connection pool.
// The timeout bounds one outbound attempt; callers treat a timeout like any
// other provider failure.
func NewPooledClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: sharedTransport,
	}
}
