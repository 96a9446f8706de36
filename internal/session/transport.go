package session

import (
	"net/http"

	"golang.org/x/time/rate"
)

// TokenSource provides the bearer token to attach to an outbound request.
//
// [Manager] implements this; tests can substitute a fixed source.
type TokenSource interface {
	CurrentToken() string
}

// Transport is an [http.RoundTripper] that signs requests with the current
// bearer token and applies uniform client-side pacing.
//
// The token is resolved per request, never captured at construction, so a
// client built before login signs its next request with the post-login
// token.
type Transport struct {
	Base    http.RoundTripper
	Source  TokenSource
	Limiter *rate.Limiter
}

// NewTransport creates a Transport over http.DefaultTransport.
//
// requestsPerSecond <= 0 disables pacing.
func NewTransport(source TokenSource, requestsPerSecond float64) *Transport {
	var limiter *rate.Limiter
	if requestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}

	return &Transport{Source: source, Limiter: limiter}
}

// RoundTrip implements [http.RoundTripper].
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Limiter != nil {
		if err := t.Limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}

	if token := t.Source.CurrentToken(); token != "" {
		// Clone before mutating: RoundTrippers must not modify the caller's request.
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	return base.RoundTrip(req)
}
