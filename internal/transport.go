package internal

import (
	"net/http"
	"slices"
	"time"

	"golang.org/x/time/rate"
)

// _backoffLimit is 1RPM.
var _backoffLimit = rate.Every(time.Hour / 60)

// _slowDownCodes are the statuses an upstream uses to tell us to slow down.
var _slowDownCodes = []int{http.StatusForbidden, http.StatusTooManyRequests}

// throttledTransport rate limits requests. After the upstream tells us to slow
// down the limit drops to 1RPM for a minute.
type throttledTransport struct {
	http.RoundTripper
	*rate.Limiter

	// slowDown lists the statuses which trigger a backoff. Nil means
	// _slowDownCodes.
	slowDown []int
}

func (t throttledTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if err := t.Limiter.Wait(r.Context()); err != nil {
		return nil, err
	}
	resp, err := t.RoundTripper.RoundTrip(r)

	if backoff(resp, err, t.slowDown) && t.Limiter.Limit() != _backoffLimit {
		Log(r.Context()).Warn("backing off", "limit", t.Limiter.Limit(), "tokens", t.Limiter.Tokens())
		orig := t.Limiter.Limit()
		t.Limiter.SetLimit(_backoffLimit)
		time.AfterFunc(time.Minute, func() { t.Limiter.SetLimit(orig) }) // Restore
	}

	return resp, err
}

// backoff returns true if the response (or the statusErr it was mapped to)
// carries one of the codes. Nil codes means _slowDownCodes.
func backoff(resp *http.Response, err error, codes []int) bool {
	if codes == nil {
		codes = _slowDownCodes
	}
	code := 0
	if resp != nil {
		code = resp.StatusCode
	} else if s, ok := err.(statusErr); ok {
		code = s.Status()
	}
	return slices.Contains(codes, code)
}

// ScopedTransport restricts requests to a particular host.
type ScopedTransport struct {
	Host string
	http.RoundTripper
}

// RoundTrip forces the request to stick to the given host, so redirects can't
// send us elsewhere. Helpful to ensuring credentials don't leak to other
// domains.
func (t ScopedTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r.URL.Scheme = "https"
	r.URL.Host = t.Host
	return t.RoundTripper.RoundTrip(r)
}

// HeaderTransport adds a header to all requests. Best used with a
// ScopedTransport.
type HeaderTransport struct {
	Key   string
	Value string
	http.RoundTripper
}

// RoundTrip always sets the header on the request.
func (t *HeaderTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r.Header.Set(t.Key, t.Value)
	return t.RoundTripper.RoundTrip(r)
}

// errorProxyTransport returns a non-nil statusErr for all response codes 400
// and above so we can return a response with the same code.
type errorProxyTransport struct {
	http.RoundTripper
}

// RoundTrip wraps upstream 4XX and 5XX errors such that they are returned
// directly to the client.
func (t errorProxyTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	resp, err := t.RoundTripper.RoundTrip(r)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		_ = resp.Body.Close()
		return nil, statusErr(resp.StatusCode)
	}
	return resp, nil
}

// NewUpstream creates a new http.Client with middleware appropriate for use
// with an upstream. Requests are pinned to the given host and spaced by at
// least the given interval.
func NewUpstream(host string, every time.Duration) *http.Client {
	return newUpstream(host, every, http.DefaultTransport, _slowDownCodes...)
}

func newUpstream(host string, every time.Duration, base http.RoundTripper, slowDown ...int) *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: throttledTransport{
			Limiter:  rate.NewLimiter(rate.Every(every), 1),
			slowDown: slowDown,
			RoundTripper: ScopedTransport{
				Host:         host,
				RoundTripper: errorProxyTransport{base},
			},
		},
	}
}
