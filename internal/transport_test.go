package internal

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestScopedHeaderTransport(t *testing.T) {
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "mangamirror/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "/graphql", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(ts.Close)

	client := &http.Client{
		Transport: &HeaderTransport{
			Key:   "User-Agent",
			Value: "mangamirror/1.0",
			RoundTripper: ScopedTransport{
				Host:         ts.Listener.Addr().String(),
				RoundTripper: ts.Client().Transport,
			},
		},
	}

	// The host is rewritten no matter where we point the request.
	resp, err := client.Get("http://elsewhere.example/graphql")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestErrorProxyTransport(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(ts.Close)

	client := &http.Client{Transport: errorProxyTransport{http.DefaultTransport}}

	_, err := client.Get(ts.URL)
	require.Error(t, err)

	var s statusErr
	require.True(t, errors.As(err, &s))
	assert.Equal(t, http.StatusBadGateway, s.Status())
}

func TestThrottledTransportBacksOff(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(ts.Close)

	limiter := rate.NewLimiter(rate.Every(time.Millisecond), 1)
	client := &http.Client{
		Transport: throttledTransport{
			Limiter:      limiter,
			RoundTripper: errorProxyTransport{http.DefaultTransport},
		},
	}

	_, err := client.Get(ts.URL)
	require.Error(t, err)
	assert.Equal(t, http.StatusTooManyRequests, statusOf(err))

	assert.Equal(t, rate.Every(time.Minute), limiter.Limit())
}

func TestBackoff(t *testing.T) {
	assert.True(t, backoff(&http.Response{StatusCode: http.StatusForbidden}, nil, nil))
	assert.True(t, backoff(nil, statusErr(http.StatusTooManyRequests), nil))
	assert.False(t, backoff(&http.Response{StatusCode: http.StatusOK}, nil, nil))
	assert.False(t, backoff(nil, errors.New("connection reset"), nil))

	onlyTooMany := []int{http.StatusTooManyRequests}
	assert.False(t, backoff(nil, statusErr(http.StatusForbidden), onlyTooMany))
	assert.True(t, backoff(nil, statusErr(http.StatusTooManyRequests), onlyTooMany))
}
