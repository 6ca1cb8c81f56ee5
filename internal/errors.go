package internal

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	errNotFound   = statusErr(http.StatusNotFound)
	errBadRequest = statusErr(http.StatusBadRequest)

	// errQueueFull is returned when the outbox can't accept more deliveries.
	errQueueFull = errors.New("outbox is full")
)

// statusErr is an error carrying an HTTP status code. Upstream responses are
// mapped to it by errorProxyTransport so handlers can return the same code.
type statusErr int

func (s statusErr) Error() string {
	return fmt.Sprintf("%d: %s", int(s), http.StatusText(int(s)))
}

// Status returns the HTTP status code.
func (s statusErr) Status() int {
	return int(s)
}

// statusOf maps an error to the response code we should return for it.
func statusOf(err error) int {
	var s interface{ Status() int }
	if errors.As(err, &s) {
		return s.Status()
	}
	return http.StatusInternalServerError
}
