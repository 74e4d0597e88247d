package riskclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMalformedResponse is returned when a 2xx response body cannot be decoded.
var ErrMalformedResponse = errors.New("malformed risk scorer response")

// StatusError is a non-2xx answer from the risk scorer.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("risk scorer responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("risk scorer responded with status %d: %s", e.StatusCode, e.Body)
}

// Temporary reports whether the status is worth another attempt: rate
// limiting and server-side failures.
func (e *StatusError) Temporary() bool {
	switch e.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// isRetryable classifies an attempt error. Transport failures and timeouts
// are retried; malformed bodies and non-transient statuses are not.
func isRetryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return !errors.Is(err, ErrMalformedResponse) && !errors.Is(err, ErrInvalidConfig)
}
