package ekap

import (
	"errors"
	"fmt"
)

// ErrTenderNotFound is returned when the detail endpoint answers with an empty item.
var ErrTenderNotFound = errors.New("tender details not found")

// StatusError reports a non-2xx answer from the EKAP API.
type StatusError struct {
	StatusCode int
	Body       string
	URL        string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API request to %s failed with status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("API request to %s failed with status %d: %s", e.URL, e.StatusCode, e.Body)
}

// RequestError wraps every other failure of a call: DNS, timeouts,
// encoding and malformed JSON.
type RequestError struct {
	Endpoint string
	Err      error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.Endpoint, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// StatusCode extracts the upstream status from err, if it carries one.
func StatusCode(err error) (int, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode, true
	}
	return 0, false
}
