package client

import "fmt"

// HTTPError is returned when the backend answers with a non-2xx status.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("client: http %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("client: http %d", e.Status)
}

// ParseError is returned when a 2xx response body is not valid JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("client: parse response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
