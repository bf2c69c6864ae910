package gateway

import "fmt"

// RequestError means the server answered with a non-success status. The
// response body is carried as diagnostic text.
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: status %d: %s", e.Status, e.Body)
}

// TransportError means no response reached the client at all.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failed: %v", e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}
