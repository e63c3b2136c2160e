package api

import "fmt"

// TransportError reports a failure to complete the HTTP exchange: timeout,
// connection failure, or a non-2xx status. The underlying message is
// preserved for user-facing display.
type TransportError struct {
	URL     string
	Status  int
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("transport error: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("transport error: %s", e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// BackendRejection is an application-level failure: the exchange completed
// but the backend reported success=false with a human-readable message.
type BackendRejection struct {
	Message string
}

func (e *BackendRejection) Error() string {
	if e.Message == "" {
		return "backend rejected the request"
	}
	return e.Message
}
