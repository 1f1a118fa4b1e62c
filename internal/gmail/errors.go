package gmail

import "fmt"

// TransportError reports a failed provider call: either the connection
// itself failed (Status 0) or the provider answered with a non-2xx
// status. The raw response body is kept where available.
type TransportError struct {
	Status int
	Body   string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("mail provider returned HTTP %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("mail provider unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a response body that did not match the expected
// wire shape.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
