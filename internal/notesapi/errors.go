package notesapi

import "fmt"

// TransportError is the only error kind the client returns. StatusCode is zero when
// no response was received.
type TransportError struct {
	Op         string
	Method     string
	URL        string
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s note: status %d: %s", e.Op, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s note: %s", e.Op, msg)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
