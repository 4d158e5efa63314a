package catalog

import (
	"errors"
	"fmt"
)

const (
	msgNetwork         = "Network error"
	msgInvalidResponse = "Invalid response from server"
)

// RequestError is the only failure kind the admin views model: a request
// that did not produce usable data. Error returns the display message.
type RequestError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string { return e.Message }

func (e *RequestError) Unwrap() error { return e.Err }

// Message returns the user-facing text for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var re *RequestError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return err.Error()
}

func statusError(op string, status int, serverMsg string) *RequestError {
	msg := serverMsg
	if msg == "" {
		msg = fmt.Sprintf("Request failed with status code %d", status)
	}
	return &RequestError{Op: op, Status: status, Message: msg}
}
