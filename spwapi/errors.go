package spwapi

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// CodeSuccess is the only envelope code that means the call succeeded; the
// rest of the code space belongs to the backend and is treated as opaque.
const CodeSuccess = 0

// Error is an application-level failure: the transport succeeded but the
// envelope carried a non-zero code and a human-readable message.
type Error struct {
	Code int
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("backend error code %d", e.Code)
}

// StatusError is a transport-level failure: the backend answered outside the
// 2xx range.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d", e.Status)
}

// IsAuthFailure reports whether an error from an authenticated endpoint means
// the session token was rejected. The backend does not reserve a dedicated
// code for this; its rejection messages all instruct the user to log in again.
func IsAuthFailure(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	msg := strings.ToLower(apiErr.Msg)
	return strings.Contains(msg, "relogin") || strings.Contains(msg, "please login")
}
