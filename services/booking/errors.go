package booking

import (
	"errors"
	"fmt"
)

const (
	CodeNotFound          = "not_found"
	CodeForbidden         = "forbidden"
	CodeInvalidRequest    = "invalid_request"
	CodeSlotUnavailable   = "slot_unavailable"
	CodeSlotTaken         = "slot_taken"
	CodeInvalidTransition = "invalid_transition"
)

// Error is a booking failure the caller can act on.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns the code of a booking Error anywhere in err's chain, or "".
func CodeOf(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
