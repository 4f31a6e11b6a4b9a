package serverutils

import (
	"errors"
	"fmt"
)

// AppError is an error that already knows its HTTP status.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// WrapAppError attaches a status and a public message to err.
func WrapAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// ErrorStatus maps a sentinel error to the status and message sent to the
// client. An empty Message means the error text is sent.
type ErrorStatus struct {
	Err     error
	Code    int
	Message string
}

func resolveStatus(err error, statuses []ErrorStatus) (int, string, bool) {
	for _, s := range statuses {
		if errors.Is(err, s.Err) {
			msg := s.Message
			if msg == "" {
				msg = err.Error()
			}
			return s.Code, msg, true
		}
	}
	return 0, "", false
}
