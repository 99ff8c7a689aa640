package rest

import "net/http"

// StatusError carries an HTTP status alongside the underlying error.
type StatusError interface {
	error                // the actual error that occurred
	Status() int         // the HTTP status code to return
	UserMessage() string // the message to return to the client
}

// NewRestError creates an error returned to the client with the provided
// status, user-facing message and internal error.
func NewRestError(status int, msg string, err error) *Error {
	return &Error{
		status:      status,
		userMessage: msg,
		err:         err,
	}
}

// NewBadRequestError creates a rest error for malformed client input.
func NewBadRequestError(err error) *Error {
	return &Error{
		status:      http.StatusBadRequest,
		userMessage: err.Error(),
		err:         err,
	}
}

// NewNotFoundError creates a rest error for a missing resource.
func NewNotFoundError(msg string, err error) *Error {
	return &Error{
		status:      http.StatusNotFound,
		userMessage: msg,
		err:         err,
	}
}

// Error is the implementation of StatusError.
type Error struct {
	status      int
	userMessage string
	err         error
}

func (e *Error) UserMessage() string {
	return e.userMessage
}

func (e *Error) Status() int {
	return e.status
}

func (e *Error) Error() string {
	return e.err.Error()
}
