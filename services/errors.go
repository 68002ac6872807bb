package services

import "net/http"

// Error is the normalized failure every service operation returns. It
// carries the HTTP status to put on the wire, a stable machine-readable
// code, and a human-readable message. Controllers map it onto the response
// envelope and add nothing.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// ErrBadRequest builds a 400 validation/illegal-field error.
func ErrBadRequest(code, message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: code, Message: message}
}

// ErrUnauthenticated builds a 401 missing/invalid/stale-session error.
func ErrUnauthenticated(code, message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: code, Message: message}
}

// ErrForbidden builds a 403 insufficient-role error.
func ErrForbidden(code, message string) *Error {
	return &Error{Status: http.StatusForbidden, Code: code, Message: message}
}

// ErrNotFound builds a 404 missing-entity error.
func ErrNotFound(code, message string) *Error {
	return &Error{Status: http.StatusNotFound, Code: code, Message: message}
}

// ErrConflict builds a 409 uniqueness-violation error.
func ErrConflict(code, message string) *Error {
	return &Error{Status: http.StatusConflict, Code: code, Message: message}
}

// ErrServer builds a 500 unexpected/store-failure error.
func ErrServer(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: "DATABASE_ERROR", Message: message}
}
