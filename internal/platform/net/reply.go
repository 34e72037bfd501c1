package net

import (
	"net/http"

	perr "reportgate/internal/platform/errors"
)

// Wire is the error body used by transports. Success responses write the
// payload directly; only failures carry this envelope
type Wire struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Error maps any error to a status code and a Wire body. The short error
// string never leaks the wrapped cause; the cause rides in message only
// for server-side failures so callers can report upstream detail
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return http.StatusOK, Wire{RequestID: reqID}
	}
	status := perr.HTTPStatus(err)
	w := Wire{RequestID: reqID}
	if e, ok := perr.As(err); ok {
		w.Error = e.Message()
		if status >= http.StatusInternalServerError {
			if cause := e.Unwrap(); cause != nil {
				w.Message = cause.Error()
			}
		}
		return status, w
	}
	w.Error = http.StatusText(status)
	w.Message = err.Error()
	return status, w
}

// NotFound is the body for unknown routes
func NotFound(reqID string) (int, Wire) {
	return http.StatusNotFound, Wire{Error: "Not found", RequestID: reqID}
}
