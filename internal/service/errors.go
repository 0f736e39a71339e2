package service

import "net/http"

// StatusError carries the HTTP status a request-level failure maps to.
// Handlers render it as {"error": Message} with that status.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string { return e.Message }

// ErrUnknownAction is returned for actions outside the fixed enum.
var ErrUnknownAction = &StatusError{Status: http.StatusBadRequest, Message: "Unknown action"}
