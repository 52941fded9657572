package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure kinds. Every error returned by the request pipeline is an
// *APIError that matches exactly one of these with errors.Is.
var (
	ErrUnreachable        = errors.New("server unreachable")
	ErrBadRequest         = errors.New("bad request")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrServerError        = errors.New("server error")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrOther              = errors.New("request failed")
)

// APIError is a normalized failure of a backend exchange.
// Status is 0 when no response was received.
type APIError struct {
	Status  int
	Message string
	URL     string
	Err     error
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap exposes both the failure kind and the underlying cause.
func (e *APIError) Unwrap() []error {
	errs := []error{Kind(e.Status)}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Kind maps an HTTP status to its failure kind.
func Kind(status int) error {
	switch status {
	case 0:
		return ErrUnreachable
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusInternalServerError:
		return ErrServerError
	case http.StatusServiceUnavailable:
		return ErrServiceUnavailable
	default:
		return ErrOther
	}
}

// message picks the user-facing text for status. backend is the message
// found in the response body, if any.
func message(status int, statusText, backend string) string {
	switch status {
	case 0:
		return "Unable to reach the server. Check your connection."
	case http.StatusBadRequest:
		return orDefault(backend, "Invalid request")
	case http.StatusUnauthorized:
		return "Session expired. Please sign in again."
	case http.StatusForbidden:
		return "Access denied. You do not have the required permissions."
	case http.StatusNotFound:
		return orDefault(backend, "Resource not found")
	case http.StatusInternalServerError:
		return "Server error. Please try again later."
	case http.StatusServiceUnavailable:
		return "Service temporarily unavailable"
	default:
		return orDefault(backend, fmt.Sprintf("Error %d: %s", status, statusText))
	}
}

func orDefault(s, def string) string {
	if s != "" {
		return s
	}
	return def
}
