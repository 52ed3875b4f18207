package models

import (
	"fmt"
	"net/http"
)

// Error kinds exposed to clients. Each maps to one HTTP status.
const (
	ErrKindNotFound            = "not_found"
	ErrKindUnauthorized        = "unauthorized"
	ErrKindForbidden           = "forbidden"
	ErrKindValidation          = "validation"
	ErrKindRateLimited         = "rate_limited"
	ErrKindUpstreamUnavailable = "upstream_unavailable"
	ErrKindInternal            = "internal"
)

// APIError is the stable error shape returned by every endpoint:
// a machine-checkable kind plus a human-readable message. Detail
// carries internal context and is only serialized in development.
type APIError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Status maps the error kind to its HTTP status code.
func (e *APIError) Status() int {
	switch e.Kind {
	case ErrKindNotFound:
		return http.StatusNotFound
	case ErrKindUnauthorized:
		return http.StatusUnauthorized
	case ErrKindForbidden:
		return http.StatusForbidden
	case ErrKindValidation:
		return http.StatusBadRequest
	case ErrKindRateLimited:
		return http.StatusTooManyRequests
	case ErrKindUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func NewNotFound(what string) *APIError {
	return &APIError{Kind: ErrKindNotFound, Message: what + " not found"}
}

func NewUnauthorized(msg string) *APIError {
	return &APIError{Kind: ErrKindUnauthorized, Message: msg}
}

func NewForbidden(msg string) *APIError {
	return &APIError{Kind: ErrKindForbidden, Message: msg}
}

func NewValidation(msg string) *APIError {
	return &APIError{Kind: ErrKindValidation, Message: msg}
}

func NewRateLimited() *APIError {
	return &APIError{Kind: ErrKindRateLimited, Message: "too many requests, try again later"}
}

func NewUpstreamUnavailable(provider string, cause error) *APIError {
	e := &APIError{Kind: ErrKindUpstreamUnavailable, Message: provider + " unavailable"}
	if cause != nil {
		e.Detail = cause.Error()
	}
	return e
}

func NewInternal(cause error) *APIError {
	e := &APIError{Kind: ErrKindInternal, Message: "server error"}
	if cause != nil {
		e.Detail = cause.Error()
	}
	return e
}
