package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error beyond its HTTP status code.
type Kind string

const (
	KindInvalidInput  Kind = "invalid_input"
	KindNotFound      Kind = "not_found"
	KindInternal      Kind = "internal"
	KindConfiguration Kind = "configuration"
	KindUpstream      Kind = "upstream"
)

type AppError struct {
	Code    int    `json:"-"`
	Kind    Kind   `json:"-"`
	Message string `json:"error"`
	Op      string `json:"-"`
	Err     error  `json:"-"`

	// Upstream details, set only for KindUpstream.
	UpstreamStatus int    `json:"-"`
	UpstreamBody   string `json:"-"`
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

func InvalidInput(op string, err error, message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindInvalidInput,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

func NotFound(op string, err error, message string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

func Internal(op string, err error, message string) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

// Configuration marks a missing or invalid process-level setting. Fatal and
// never retried.
func Configuration(op string, message string) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindConfiguration,
		Message: message,
		Op:      op,
	}
}

// Upstream marks a non-2xx response from the generation endpoint. The status
// and body are the remote ones; the local code is always 502.
func Upstream(op string, status int, body string) *AppError {
	return &AppError{
		Code:           http.StatusBadGateway,
		Kind:           KindUpstream,
		Message:        fmt.Sprintf("generation endpoint returned %d", status),
		Op:             op,
		UpstreamStatus: status,
		UpstreamBody:   body,
	}
}

func IsNotFound(err error) bool {
	return hasKind(err, KindNotFound)
}

func IsConfiguration(err error) bool {
	return hasKind(err, KindConfiguration)
}

func IsUpstream(err error) bool {
	return hasKind(err, KindUpstream)
}

func hasKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
