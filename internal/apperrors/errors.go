package apperrors

import (
	"errors"
	"fmt"
)

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConfiguration indicates a missing or invalid required setting. Fatal at startup.
var ErrConfiguration = errors.New("configuration error")

// ErrStorage indicates that the persistence engine rejected an operation.
var ErrStorage = errors.New("storage error")

// ErrUpstreamUnavailable indicates that the rate source could not be reached or
// answered with a non-2xx status or malformed JSON.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// ErrUpstreamData indicates that the rate source answered but the payload lacks
// the requested data.
var ErrUpstreamData = errors.New("upstream data error")

// ErrCacheDecode indicates a malformed cached payload. Callers treat it as a cache miss.
var ErrCacheDecode = errors.New("cache decode error")

// AppError carries an HTTP-ish status code alongside the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
