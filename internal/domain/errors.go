package domain

import (
	"errors"
	"fmt"
)

var (
	ErrProbeTimeout           = errors.New("probe timed out")
	ErrProbeConnectionFailure = errors.New("probe connection failed")
	ErrProbeProtocolError     = errors.New("probe protocol error")
	ErrDependencyUnavailable  = errors.New("dependency unavailable")
	ErrConfigurationMissing   = errors.New("configuration missing")
	ErrInternalServerError    = errors.New("internal server error")
)

type (
	// DomainError wraps a failure with a stable code and the HTTP status
	// the API surface should translate it to. Probe failures never become
	// DomainErrors; they are folded into health records as data.
	DomainError struct {
		Code       string
		Message    string
		StatusCode int
		Cause      error
		Details    map[string]any
	}
)

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Cause.Error())
	}

	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

func NewDomainError(code, message string, statusCode int, cause error) *DomainError {
	return &DomainError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Cause:      cause,
		Details:    make(map[string]any),
	}
}

func (e *DomainError) WithDetails(key string, value any) *DomainError {
	e.Details[key] = value

	return e
}

func NewInvalidPeriodError(period string, cause error) *DomainError {
	return NewDomainError(
		"INVALID_PERIOD",
		fmt.Sprintf("Invalid collection period: %s", period),
		400,
		cause,
	).WithDetails("period", period)
}

func NewInternalServerError(message string, cause error) *DomainError {
	return NewDomainError(
		"INTERNAL_SERVER_ERROR",
		message,
		500,
		cause,
	)
}
