package exceptions

import (
	"errors"
	"fmt"
	"runtime"

	"doctor-booking-service/internal/pkg/constvars"
)

// Kind classifies a failure independently of its HTTP status.
type Kind string

const (
	KindValidation        Kind = "VALIDATION"
	KindOverlap           Kind = "OVERLAP"
	KindNotFound          Kind = "NOT_FOUND"
	KindForbidden         Kind = "FORBIDDEN"
	KindSlotUnavailable   Kind = "SLOT_UNAVAILABLE"
	KindConflict          Kind = "CONFLICT"
	KindInvalidTransition Kind = "INVALID_TRANSITION"
	KindUnauthorized      Kind = "UNAUTHORIZED"
	KindInternal          Kind = "INTERNAL"
)

type CustomError struct {
	StatusCode    int        `json:"status_code"`
	Success       bool       `json:"success"`
	ClientMessage string     `json:"message"`
	Kind          Kind       `json:"error_kind"`
	IsRetryable   bool       `json:"retryable"`
	DevMessage    string     `json:"dev_message,omitempty"`
	Locations     []Location `json:"locations,omitempty"`

	cause error
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if len(e.Locations) == 0 {
		return e.DevMessage
	}
	location := e.Locations[0]
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, location.File, location.Line, location.FunctionName)
}

func (e *CustomError) Unwrap() error {
	return e.cause
}

// Retryable reports whether repeating the same request may succeed.
func (e *CustomError) Retryable() bool {
	return e.IsRetryable
}

// BuildNewCustomError wraps err with an HTTP status and messages. When err is
// already a CustomError the caller location is appended and the original kind
// and status are kept, so the innermost classification wins.
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	return buildNewCustomError(err, statusCode, kindFromStatus(statusCode), clientMessage, devMessage)
}

func buildNewCustomError(err error, statusCode int, kind Kind, clientMessage, devMessage string) *CustomError {
	location := getLocation(3)

	var existing *CustomError
	if errors.As(err, &existing) {
		return &CustomError{
			StatusCode:    existing.StatusCode,
			ClientMessage: existing.ClientMessage,
			Kind:          existing.Kind,
			IsRetryable:   existing.IsRetryable,
			DevMessage:    existing.DevMessage,
			Locations:     append(append([]Location{}, existing.Locations...), location),
			cause:         err,
		}
	}

	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}

	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		Kind:          kind,
		IsRetryable:   retryableByDefault(kind, statusCode),
		DevMessage:    devMessage,
		Locations:     []Location{location},
		cause:         err,
	}
}

// IsKind reports whether any CustomError in err's chain carries kind.
func IsKind(err error, kind Kind) bool {
	var customErr *CustomError
	for err != nil {
		if !errors.As(err, &customErr) {
			return false
		}
		if customErr.Kind == kind {
			return true
		}
		err = customErr.cause
	}
	return false
}

// IsRetryable reports whether err is a CustomError marked retryable.
func IsRetryable(err error) bool {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Retryable()
	}
	return false
}

func kindFromStatus(statusCode int) Kind {
	switch statusCode {
	case constvars.StatusBadRequest:
		return KindValidation
	case constvars.StatusUnauthorized:
		return KindUnauthorized
	case constvars.StatusForbidden:
		return KindForbidden
	case constvars.StatusNotFound:
		return KindNotFound
	case constvars.StatusConflict:
		return KindConflict
	default:
		return KindInternal
	}
}

func retryableByDefault(kind Kind, statusCode int) bool {
	switch kind {
	case KindSlotUnavailable, KindConflict:
		return true
	case KindInternal:
		return statusCode == constvars.StatusServiceUnavailable ||
			statusCode == constvars.StatusGatewayTimeout ||
			statusCode == constvars.StatusBadGateway ||
			statusCode == constvars.StatusTooManyRequests
	default:
		return false
	}
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
