package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure so callers can react without parsing messages.
type Kind string

const (
	KindValidation       Kind = "validation"
	KindDecode           Kind = "decode"
	KindNotFound         Kind = "not_found"
	KindInvalidDimension Kind = "invalid_dimension"
	KindIO               Kind = "io"
	KindPath             Kind = "path"
	KindUnknownAction    Kind = "unknown_action"
	KindInternal         Kind = "internal"
)

// Error is the error type returned by every request-level operation.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind, so sentinel-style checks work:
// errors.Is(err, &apperror.Error{Kind: apperror.KindDecode}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// HTTPStatus maps the kind onto a response status.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindDecode, KindInvalidDimension, KindPath:
		return http.StatusBadRequest
	case KindNotFound, KindUnknownAction:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func newError(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func Validation(format string, args ...interface{}) *Error {
	return newError(KindValidation, nil, format, args...)
}

func Decode(err error, format string, args ...interface{}) *Error {
	return newError(KindDecode, err, format, args...)
}

func NotFound(err error, format string, args ...interface{}) *Error {
	return newError(KindNotFound, err, format, args...)
}

func InvalidDimension(format string, args ...interface{}) *Error {
	return newError(KindInvalidDimension, nil, format, args...)
}

func IO(err error, format string, args ...interface{}) *Error {
	return newError(KindIO, err, format, args...)
}

func Path(err error, format string, args ...interface{}) *Error {
	return newError(KindPath, err, format, args...)
}

func UnknownAction(action string) *Error {
	return newError(KindUnknownAction, nil, "unknown action %q", action)
}

// KindOf reports the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// StatusOf is the HTTP status for any error.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus()
	}
	return http.StatusInternalServerError
}
