package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

// WrappedError is an error that includes additional context and caller information.
type WrappedError struct {
	msg    string
	cause  error
	caller string
}

// Error implements the error interface.
func (e *WrappedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

// Unwrap returns the underlying error.
func (e *WrappedError) Unwrap() error {
	return e.cause
}

// Caller returns the caller information.
func (e *WrappedError) Caller() string {
	return e.caller
}

// WrapError wraps an error with a message and caller information.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}

	_, file, line, ok := runtime.Caller(1)
	caller := "unknown"
	if ok {
		parts := strings.Split(file, "/")
		if len(parts) > 2 {
			file = strings.Join(parts[len(parts)-2:], "/")
		}
		caller = fmt.Sprintf("%s:%d", file, line)
	}

	return &WrappedError{
		msg:    msg,
		cause:  err,
		caller: caller,
	}
}

// WithError creates an slog.Attr for an error with detailed information.
func WithError(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}

	attrs := []any{
		slog.String("message", err.Error()),
		slog.String("type", fmt.Sprintf("%T", err)),
	}

	if cause := errors.Unwrap(err); cause != nil {
		attrs = append(attrs, slog.String("cause", cause.Error()))
	}

	var we *WrappedError
	if errors.As(err, &we) {
		attrs = append(attrs, slog.String("caller", we.Caller()))
	}

	return slog.Group("error", attrs...)
}
