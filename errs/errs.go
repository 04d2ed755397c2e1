// Package errs defines the error taxonomy shared by the core
// components. Core operations return these errors instead of writing
// HTTP responses; the handler layer classifies them with errors.Is and
// maps each class to a status code.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation marks malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an absent entity.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized marks an authenticated caller forbidden by
	// ownership or role.
	ErrUnauthorized = errors.New("not authorized")

	// ErrCapacityExceeded marks a delivery service with no free slots.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrServiceUnavailable marks a delivery service that is inactive
	// or outside its time window.
	ErrServiceUnavailable = errors.New("delivery service is not available")

	// ErrInvalidState marks an operation not allowed in the order's
	// current status.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidTransition marks a status change outside the state
	// machine's adjacency table.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrUnexpected marks storage or infrastructure failure. Its
	// detail is logged server-side and never leaked to the caller.
	ErrUnexpected = errors.New("server error")
)

// Validation wraps ErrValidation with a caller-facing detail message.
func Validation(format string, args ...any) error {
	return wrap(ErrValidation, format, args...)
}

// NotFound wraps ErrNotFound naming the missing entity.
func NotFound(format string, args ...any) error {
	return wrap(ErrNotFound, format, args...)
}

// Unauthorized wraps ErrUnauthorized with the denied action.
func Unauthorized(format string, args ...any) error {
	return wrap(ErrUnauthorized, format, args...)
}

// InvalidState wraps ErrInvalidState with the offending status.
func InvalidState(format string, args ...any) error {
	return wrap(ErrInvalidState, format, args...)
}

// InvalidTransition wraps ErrInvalidTransition with the rejected move.
func InvalidTransition(format string, args ...any) error {
	return wrap(ErrInvalidTransition, format, args...)
}

// Unexpected wraps an infrastructure error so it classifies as
// ErrUnexpected while keeping the cause available via Unwrap.
func Unexpected(cause error) error {
	return fmt.Errorf("%w: %w", ErrUnexpected, cause)
}

func wrap(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}

// HTTPStatus maps a taxonomy member to its response status code.
// Unknown errors are treated as unexpected.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrCapacityExceeded),
		errors.Is(err, ErrServiceUnavailable),
		errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrInvalidTransition):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
