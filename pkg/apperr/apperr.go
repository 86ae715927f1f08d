// Package apperr defines the error taxonomy shared by every service and
// controller. Services return errors wrapping one of the sentinels below;
// controllers translate them to HTTP statuses with Status().
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound means the requested resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a uniqueness rule was violated (duplicate email,
	// duplicate product) or a state transition is not allowed.
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized means the credential is missing, invalid or expired.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the caller is authenticated but lacks permission.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation means the input was well-formed JSON but semantically bad.
	ErrValidation = errors.New("validation failed")
)

// NotFound wraps ErrNotFound with a resource description.
func NotFound(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// Conflict wraps ErrConflict with a description.
func Conflict(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}

// Unauthorized wraps ErrUnauthorized with a description.
func Unauthorized(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrUnauthorized)...)
}

// Forbidden wraps ErrForbidden with a description.
func Forbidden(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrForbidden)...)
}

// Validation wraps ErrValidation with a description.
func Validation(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

// Status maps an error to its HTTP status code.
// Unrecognised errors are treated as internal server errors.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing message for err. Internal errors are
// masked; taxonomy errors pass their text through.
func Message(err error) string {
	if Status(err) == http.StatusInternalServerError {
		return "Internal Server Error"
	}
	return err.Error()
}
