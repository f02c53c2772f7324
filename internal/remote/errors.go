package remote

import "errors"

var (
	// ErrInvalidCredentials indicates login was rejected for a bad
	// email/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPermissionDenied indicates the backend refused an operation the
	// current session is not allowed to perform.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUnavailable indicates the backend could not be reached or failed
	// on its side. Callers treat this as a transient offline condition.
	ErrUnavailable = errors.New("cloud unavailable")

	// ErrUnknown covers backend responses that fit no other category.
	ErrUnknown = errors.New("unknown cloud error")
)
