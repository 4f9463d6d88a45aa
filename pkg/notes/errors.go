package notes

import "errors"

// Sentinel errors returned by the service. Callers classify failures with
// errors.Is; the HTTP layer maps them onto status codes.
var (
	// ErrNotFound means the requested note, share, link, or user does not
	// exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized means the caller exists but is not allowed to perform
	// the operation on this resource.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrBadRequest means the request itself is invalid, such as sharing a
	// note with its owner or repeating an existing share.
	ErrBadRequest = errors.New("bad request")
)
