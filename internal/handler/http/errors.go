package http

import "errors"

// Sentinel errors used by the HTTP layer when parsing incoming requests.
// Callers can match against them with [errors.Is].
var (
	// ErrMissingAuthToken is returned by the auth middleware when the
	// incoming request does not include an "auth-token" header at all.
	ErrMissingAuthToken = errors.New("missing `auth-token` header")

	// ErrInvalidNoteID is returned when the note ID path parameter is not a
	// well-formed UUID.
	ErrInvalidNoteID = errors.New("invalid note id")

	// ErrTooManyFiles is returned when a multipart request carries more
	// attachment files than MaxFilesPerRequest allows.
	ErrTooManyFiles = errors.New("too many files attached")
)
