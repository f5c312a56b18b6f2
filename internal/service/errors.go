package service

import "errors"

var (
	// ErrInvalidDataProvided wraps input validation failures. The message of
	// the wrapped validator error is safe to show to the caller.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is returned on login for both an unknown email
	// and a wrong password, deliberately indistinguishable so callers cannot
	// enumerate registered accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenIsExpiredOrInvalid normalises every token validation failure
	// (bad signature, wrong issuer, expired, malformed) into one error.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrTokenCreationFailed is returned when signing a new JWT fails.
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrNotNoteOwner is returned when an authenticated user targets a note
	// owned by somebody else. No note content accompanies this error.
	ErrNotNoteOwner = errors.New("note belongs to another user")
)
