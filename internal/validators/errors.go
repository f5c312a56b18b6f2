package validators

import "errors"

// Sentinel validation errors for user input. Callers match them with
// [errors.Is]; the handler layer surfaces their messages verbatim.
var (
	ErrNameTooShort     = errors.New("name must be at least 3 characters")
	ErrInvalidEmail     = errors.New("enter a valid email")
	ErrPasswordTooShort = errors.New("password must be at least 5 characters")
	ErrPasswordRequired = errors.New("password cannot be blank")
)
