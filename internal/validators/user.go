// Package validators contains input validation rules applied before any
// service logic runs. Rules live here, outside the services, so that they
// can be tested in isolation and shared across transports.
package validators

import (
	"net/mail"

	"github.com/inkfusion/notes-server/models"
)

const (
	minNameLength     = 3
	minPasswordLength = 5
)

// ValidateRegistration checks the sign-up input: display name of at least
// three characters, a syntactically valid email, and a password of at least
// five characters. Returns the first violated rule as a sentinel error.
func ValidateRegistration(user models.User) error {
	if len(user.Name) < minNameLength {
		return ErrNameTooShort
	}

	if !isValidEmail(user.Email) {
		return ErrInvalidEmail
	}

	if len(user.Password) < minPasswordLength {
		return ErrPasswordTooShort
	}

	return nil
}

// ValidateLogin checks the login input: a syntactically valid email and a
// non-blank password. Password length is deliberately not re-checked here;
// a wrong-length password simply fails authentication.
func ValidateLogin(user models.User) error {
	if !isValidEmail(user.Email) {
		return ErrInvalidEmail
	}

	if user.Password == "" {
		return ErrPasswordRequired
	}

	return nil
}

// isValidEmail accepts addr only when it parses as a bare RFC 5322 address
// (no display name form like "Name <a@b>").
func isValidEmail(addr string) bool {
	if addr == "" {
		return false
	}

	parsed, err := mail.ParseAddress(addr)
	if err != nil {
		return false
	}

	return parsed.Address == addr
}
