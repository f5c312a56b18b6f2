package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account entity used for authentication and note
// ownership. Sensitive fields must never be exposed outside trusted
// boundaries.
type User struct {
	// UserID is the unique identifier of the user, assigned by the
	// database on creation.
	UserID uuid.UUID `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the unique login key of the account.
	Email string `json:"email"`

	// Password carries the plaintext password on inbound register/login
	// requests only. It is never persisted and never serialized back.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash stored in the database.
	// Excluded from JSON so it can never leak through a response.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Profile returns a copy of the user safe to return to the caller:
// the plaintext password and the stored hash are both stripped.
func (u User) Profile() User {
	u.Password = ""
	u.PasswordHash = ""
	return u
}
