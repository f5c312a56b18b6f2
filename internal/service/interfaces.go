package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/inkfusion/notes-server/models"
)

// AuthService handles account registration, credential verification, and the
// JWT token lifecycle.
type AuthService interface {
	// RegisterUser validates the sign-up input, hashes the password, and
	// persists the account. Returns the stored user or
	// ErrInvalidDataProvided / store.ErrEmailAlreadyExists.
	RegisterUser(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates an existing user by email and password. Returns
	// ErrInvalidCredentials for unknown email and wrong password alike.
	Login(ctx context.Context, user models.User) (models.User, error)

	// GetUser returns the profile of the user with the given ID, with all
	// credential material stripped.
	GetUser(ctx context.Context, userID uuid.UUID) (models.User, error)

	// CreateToken issues a signed JWT for the given user.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken validates a raw JWT string and returns the decoded token.
	// Any validation failure is normalised to ErrTokenIsExpiredOrInvalid.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// NoteService implements note CRUD with per-user ownership enforcement.
// Every method takes the authenticated caller's userID; only the owner of a
// note may see or change it.
type NoteService interface {
	// ListNotes returns the caller's notes, newest first. Never returns
	// notes owned by other users.
	ListNotes(ctx context.Context, userID uuid.UUID) ([]models.Note, error)

	// CreateNote stores the uploaded files, applies the default tag when
	// none is given, and persists the note owned by userID.
	CreateNote(ctx context.Context, userID uuid.UUID, input models.Note, files []models.FileUpload) (models.Note, error)

	// UpdateNote applies a partial update to the caller's note, appending
	// any newly uploaded files to its attachment list. The existence check
	// runs before the ownership check: a missing note yields
	// store.ErrNoteNotFound, a foreign note ErrNotNoteOwner.
	UpdateNote(ctx context.Context, userID, noteID uuid.UUID, update models.NoteUpdate, files []models.FileUpload) (models.Note, error)

	// DeleteNote removes the caller's note and its attachment files from
	// storage, with the same existence-before-ownership check ordering.
	DeleteNote(ctx context.Context, userID, noteID uuid.UUID) error
}
