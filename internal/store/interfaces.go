package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/inkfusion/notes-server/models"
)

// UserRepository persists and looks up user accounts.
type UserRepository interface {
	// CreateUser inserts a new user and returns the stored record with
	// server-assigned fields populated. Returns ErrEmailAlreadyExists when
	// the email is already registered.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail returns the user registered under email, or
	// ErrUserNotFound.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID returns the user with the given ID, or ErrUserNotFound.
	FindUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
}

// NoteRepository persists notes and their attachment metadata.
type NoteRepository interface {
	// CreateNote inserts a note together with its attachment records in one
	// transaction and returns the stored note.
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)

	// FindNotesByUserID returns all notes owned by userID, newest first,
	// attachments included and ordered.
	FindNotesByUserID(ctx context.Context, userID uuid.UUID) ([]models.Note, error)

	// FindNoteByID returns the note with the given ID regardless of owner,
	// or ErrNoteNotFound. Ownership checks are the caller's concern.
	FindNoteByID(ctx context.Context, noteID uuid.UUID) (models.Note, error)

	// UpdateNote applies the patch to the note and appends any new
	// attachment records, in one transaction. Returns the updated note or
	// ErrNoteNotFound.
	UpdateNote(ctx context.Context, noteID uuid.UUID, update models.NoteUpdate) (models.Note, error)

	// DeleteNote removes the note row; attachment rows go with it via the
	// schema's cascade. Returns ErrNoteNotFound when no row was deleted.
	DeleteNote(ctx context.Context, noteID uuid.UUID) error

	// ListAttachmentFileNames returns the stored file names of every
	// attachment record. Used by the orphaned-upload cleanup worker.
	ListAttachmentFileNames(ctx context.Context) ([]string, error)
}

// StoredFile describes one file found in the attachment storage directory.
type StoredFile struct {
	Name    string
	ModTime time.Time
}

// AttachmentFileStorage writes, removes, and enumerates attachment files on
// the underlying filesystem.
type AttachmentFileStorage interface {
	// Save streams the upload into storage under a freshly generated name
	// and returns the resulting attachment metadata (without IDs; those are
	// assigned when the record is persisted).
	Save(ctx context.Context, upload models.FileUpload) (models.Attachment, error)

	// Remove deletes the file at the given storage path. A file that is
	// already gone is not an error.
	Remove(ctx context.Context, path string) error

	// List enumerates the files currently present in storage.
	List(ctx context.Context) ([]StoredFile, error)

	// Dir returns the directory the files are stored in, for static serving.
	Dir() string
}
