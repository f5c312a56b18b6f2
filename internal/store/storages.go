package store

import (
	"context"

	"github.com/inkfusion/notes-server/internal/config"
	"github.com/inkfusion/notes-server/internal/logger"
)

// Storages bundles every persistence component the services depend on.
type Storages struct {
	UserRepository  UserRepository
	NoteRepository  NoteRepository
	AttachmentFiles AttachmentFileStorage
}

// NewStorages connects to PostgreSQL, applies migrations, prepares the
// attachment file directory, and returns the wired repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		return nil, err
	}

	files, err := NewAttachmentFileStorage(cfg.Files, log)
	if err != nil {
		return nil, err
	}

	return &Storages{
		UserRepository:  NewUserRepository(db, log),
		NoteRepository:  NewNoteRepository(db, log),
		AttachmentFiles: files,
	}, nil
}
