// Package service contains the application's business logic: account
// registration and login, JWT issuance and verification, and note CRUD with
// per-user ownership enforcement. Services receive their storage and
// configuration dependencies explicitly at construction.
package service

import (
	"github.com/inkfusion/notes-server/internal/config"
	"github.com/inkfusion/notes-server/internal/logger"
	"github.com/inkfusion/notes-server/internal/store"
)

type Services struct {
	AuthService AuthService
	NoteService NoteService
}

func NewServices(storages *store.Storages, cfg config.App, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(storages.UserRepository, cfg, logger),
		NoteService: NewNoteService(storages.NoteRepository, storages.AttachmentFiles, logger),
	}
}
