package http

import (
	"github.com/inkfusion/notes-server/internal/config"
	"github.com/inkfusion/notes-server/internal/logger"
	"github.com/inkfusion/notes-server/internal/service"
)

type Handler struct {
	services *service.Services

	// uploadsDir is where attachment files live; served via /uploads/*.
	uploadsDir string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Storage, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:   services,
		uploadsDir: cfg.Files.UploadsDir,
		logger:     logger,
	}
}
