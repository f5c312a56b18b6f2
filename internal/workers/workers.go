package workers

import (
	"context"

	"github.com/inkfusion/notes-server/internal/config"
	"github.com/inkfusion/notes-server/internal/logger"
	"github.com/inkfusion/notes-server/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the application's background workers from the
// configuration. Workers whose configuration disables them are not created.
func NewWorkers(storages *store.Storages, cfg config.Workers, logger *logger.Logger) *Workers {
	var all []Worker

	if cfg.CleanupInterval > 0 {
		all = append(all, newUploadsCleanupWorker(
			storages.AttachmentFiles,
			storages.NoteRepository,
			cfg.CleanupInterval,
			cfg.CleanupGrace,
			logger,
		))
	}

	return &Workers{workers: all}
}

// Run starts every worker in its own goroutine and returns immediately.
// The workers stop when ctx is cancelled.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		go worker.Run(ctx)
	}
}
