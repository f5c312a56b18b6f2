package workers

import (
	"context"
	"path/filepath"
	"time"

	"github.com/inkfusion/notes-server/internal/logger"
	"github.com/inkfusion/notes-server/internal/store"
)

// uploadsCleanupWorker periodically removes files from the uploads directory
// that no attachment row references anymore. A grace period protects files
// that were just written but whose database rows have not committed yet.
type uploadsCleanupWorker struct {
	files    store.AttachmentFileStorage
	notes    store.NoteRepository
	interval time.Duration
	grace    time.Duration

	logger *logger.Logger
}

func newUploadsCleanupWorker(
	files store.AttachmentFileStorage,
	notes store.NoteRepository,
	interval time.Duration,
	grace time.Duration,
	logger *logger.Logger,
) *uploadsCleanupWorker {
	return &uploadsCleanupWorker{
		files:    files,
		notes:    notes,
		interval: interval,
		grace:    grace,
		logger:   logger,
	}
}

func (w *uploadsCleanupWorker) Run(ctx context.Context) {
	w.logger.Info().
		Dur("interval", w.interval).
		Dur("grace", w.grace).
		Msg("uploads cleanup worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("uploads cleanup worker stopped")
			return
		case <-ticker.C:
			if removed, err := w.Sweep(ctx); err != nil {
				w.logger.Err(err).Msg("uploads cleanup sweep failed")
			} else if removed > 0 {
				w.logger.Info().Int("removed", removed).Msg("removed orphaned upload files")
			}
		}
	}
}

// Sweep performs a single cleanup pass and reports how many orphaned files
// were removed.
func (w *uploadsCleanupWorker) Sweep(ctx context.Context) (int, error) {
	referencedNames, err := w.notes.ListAttachmentFileNames(ctx)
	if err != nil {
		return 0, err
	}

	referenced := make(map[string]struct{}, len(referencedNames))
	for _, name := range referencedNames {
		referenced[name] = struct{}{}
	}

	stored, err := w.files.List(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-w.grace)

	removed := 0
	for _, file := range stored {
		if _, ok := referenced[file.Name]; ok {
			continue
		}
		if file.ModTime.After(cutoff) {
			// Too fresh: the referencing row may still be on its way.
			continue
		}

		if err := w.files.Remove(ctx, filepath.Join(w.files.Dir(), file.Name)); err != nil {
			w.logger.Err(err).Str("file", file.Name).Msg("failed to remove orphaned upload file")
			continue
		}
		removed++
	}

	return removed, nil
}
