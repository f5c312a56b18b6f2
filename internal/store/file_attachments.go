package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/inkfusion/notes-server/internal/config"
	"github.com/inkfusion/notes-server/internal/logger"
	"github.com/inkfusion/notes-server/models"
)

// UploadsURLPrefix is the public path prefix attachment files are served
// under by the static route.
const UploadsURLPrefix = "/uploads/"

// attachmentFileStorage stores attachment files on the local filesystem.
// Each file is written under a freshly generated UUID-based name so that
// concurrent uploads and identically named client files never collide.
type attachmentFileStorage struct {
	dir    string
	logger *logger.Logger
}

// NewAttachmentFileStorage creates the uploads directory if needed and
// returns a filesystem-backed [AttachmentFileStorage].
func NewAttachmentFileStorage(cfg config.Files, logger *logger.Logger) (AttachmentFileStorage, error) {
	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating uploads directory: %w", err)
	}

	logger.Debug().Str("dir", cfg.UploadsDir).Msg("creating attachment file storage")
	return &attachmentFileStorage{
		dir:    cfg.UploadsDir,
		logger: logger,
	}, nil
}

// Save streams the upload to disk under a generated name and returns the
// attachment metadata describing the stored file. The partial file is
// removed again if the copy fails midway.
func (s *attachmentFileStorage) Save(ctx context.Context, upload models.FileUpload) (models.Attachment, error) {
	log := logger.FromContext(ctx)

	storedName := uuid.NewString() + filepath.Ext(upload.OriginalName)
	path := filepath.Join(s.dir, storedName)

	dst, err := os.Create(path)
	if err != nil {
		log.Err(err).Str("path", path).Msg("error creating attachment file")
		return models.Attachment{}, fmt.Errorf("error creating attachment file: %w", err)
	}

	if _, err = io.Copy(dst, upload.Content); err != nil {
		dst.Close()
		os.Remove(path)
		log.Err(err).Str("path", path).Msg("error writing attachment file")
		return models.Attachment{}, fmt.Errorf("error writing attachment file: %w", err)
	}

	if err = dst.Close(); err != nil {
		os.Remove(path)
		return models.Attachment{}, fmt.Errorf("error closing attachment file: %w", err)
	}

	return models.Attachment{
		FileName:     storedName,
		OriginalName: upload.OriginalName,
		Path:         path,
		ContentType:  upload.ContentType,
		URL:          UploadsURLPrefix + storedName,
	}, nil
}

// Remove deletes the file at the given storage path. A file that is already
// gone is treated as removed.
func (s *attachmentFileStorage) Remove(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error removing attachment file: %w", err)
	}

	return nil
}

// List enumerates the files currently present in the uploads directory.
// Subdirectories are skipped.
func (s *attachmentFileStorage) List(ctx context.Context) ([]StoredFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("error reading uploads directory: %w", err)
	}

	files := make([]StoredFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, infoErr := entry.Info()
		if infoErr != nil {
			// The file may have been removed between ReadDir and Info.
			continue
		}

		files = append(files, StoredFile{
			Name:    entry.Name(),
			ModTime: info.ModTime(),
		})
	}

	return files, nil
}

// Dir returns the directory attachment files are stored in.
func (s *attachmentFileStorage) Dir() string {
	return s.dir
}
