package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/inkfusion/notes-server/internal/logger"
	"github.com/inkfusion/notes-server/internal/store"
	"github.com/inkfusion/notes-server/models"
)

// noteService is the concrete implementation of NoteService. It owns the
// note access-control logic: the note repository returns rows regardless of
// owner, and this layer decides who may see or mutate them.
type noteService struct {
	noteRepository store.NoteRepository
	files          store.AttachmentFileStorage
	logger         *logger.Logger
}

// NewNoteService constructs a NoteService wired to the given repositories.
func NewNoteService(noteRepository store.NoteRepository, files store.AttachmentFileStorage, logger *logger.Logger) NoteService {
	return &noteService{
		noteRepository: noteRepository,
		files:          files,
		logger:         logger,
	}
}

// ListNotes returns the caller's notes, newest first. The query is scoped by
// owner at the repository level, so other users' notes can never appear in
// the result.
func (n *noteService) ListNotes(ctx context.Context, userID uuid.UUID) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	notes, err := n.noteRepository.FindNotesByUserID(ctx, userID)
	if err != nil {
		log.Err(err).Str("user_id", userID.String()).Msg("listing notes failed")
		return nil, fmt.Errorf("listing notes failed: %w", err)
	}

	return notes, nil
}

// CreateNote validates the input, stores the uploaded files, and persists a
// note owned by userID. A missing tag falls back to the default category.
//
// Files are written before the note row is inserted; a crash in between can
// leave orphaned files behind, which the cleanup worker reconciles later.
func (n *noteService) CreateNote(ctx context.Context, userID uuid.UUID, input models.Note, files []models.FileUpload) (models.Note, error) {
	log := logger.FromContext(ctx)

	if input.Title == "" || input.Description == "" {
		return models.Note{}, fmt.Errorf("%w: title and description are required", ErrInvalidDataProvided)
	}

	input.UserID = userID
	if input.Tag == "" {
		input.Tag = models.DefaultNoteTag
	}

	attachments, err := n.saveFiles(ctx, files)
	if err != nil {
		return models.Note{}, err
	}
	input.Attachments = attachments

	created, err := n.noteRepository.CreateNote(ctx, input)
	if err != nil {
		log.Err(err).Str("user_id", userID.String()).Msg("note creation failed")
		n.removeFiles(ctx, attachments)
		return models.Note{}, fmt.Errorf("note creation failed: %w", err)
	}

	return created, nil
}

// UpdateNote applies a partial update to the caller's note.
//
// The target is fetched first: a missing note yields store.ErrNoteNotFound
// and a note owned by someone else yields ErrNotNoteOwner, in that order, so
// the two cases map to distinct, consistent responses. Newly uploaded files
// are written only after both checks pass and are appended to the note's
// attachment list.
func (n *noteService) UpdateNote(ctx context.Context, userID, noteID uuid.UUID, update models.NoteUpdate, files []models.FileUpload) (models.Note, error) {
	log := logger.FromContext(ctx)

	if _, err := n.ownedNote(ctx, userID, noteID); err != nil {
		return models.Note{}, err
	}

	attachments, err := n.saveFiles(ctx, files)
	if err != nil {
		return models.Note{}, err
	}
	update.AddAttachments = append(update.AddAttachments, attachments...)

	updated, err := n.noteRepository.UpdateNote(ctx, noteID, update)
	if err != nil {
		log.Err(err).Str("note_id", noteID.String()).Msg("note update failed")
		n.removeFiles(ctx, attachments)
		if errors.Is(err, store.ErrNoteNotFound) {
			return models.Note{}, err
		}
		return models.Note{}, fmt.Errorf("note update failed: %w", err)
	}

	return updated, nil
}

// DeleteNote removes the caller's note and unlinks its attachment files.
//
// Check ordering matches UpdateNote: existence before ownership. The note
// row (and its attachment rows, via cascade) is deleted first; file removal
// failures afterwards are logged but do not fail the request, leaving the
// cleanup worker to collect the leftovers.
func (n *noteService) DeleteNote(ctx context.Context, userID, noteID uuid.UUID) error {
	log := logger.FromContext(ctx)

	note, err := n.ownedNote(ctx, userID, noteID)
	if err != nil {
		return err
	}

	if err = n.noteRepository.DeleteNote(ctx, noteID); err != nil {
		log.Err(err).Str("note_id", noteID.String()).Msg("note deletion failed")
		if errors.Is(err, store.ErrNoteNotFound) {
			return err
		}
		return fmt.Errorf("note deletion failed: %w", err)
	}

	n.removeFiles(ctx, note.Attachments)

	return nil
}

// ownedNote fetches the note and enforces the access-control ordering:
// store.ErrNoteNotFound when the note does not exist, ErrNotNoteOwner when
// it exists but belongs to another user.
func (n *noteService) ownedNote(ctx context.Context, userID, noteID uuid.UUID) (models.Note, error) {
	log := logger.FromContext(ctx)

	note, err := n.noteRepository.FindNoteByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			return models.Note{}, err
		}
		log.Err(err).Str("note_id", noteID.String()).Msg("note lookup failed")
		return models.Note{}, fmt.Errorf("note lookup failed: %w", err)
	}

	if note.UserID != userID {
		log.Warn().
			Str("note_id", noteID.String()).
			Str("user_id", userID.String()).
			Msg("note access denied")
		return models.Note{}, ErrNotNoteOwner
	}

	return note, nil
}

// saveFiles writes every upload to the attachment storage and returns the
// resulting metadata in upload order. On failure the files already written
// are removed again before the error is returned.
func (n *noteService) saveFiles(ctx context.Context, files []models.FileUpload) ([]models.Attachment, error) {
	log := logger.FromContext(ctx)

	attachments := make([]models.Attachment, 0, len(files))
	for _, file := range files {
		attachment, err := n.files.Save(ctx, file)
		if err != nil {
			log.Err(err).Str("file", file.OriginalName).Msg("saving attachment failed")
			n.removeFiles(ctx, attachments)
			return nil, fmt.Errorf("saving attachment failed: %w", err)
		}
		attachments = append(attachments, attachment)
	}

	return attachments, nil
}

// removeFiles unlinks the given attachments from storage, logging failures
// instead of propagating them.
func (n *noteService) removeFiles(ctx context.Context, attachments []models.Attachment) {
	log := logger.FromContext(ctx)

	for _, attachment := range attachments {
		if err := n.files.Remove(ctx, attachment.Path); err != nil {
			log.Err(err).Str("path", attachment.Path).Msg("removing attachment file failed")
		}
	}
}
