package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/inkfusion/notes-server/internal/logger"
	"github.com/inkfusion/notes-server/models"
)

var (
	noteColumns       = []string{"note_id", "user_id", "title", "description", "tag", "created_at"}
	attachmentColumns = []string{"attachment_id", "note_id", "file_name", "original_name", "path", "content_type", "url"}
)

// noteRepository is the PostgreSQL-backed implementation of [NoteRepository].
// Notes and their attachment metadata live in separate tables; every write
// that touches both runs in a single transaction.
type noteRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		db:     db,
		logger: logger,
	}
}

// CreateNote inserts the note row and its attachment rows in one transaction
// and returns the note as stored, with server-assigned NoteID and CreatedAt.
func (r *noteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.Insert(note.TableName()).
		Columns("user_id", "title", "description", "tag").
		Values(note.UserID, note.Title, note.Description, note.Tag).
		Suffix("RETURNING note_id, user_id, title, description, tag, created_at").
		ToSql()
	if err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var created models.Note
	row := tx.QueryRowContext(ctx, query, args...)
	if err = row.Scan(&created.NoteID, &created.UserID, &created.Title, &created.Description, &created.Tag, &created.CreatedAt); err != nil {
		log.Err(err).Str("func", "*noteRepository.CreateNote").Msg("error inserting note")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	created.Attachments, err = insertAttachments(ctx, tx, created.NoteID, note.Attachments, 0)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.CreateNote").Msg("error inserting attachments")
		return models.Note{}, err
	}

	if err = tx.Commit(); err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}

	return created, nil
}

// FindNotesByUserID returns every note owned by userID, newest first, with
// attachments populated in upload order.
func (r *noteRepository) FindNotesByUserID(ctx context.Context, userID uuid.UUID) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.Select(noteColumns...).
		From(models.Note{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.FindNotesByUserID").Msg("error querying notes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	noteIDs := make([]uuid.UUID, 0)
	for rows.Next() {
		var note models.Note
		if err = rows.Scan(&note.NoteID, &note.UserID, &note.Title, &note.Description, &note.Tag, &note.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		note.Attachments = make([]models.Attachment, 0)
		notes = append(notes, note)
		noteIDs = append(noteIDs, note.NoteID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	attachments, err := r.findAttachments(ctx, noteIDs)
	if err != nil {
		return nil, err
	}

	for i := range notes {
		if list, ok := attachments[notes[i].NoteID]; ok {
			notes[i].Attachments = list
		}
	}

	return notes, nil
}

// FindNoteByID returns the note with the given ID, attachments included,
// regardless of owner. Ownership checks belong to the service layer.
func (r *noteRepository) FindNoteByID(ctx context.Context, noteID uuid.UUID) (models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.Select(noteColumns...).
		From(models.Note{}.TableName()).
		Where(sq.Eq{"note_id": noteID}).
		ToSql()
	if err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var note models.Note
	row := r.db.QueryRowContext(ctx, query, args...)
	if err = row.Scan(&note.NoteID, &note.UserID, &note.Title, &note.Description, &note.Tag, &note.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).Str("func", "*noteRepository.FindNoteByID").Msg("error scanning note")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	attachments, err := r.findAttachments(ctx, []uuid.UUID{note.NoteID})
	if err != nil {
		return models.Note{}, err
	}

	note.Attachments = attachments[note.NoteID]
	if note.Attachments == nil {
		note.Attachments = make([]models.Attachment, 0)
	}

	return note, nil
}

// UpdateNote applies the patch fields that are present and appends any new
// attachment records, all in one transaction, then returns the updated note.
func (r *noteRepository) UpdateNote(ctx context.Context, noteID uuid.UUID, update models.NoteUpdate) (models.Note, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if update.Title != nil || update.Description != nil || update.Tag != nil {
		builder := psql.Update(models.Note{}.TableName()).Where(sq.Eq{"note_id": noteID})
		if update.Title != nil {
			builder = builder.Set("title", *update.Title)
		}
		if update.Description != nil {
			builder = builder.Set("description", *update.Description)
		}
		if update.Tag != nil {
			builder = builder.Set("tag", *update.Tag)
		}

		query, args, buildErr := builder.ToSql()
		if buildErr != nil {
			return models.Note{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}

		result, execErr := tx.ExecContext(ctx, query, args...)
		if execErr != nil {
			log.Err(execErr).Str("func", "*noteRepository.UpdateNote").Msg("error updating note")
			return models.Note{}, fmt.Errorf("unexpected DB error: %w", execErr)
		}

		affected, raErr := result.RowsAffected()
		if raErr != nil {
			return models.Note{}, fmt.Errorf("unexpected DB error: %w", raErr)
		}
		if affected == 0 {
			return models.Note{}, ErrNoteNotFound
		}
	}

	if len(update.AddAttachments) > 0 {
		position, posErr := nextAttachmentPosition(ctx, tx, noteID)
		if posErr != nil {
			return models.Note{}, posErr
		}

		if _, err = insertAttachments(ctx, tx, noteID, update.AddAttachments, position); err != nil {
			log.Err(err).Str("func", "*noteRepository.UpdateNote").Msg("error appending attachments")
			return models.Note{}, err
		}
	}

	if err = tx.Commit(); err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}

	return r.FindNoteByID(ctx, noteID)
}

// DeleteNote removes the note row. Attachment rows are removed by the
// ON DELETE CASCADE constraint; the attachment files themselves are the
// service layer's responsibility.
func (r *noteRepository) DeleteNote(ctx context.Context, noteID uuid.UUID) error {
	log := logger.FromContext(ctx)

	query, args, err := psql.Delete(models.Note{}.TableName()).
		Where(sq.Eq{"note_id": noteID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.DeleteNote").Msg("error deleting note")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}

// ListAttachmentFileNames returns the stored file name of every attachment
// record in the database.
func (r *noteRepository) ListAttachmentFileNames(ctx context.Context) ([]string, error) {
	query, args, err := psql.Select("file_name").
		From(models.Attachment{}.TableName()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		names = append(names, name)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return names, nil
}

// findAttachments loads the attachments of the given notes grouped by note
// ID, preserving upload order.
func (r *noteRepository) findAttachments(ctx context.Context, noteIDs []uuid.UUID) (map[uuid.UUID][]models.Attachment, error) {
	if len(noteIDs) == 0 {
		return map[uuid.UUID][]models.Attachment{}, nil
	}

	query, args, err := psql.Select(attachmentColumns...).
		From(models.Attachment{}.TableName()).
		Where(sq.Eq{"note_id": noteIDs}).
		OrderBy("note_id", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	grouped := make(map[uuid.UUID][]models.Attachment)
	for rows.Next() {
		var a models.Attachment
		if err = rows.Scan(&a.AttachmentID, &a.NoteID, &a.FileName, &a.OriginalName, &a.Path, &a.ContentType, &a.URL); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		grouped[a.NoteID] = append(grouped[a.NoteID], a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return grouped, nil
}

// insertAttachments persists the given attachment metadata for noteID within
// tx, assigning fresh attachment IDs and sequential positions starting at
// startPosition. Returns the records as stored.
func insertAttachments(ctx context.Context, tx *sql.Tx, noteID uuid.UUID, attachments []models.Attachment, startPosition int) ([]models.Attachment, error) {
	inserted := make([]models.Attachment, 0, len(attachments))
	if len(attachments) == 0 {
		return inserted, nil
	}

	builder := psql.Insert(models.Attachment{}.TableName()).
		Columns("attachment_id", "note_id", "file_name", "original_name", "path", "content_type", "url", "position")

	for i, a := range attachments {
		a.AttachmentID = uuid.New()
		a.NoteID = noteID
		builder = builder.Values(a.AttachmentID, a.NoteID, a.FileName, a.OriginalName, a.Path, a.ContentType, a.URL, startPosition+i)
		inserted = append(inserted, a)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return inserted, nil
}

// nextAttachmentPosition returns the position the next appended attachment
// of noteID should take.
func nextAttachmentPosition(ctx context.Context, tx *sql.Tx, noteID uuid.UUID) (int, error) {
	query, args, err := psql.Select("COALESCE(MAX(position) + 1, 0)").
		From(models.Attachment{}.TableName()).
		Where(sq.Eq{"note_id": noteID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var position int
	if err = tx.QueryRowContext(ctx, query, args...).Scan(&position); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return position, nil
}
