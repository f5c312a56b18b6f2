package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/inkfusion/notes-server/internal/logger"
	"github.com/inkfusion/notes-server/internal/utils"
	"github.com/inkfusion/notes-server/models"
)

func (h *Handler) fetchAllNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id found in request context")
		writeError(w, r, http.StatusUnauthorized, kindUnauthenticated, "please authenticate using a valid token")
		return
	}

	notes, err := h.services.NoteService.ListNotes(ctx, userID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, notes, http.StatusOK)
}

func (h *Handler) addNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id found in request context")
		writeError(w, r, http.StatusUnauthorized, kindUnauthenticated, "please authenticate using a valid token")
		return
	}

	form, err := parseNoteForm(r)
	if err != nil {
		log.Err(err).Msg("failed to parse note form")
		writeError(w, r, http.StatusBadRequest, kindValidation, formErrorMessage(err))
		return
	}
	defer form.Close()

	note := models.Note{
		Title:       stringOrEmpty(form.title),
		Description: stringOrEmpty(form.description),
		Tag:         stringOrEmpty(form.tag),
	}

	created, err := h.services.NoteService.CreateNote(ctx, userID, note, form.files)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusOK)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id found in request context")
		writeError(w, r, http.StatusUnauthorized, kindUnauthenticated, "please authenticate using a valid token")
		return
	}

	noteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		log.Err(err).Msg("malformed note id in path")
		writeError(w, r, http.StatusBadRequest, kindValidation, ErrInvalidNoteID.Error())
		return
	}

	form, err := parseNoteForm(r)
	if err != nil {
		log.Err(err).Msg("failed to parse note form")
		writeError(w, r, http.StatusBadRequest, kindValidation, formErrorMessage(err))
		return
	}
	defer form.Close()

	update := models.NoteUpdate{
		Title:       form.title,
		Description: form.description,
		Tag:         form.tag,
	}

	updated, err := h.services.NoteService.UpdateNote(ctx, userID, noteID, update, form.files)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id found in request context")
		writeError(w, r, http.StatusUnauthorized, kindUnauthenticated, "please authenticate using a valid token")
		return
	}

	noteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		log.Err(err).Msg("malformed note id in path")
		writeError(w, r, http.StatusBadRequest, kindValidation, ErrInvalidNoteID.Error())
		return
	}

	if err := h.services.NoteService.DeleteNote(ctx, userID, noteID); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.DeleteNoteResponse{Success: "Note has been deleted"}, http.StatusOK)
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// formErrorMessage keeps multipart parser internals out of client responses
// while preserving the sentinel messages callers can act on.
func formErrorMessage(err error) string {
	if errors.Is(err, ErrTooManyFiles) {
		return ErrTooManyFiles.Error()
	}
	return "invalid multipart form data"
}
