package http

import (
	"errors"
	"net/http"

	"github.com/inkfusion/notes-server/internal/logger"
	"github.com/inkfusion/notes-server/internal/service"
	"github.com/inkfusion/notes-server/internal/store"
	"github.com/inkfusion/notes-server/internal/utils"
	"github.com/inkfusion/notes-server/models"
)

// Machine-readable error kinds carried in the "error" field of the JSON
// error envelope. Clients branch on these rather than on the human-readable
// message.
const (
	kindValidation         = "validation"
	kindInvalidCredentials = "invalid_credentials"
	kindUnauthenticated    = "unauthenticated"
	kindForbidden          = "forbidden"
	kindNotFound           = "not_found"
	kindConflict           = "conflict"
	kindInternal           = "internal"
)

type errorMapping struct {
	status int
	kind   string
}

var errorMappings = map[error]errorMapping{
	service.ErrInvalidDataProvided:     {http.StatusBadRequest, kindValidation},
	service.ErrInvalidCredentials:      {http.StatusBadRequest, kindInvalidCredentials},
	service.ErrTokenIsExpiredOrInvalid: {http.StatusUnauthorized, kindUnauthenticated},
	service.ErrNotNoteOwner:            {http.StatusForbidden, kindForbidden},

	store.ErrEmailAlreadyExists: {http.StatusConflict, kindConflict},
	store.ErrUserNotFound:       {http.StatusNotFound, kindNotFound},
	store.ErrNoteNotFound:       {http.StatusNotFound, kindNotFound},
}

func mappingFromError(err error) errorMapping {
	for target, mapping := range errorMappings {
		if errors.Is(err, target) {
			return mapping
		}
	}
	return errorMapping{http.StatusInternalServerError, kindInternal}
}

// writeError sends the JSON error envelope with the given status.
func writeError(w http.ResponseWriter, r *http.Request, status int, kind, message string) {
	if _, err := utils.WriteJSON(w, models.ErrorResponse{Error: kind, Message: message}, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("failed to write error response")
	}
}

// handleServiceError maps a service or store error onto the HTTP error
// taxonomy and writes the envelope. Internal failures are never echoed back
// to the client; their detail stays in the log.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	mapping := mappingFromError(err)

	message := err.Error()
	if mapping.kind == kindInternal {
		logger.FromRequest(r).Err(err).Msg("unexpected error occurred")
		message = "internal server error"
	}

	writeError(w, r, mapping.status, mapping.kind, message)
}
