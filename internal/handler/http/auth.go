package http

import (
	"encoding/json"
	"net/http"

	"github.com/inkfusion/notes-server/internal/logger"
	"github.com/inkfusion/notes-server/internal/utils"
	"github.com/inkfusion/notes-server/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, r, http.StatusBadRequest, kindValidation, "invalid JSON was passed")
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, user)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, registeredUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		writeError(w, r, http.StatusInternalServerError, kindInternal, "internal server error")
		return
	}

	utils.WriteJSON(w, models.TokenResponse{AuthToken: token.SignedString}, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, r, http.StatusBadRequest, kindValidation, "invalid JSON was passed")
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, user)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	log.Debug().Stringer("id", foundUser.UserID).Msg("user successfully logged in")

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		writeError(w, r, http.StatusInternalServerError, kindInternal, "internal server error")
		return
	}

	utils.WriteJSON(w, models.TokenResponse{AuthToken: token.SignedString}, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id found in request context")
		writeError(w, r, http.StatusUnauthorized, kindUnauthenticated, "please authenticate using a valid token")
		return
	}

	profile, err := h.services.AuthService.GetUser(ctx, userID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}
