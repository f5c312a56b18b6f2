package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/inkfusion/notes-server/internal/logger"
	"github.com/inkfusion/notes-server/internal/service"
	"github.com/inkfusion/notes-server/internal/utils"
)

// AuthTokenHeader carries the raw JWT on authenticated requests. The value
// is the token itself, without a bearer-scheme prefix.
const AuthTokenHeader = "auth-token"

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It reads the incoming "auth-token" header, validates the token via
// [service.AuthService.ParseToken], and — on success — stores the
// authenticated user's ID in the request context under [utils.UserIDCtxKey]
// before delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized in the following cases:
//   - The "auth-token" header is absent ([ErrMissingAuthToken]).
//   - The token has expired or is otherwise invalid.
//
// All rejection events are logged using the context-scoped logger obtained
// via [logger.FromRequest].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString := r.Header.Get(AuthTokenHeader)
		if tokenString == "" {
			log.Err(ErrMissingAuthToken).Send()
			writeError(w, r, http.StatusUnauthorized, kindUnauthenticated, ErrMissingAuthToken.Error())
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTokenIsExpiredOrInvalid):
				log.Err(err).Msg("token expired or invalid")
			default:
				log.Err(err).Msg("error occurred during parsing token")
			}
			writeError(w, r, http.StatusUnauthorized, kindUnauthenticated, "please authenticate using a valid token")
			return
		}

		// Store the authenticated user's ID in the context so that downstream
		// handlers can retrieve it without re-parsing the token.
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, token.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
