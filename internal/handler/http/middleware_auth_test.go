package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/inkfusion/notes-server/internal/logger"
	"github.com/inkfusion/notes-server/internal/service"
	"github.com/inkfusion/notes-server/internal/utils"
	"github.com/inkfusion/notes-server/models"
)

// stubAuthService lets tests script ParseToken without a real token pipeline.
type stubAuthService struct {
	service.AuthService

	parseTokenFn func(ctx context.Context, tokenString string) (models.Token, error)
}

func (s *stubAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return s.parseTokenFn(ctx, tokenString)
}

func newHandlerWithAuthService(authSvc service.AuthService) *Handler {
	return &Handler{
		logger: logger.Nop(),
		services: &service.Services{
			AuthService: authSvc,
		},
	}
}

// injectNopLogger puts a nop logger into the request context.
func injectNopLogger(r *http.Request) *http.Request {
	nop := logger.Nop()
	ctx := nop.Logger.WithContext(r.Context())
	return r.WithContext(ctx)
}

func executeAuth(h *Handler, authToken string, next http.Handler) *httptest.ResponseRecorder {
	middleware := h.auth(next)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = injectNopLogger(req)
	if authToken != "" {
		req.Header.Set(AuthTokenHeader, authToken)
	}
	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)
	return rr
}

func TestAuth_Middleware_TableTest(t *testing.T) {
	knownUserID := uuid.New()

	tests := []struct {
		name           string
		authToken      string
		parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
		expectedStatus int
		nextCalled     bool
	}{
		{
			name:           "missing auth-token header results in 401",
			authToken:      "",
			expectedStatus: http.StatusUnauthorized,
			nextCalled:     false,
		},
		{
			name:      "expired or invalid token results in 401",
			authToken: "expired-token",
			parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
				return models.Token{}, service.ErrTokenIsExpiredOrInvalid
			},
			expectedStatus: http.StatusUnauthorized,
			nextCalled:     false,
		},
		{
			name:      "unexpected parse failure results in 401",
			authToken: "garbage",
			parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
				return models.Token{}, assert.AnError
			},
			expectedStatus: http.StatusUnauthorized,
			nextCalled:     false,
		},
		{
			name:      "valid token reaches next handler with user id in context",
			authToken: "valid-token",
			parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
				return models.Token{UserID: knownUserID}, nil
			},
			expectedStatus: http.StatusOK,
			nextCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandlerWithAuthService(&stubAuthService{parseTokenFn: tt.parseTokenFn})

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true

				userID, ok := utils.GetUserIDFromContext(r.Context())
				assert.True(t, ok, "user id must be stored in the request context")
				assert.Equal(t, knownUserID, userID)

				w.WriteHeader(http.StatusOK)
			})

			rr := executeAuth(h, tt.authToken, next)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.nextCalled, nextCalled)
		})
	}
}
