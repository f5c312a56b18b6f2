package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkfusion/notes-server/internal/config"
	"github.com/inkfusion/notes-server/internal/logger"
	"github.com/inkfusion/notes-server/internal/service"
	"github.com/inkfusion/notes-server/internal/store"
	"github.com/inkfusion/notes-server/models"
)

// In-memory repositories backing the API test server.

type memoryUserRepository struct {
	users map[uuid.UUID]models.User
}

func (m *memoryUserRepository) CreateUser(_ context.Context, user models.User) (models.User, error) {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return models.User{}, store.ErrEmailAlreadyExists
		}
	}
	user.UserID = uuid.New()
	user.CreatedAt = time.Now()
	m.users[user.UserID] = user
	return user, nil
}

func (m *memoryUserRepository) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, store.ErrUserNotFound
}

func (m *memoryUserRepository) FindUserByID(_ context.Context, userID uuid.UUID) (models.User, error) {
	user, ok := m.users[userID]
	if !ok {
		return models.User{}, store.ErrUserNotFound
	}
	return user, nil
}

type memoryNoteRepository struct {
	notes map[uuid.UUID]models.Note
}

func (m *memoryNoteRepository) CreateNote(_ context.Context, note models.Note) (models.Note, error) {
	note.NoteID = uuid.New()
	note.CreatedAt = time.Now()
	for i := range note.Attachments {
		note.Attachments[i].AttachmentID = uuid.New()
		note.Attachments[i].NoteID = note.NoteID
	}
	m.notes[note.NoteID] = note
	return note, nil
}

func (m *memoryNoteRepository) FindNotesByUserID(_ context.Context, userID uuid.UUID) ([]models.Note, error) {
	owned := make([]models.Note, 0)
	for _, note := range m.notes {
		if note.UserID == userID {
			owned = append(owned, note)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].CreatedAt.After(owned[j].CreatedAt) })
	return owned, nil
}

func (m *memoryNoteRepository) FindNoteByID(_ context.Context, noteID uuid.UUID) (models.Note, error) {
	note, ok := m.notes[noteID]
	if !ok {
		return models.Note{}, store.ErrNoteNotFound
	}
	return note, nil
}

func (m *memoryNoteRepository) UpdateNote(_ context.Context, noteID uuid.UUID, update models.NoteUpdate) (models.Note, error) {
	note, ok := m.notes[noteID]
	if !ok {
		return models.Note{}, store.ErrNoteNotFound
	}
	if update.Title != nil {
		note.Title = *update.Title
	}
	if update.Description != nil {
		note.Description = *update.Description
	}
	if update.Tag != nil {
		note.Tag = *update.Tag
	}
	for _, attachment := range update.AddAttachments {
		attachment.AttachmentID = uuid.New()
		attachment.NoteID = noteID
		note.Attachments = append(note.Attachments, attachment)
	}
	m.notes[noteID] = note
	return note, nil
}

func (m *memoryNoteRepository) DeleteNote(_ context.Context, noteID uuid.UUID) error {
	if _, ok := m.notes[noteID]; !ok {
		return store.ErrNoteNotFound
	}
	delete(m.notes, noteID)
	return nil
}

func (m *memoryNoteRepository) ListAttachmentFileNames(_ context.Context) ([]string, error) {
	names := make([]string, 0)
	for _, note := range m.notes {
		for _, attachment := range note.Attachments {
			names = append(names, attachment.FileName)
		}
	}
	return names, nil
}

// newAPITestServer wires real services and the real attachment file storage
// over in-memory repositories, and exposes the full router via httptest.
func newAPITestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	uploadsDir := t.TempDir()
	log := logger.Nop()

	files, err := store.NewAttachmentFileStorage(config.Files{UploadsDir: uploadsDir}, log)
	require.NoError(t, err)

	storages := &store.Storages{
		UserRepository:  &memoryUserRepository{users: make(map[uuid.UUID]models.User)},
		NoteRepository:  &memoryNoteRepository{notes: make(map[uuid.UUID]models.Note)},
		AttachmentFiles: files,
	}

	services := service.NewServices(storages, config.App{
		TokenSignKey: "api-test-sign-key",
		TokenIssuer:  "notes-server-test",
		BcryptCost:   bcrypt.MinCost,
	}, log)

	handler := NewHandler(services, config.Storage{Files: config.Files{UploadsDir: uploadsDir}}, log)
	server := httptest.NewServer(handler.Init())
	t.Cleanup(server.Close)

	return server, uploadsDir
}

func registerAndGetToken(t *testing.T, client *resty.Client, name, email, password string) string {
	t.Helper()

	var tokenResp models.TokenResponse
	resp, err := client.R().
		SetBody(map[string]string{"name": name, "email": email, "password": password}).
		SetResult(&tokenResp).
		Post("/api/auth/createuser")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.NotEmpty(t, tokenResp.AuthToken)

	return tokenResp.AuthToken
}

func TestAPI_RegisterAndLogin(t *testing.T) {
	server, _ := newAPITestServer(t)
	client := resty.New().SetBaseURL(server.URL)

	token := registerAndGetToken(t, client, "John Doe", "john@example.com", "secret")
	assert.NotEmpty(t, token)

	t.Run("duplicate email is rejected with conflict", func(t *testing.T) {
		var errResp models.ErrorResponse
		resp, err := client.R().
			SetBody(map[string]string{"name": "Impostor", "email": "john@example.com", "password": "other"}).
			SetError(&errResp).
			Post("/api/auth/createuser")
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode())
		assert.Equal(t, "conflict", errResp.Error)
	})

	t.Run("invalid registration data is rejected", func(t *testing.T) {
		var errResp models.ErrorResponse
		resp, err := client.R().
			SetBody(map[string]string{"name": "Jo", "email": "jo@example.com", "password": "secret"}).
			SetError(&errResp).
			Post("/api/auth/createuser")
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
		assert.Equal(t, "validation", errResp.Error)
	})

	t.Run("login returns a fresh token", func(t *testing.T) {
		var tokenResp models.TokenResponse
		resp, err := client.R().
			SetBody(map[string]string{"email": "john@example.com", "password": "secret"}).
			SetResult(&tokenResp).
			Post("/api/auth/login")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode())
		assert.NotEmpty(t, tokenResp.AuthToken)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		var errResp models.ErrorResponse
		resp, err := client.R().
			SetBody(map[string]string{"email": "john@example.com", "password": "nope!"}).
			SetError(&errResp).
			Post("/api/auth/login")
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
		assert.Equal(t, "invalid_credentials", errResp.Error)
	})

	t.Run("getuser returns the profile without credentials", func(t *testing.T) {
		var profile models.User
		resp, err := client.R().
			SetHeader(AuthTokenHeader, token).
			SetResult(&profile).
			Post("/api/auth/getuser")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode())
		assert.Equal(t, "John Doe", profile.Name)
		assert.Equal(t, "john@example.com", profile.Email)
		assert.Empty(t, profile.Password)
	})

	t.Run("getuser without token is rejected", func(t *testing.T) {
		resp, err := client.R().Post("/api/auth/getuser")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
	})
}

func TestAPI_NoteLifecycle(t *testing.T) {
	server, uploadsDir := newAPITestServer(t)
	client := resty.New().SetBaseURL(server.URL)

	token := registerAndGetToken(t, client, "John Doe", "john@example.com", "secret")

	var created models.Note
	resp, err := client.R().
		SetHeader(AuthTokenHeader, token).
		SetMultipartFormData(map[string]string{"title": "Groceries", "description": "Milk and eggs"}).
		SetFileReader(FilesFormField, "list.txt", strings.NewReader("milk\neggs\n")).
		SetResult(&created).
		Post("/api/notes/addnote")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	assert.Equal(t, "Groceries", created.Title)
	assert.Equal(t, "General", created.Tag, "missing tag falls back to the default")
	require.Len(t, created.Attachments, 1)
	assert.Equal(t, "list.txt", created.Attachments[0].OriginalName)

	t.Run("attachment is served from the uploads path", func(t *testing.T) {
		fileResp, err := client.R().Get(created.Attachments[0].URL)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, fileResp.StatusCode())
		assert.Equal(t, "milk\neggs\n", string(fileResp.Body()))
	})

	t.Run("fetchallnotes lists the owner's notes", func(t *testing.T) {
		var notes []models.Note
		listResp, err := client.R().
			SetHeader(AuthTokenHeader, token).
			SetResult(&notes).
			Get("/api/notes/fetchallnotes")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, listResp.StatusCode())
		require.Len(t, notes, 1)
		assert.Equal(t, created.NoteID, notes[0].NoteID)
	})

	t.Run("tag-only update leaves the rest of the note alone", func(t *testing.T) {
		var updated models.Note
		updateResp, err := client.R().
			SetHeader(AuthTokenHeader, token).
			SetMultipartFormData(map[string]string{"tag": "Shopping"}).
			SetResult(&updated).
			Put("/api/notes/updatenote/" + created.NoteID.String())
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, updateResp.StatusCode())
		assert.Equal(t, "Shopping", updated.Tag)
		assert.Equal(t, "Groceries", updated.Title)
		assert.Len(t, updated.Attachments, 1)
	})

	t.Run("another user cannot touch the note", func(t *testing.T) {
		otherToken := registerAndGetToken(t, client, "Jane Roe", "jane@example.com", "secret")

		var errResp models.ErrorResponse
		updateResp, err := client.R().
			SetHeader(AuthTokenHeader, otherToken).
			SetMultipartFormData(map[string]string{"title": "hijacked"}).
			SetError(&errResp).
			Put("/api/notes/updatenote/" + created.NoteID.String())
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, updateResp.StatusCode())
		assert.Equal(t, "forbidden", errResp.Error)

		deleteResp, err := client.R().
			SetHeader(AuthTokenHeader, otherToken).
			Delete("/api/notes/deletenote/" + created.NoteID.String())
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, deleteResp.StatusCode())
	})

	t.Run("deleting the note removes its attachment files", func(t *testing.T) {
		var deleted models.DeleteNoteResponse
		deleteResp, err := client.R().
			SetHeader(AuthTokenHeader, token).
			SetResult(&deleted).
			Delete("/api/notes/deletenote/" + created.NoteID.String())
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, deleteResp.StatusCode())
		assert.NotEmpty(t, deleted.Success)

		_, err = os.Stat(filepath.Join(uploadsDir, created.Attachments[0].FileName))
		assert.True(t, os.IsNotExist(err), "attachment file must be removed from disk")

		var notes []models.Note
		listResp, err := client.R().
			SetHeader(AuthTokenHeader, token).
			SetResult(&notes).
			Get("/api/notes/fetchallnotes")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, listResp.StatusCode())
		assert.Empty(t, notes)
	})

	t.Run("unknown note id yields not found", func(t *testing.T) {
		var errResp models.ErrorResponse
		deleteResp, err := client.R().
			SetHeader(AuthTokenHeader, token).
			SetError(&errResp).
			Delete("/api/notes/deletenote/" + uuid.NewString())
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, deleteResp.StatusCode())
		assert.Equal(t, "not_found", errResp.Error)
	})

	t.Run("malformed note id yields validation error", func(t *testing.T) {
		deleteResp, err := client.R().
			SetHeader(AuthTokenHeader, token).
			Delete("/api/notes/deletenote/not-a-uuid")
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, deleteResp.StatusCode())
	})

	t.Run("missing title is rejected", func(t *testing.T) {
		var errResp models.ErrorResponse
		addResp, err := client.R().
			SetHeader(AuthTokenHeader, token).
			SetMultipartFormData(map[string]string{"description": "no title"}).
			SetError(&errResp).
			Post("/api/notes/addnote")
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, addResp.StatusCode())
		assert.Equal(t, "validation", errResp.Error)
	})
}
