package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{AuthTokenHeader, "Content-Type"},
	}))

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/createuser", h.register)
		r.Post("/api/auth/login", h.login)
	})

	// routes behind token authentication
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/api/auth/getuser", h.getUser)
		r.Get("/api/notes/fetchallnotes", h.fetchAllNotes)
		r.Post("/api/notes/addnote", h.addNote)
		r.Put("/api/notes/updatenote/{id}", h.updateNote)
		r.Delete("/api/notes/deletenote/{id}", h.deleteNote)
	})

	// attachment files are retrievable from a static path
	router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.uploadsDir))))

	return router
}
