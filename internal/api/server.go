// Package api exposes the generation pipeline over HTTP: a multipart
// upload endpoint that runs a test generation, a spreadsheet export
// endpoint, and small discovery endpoints for health and the supported
// subject list.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/abhisek/examforge/internal/testgen"
)

// maxUploadBytes caps the accepted PDF size at 50MB.
const maxUploadBytes = 50 << 20

// generateTimeout bounds a single generation run, sharded calls
// included.
const generateTimeout = 10 * time.Minute

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	svc *testgen.Service
	log zerolog.Logger
}

// New returns a Server backed by the given generation service.
func New(svc *testgen.Service, log zerolog.Logger) *Server {
	return &Server{svc: svc, log: log}
}

// Routes builds the router: request IDs and structured access logging
// on every request, permissive CORS for browser clients.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/subjects", s.handleSubjects)
	r.With(middleware.Timeout(generateTimeout)).
		Post("/generate-test", s.handleGenerate)
	r.Post("/export-excel", s.handleExportExcel)

	return r
}
