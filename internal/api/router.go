package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Post("/control", s.handleControl)
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/devices", s.handleDevices)
		r.Post("/automation-suggest", s.handleAutomationSuggest)
		r.Get("/status", s.handleStatus)
		r.Post("/conversation", s.handleConversation)
	})

	return r
}
