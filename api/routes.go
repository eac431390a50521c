package api

import "net/http"

// setupRoutes initializes all upload proxy routes
func (s *Server) setupRoutes() {
	s.router.Use(s.requestLogMiddleware)

	// Public routes (no auth required)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/token", s.handleToken).Methods(http.MethodPost)
	s.router.HandleFunc("/refresh", s.handleRefresh).Methods(http.MethodPost)

	// Authenticated routes
	apiRouter := s.router.PathPrefix("/api").Subrouter()
	apiRouter.Use(s.AuthMiddleware)
	apiRouter.HandleFunc("/upload", s.handleUpload).Methods(http.MethodPost)
}
