package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"filebridge/auth"
	"filebridge/config"
	"filebridge/cors"
	"filebridge/filestore"
	"filebridge/logger"
)

// Server is the upload proxy HTTP server.
type Server struct {
	router *mux.Router
	server *http.Server
	ln     net.Listener
	cfg    config.ProxyConfig
	auth   *auth.Service
	store  *filestore.DiskFileStore
	ctx    context.Context
	cancel context.CancelFunc
	log    *logger.Logger
}

// Response is a standard API response structure
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// NewServer wires the upload proxy together. Every dependency is
// passed in explicitly so tests can construct isolated instances.
func NewServer(cfg config.ProxyConfig, authSvc *auth.Service, store *filestore.DiskFileStore) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		router: mux.NewRouter(),
		cfg:    cfg,
		auth:   authSvc,
		store:  store,
		ctx:    ctx,
		cancel: cancel,
		log:    logger.L(),
	}
	s.setupRoutes()
	return s
}

// Handler returns the complete handler chain, CORS included.
func (s *Server) Handler() http.Handler {
	return cors.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			// Preflight: the CORS headers are already set.
			w.WriteHeader(http.StatusOK)
			return
		}
		s.router.ServeHTTP(w, r)
	}))
}

// Start binds the listener and serves in the background until the
// given context is cancelled. A bind failure is returned immediately.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("binding %s: %w", addr, err)
	}
	s.ln = ln

	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  300 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  600 * time.Second,
	}

	go func() {
		s.log.Info("Starting upload proxy", map[string]interface{}{
			"addr": ln.Addr().String(),
		})
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Error("Upload proxy server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	return nil
}

// Addr reports the bound address. Useful when the configured port is 0.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	s.log.Info("Shutting down upload proxy", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
	}

	if s.cancel != nil {
		s.cancel()
	}

	return nil
}

// SendJSONResponse is a helper function to send a JSON response
func SendJSONResponse(w http.ResponseWriter, status int, resp interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// SendErrorResponse is a helper function to send an error response
func SendErrorResponse(w http.ResponseWriter, status int, message string, err error) {
	resp := Response{
		Success: false,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	SendJSONResponse(w, status, resp)
}

func decodeJSONBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}
