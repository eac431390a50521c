// Package static implements the frontend file server: stdlib
// static-file semantics plus permissive CORS headers, so the browser
// can load the frontend over http:// and still call the API backend.
package static

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"filebridge/config"
	"filebridge/cors"
	"filebridge/logger"
)

// Server serves files under a fixed root directory. The root is an
// explicit parameter; the server never touches the process working
// directory, so multiple instances can coexist in one process.
type Server struct {
	cfg    config.StaticConfig
	server *http.Server
	ln     net.Listener
	log    *logger.Logger
}

// New creates a server for the given configuration. Nothing is bound
// until Start is called.
func New(cfg config.StaticConfig, log *logger.Logger) *Server {
	return &Server{
		cfg: cfg,
		log: log,
	}
}

// Handler returns the complete request handler: CORS headers on every
// response, empty 200 for OPTIONS, stdlib file serving for the rest.
func (s *Server) Handler() http.Handler {
	files := http.FileServer(http.Dir(s.cfg.Root))
	return cors.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			// Preflight: headers only, no body.
			w.WriteHeader(http.StatusOK)
			return
		}
		// http.FileServer answers requests for ".../index.html" with a
		// canonical redirect to the directory; the frontend addresses
		// index.html directly, so serve those paths without the
		// redirect. ServeFile rejects dot-dot URL paths itself.
		if strings.HasSuffix(r.URL.Path, "/index.html") {
			name := filepath.Join(s.cfg.Root, filepath.FromSlash(path.Clean(r.URL.Path)))
			http.ServeFile(w, r, name)
			return
		}
		files.ServeHTTP(w, r)
	}))
}

// Start binds the listener and begins serving in the background. The
// bind happens synchronously so an already-bound port surfaces here as
// an error instead of hanging; callers treat that as fatal.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("binding %s: %w", addr, err)
	}
	s.ln = ln

	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		s.log.Info("Static server listening", map[string]interface{}{
			"addr": ln.Addr().String(),
			"root": s.cfg.Root,
		})
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Error("Static server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
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

// Shutdown stops accepting connections and waits for in-flight
// requests up to the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("static server shutdown failed: %w", err)
	}
	return nil
}
