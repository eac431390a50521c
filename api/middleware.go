package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"filebridge/auth"
)

// requestLogMiddleware tags each request with an ID and logs it.
func (s *Server) requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.Debug("Request received", map[string]interface{}{
			"request_id": uuid.NewString(),
			"method":     r.Method,
			"path":       r.URL.Path,
		})
		next.ServeHTTP(w, r)
	})
}

// AuthMiddleware checks for a valid bearer token
func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Preflight requests carry no credentials.
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		tokenString, ok := bearerToken(r)
		if !ok {
			SendErrorResponse(w, http.StatusUnauthorized, "Missing or malformed authorization header", nil)
			return
		}

		username, err := s.auth.ValidateToken(tokenString)
		if err != nil {
			SendErrorResponse(w, http.StatusUnauthorized, "Invalid token", err)
			return
		}

		ctx := context.WithValue(r.Context(), auth.UserContextKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from an Authorization: Bearer header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header || token == "" {
		return "", false
	}
	return token, true
}
