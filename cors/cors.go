// Package cors provides the permissive CORS header set the frontend
// relies on when calling the API from a different origin.
package cors

import "net/http"

// Header values sent on every response, matching what the browser
// frontend expects for its cross-origin requests.
const (
	AllowOrigin  = "*"
	AllowMethods = "GET, POST, OPTIONS"
	AllowHeaders = "Authorization, Content-Type, Accept"
)

// Middleware wraps a handler and unconditionally sets the CORS headers
// before delegating, so every response carries them regardless of
// method, path, or status code.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", AllowOrigin)
		h.Set("Access-Control-Allow-Methods", AllowMethods)
		h.Set("Access-Control-Allow-Headers", AllowHeaders)
		next.ServeHTTP(w, r)
	})
}
