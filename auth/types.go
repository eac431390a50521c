package auth

// Credentials represents a token exchange request body
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// contextKey keeps context values private to this package's consumers.
type contextKey string

// UserContextKey is the key used to store the authenticated username in
// a request context.
const UserContextKey contextKey = "user"
