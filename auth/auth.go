package auth

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"filebridge/config"
)

// Service issues and validates bearer tokens for the upload proxy. The
// signing key is generated at startup, so tokens do not survive a
// restart; the frontend simply exchanges credentials again.
type Service struct {
	username       string
	hashedPassword []byte
	signingKey     []byte
	ttl            time.Duration

	mu          sync.Mutex
	validTokens map[string]bool
}

// Claims represents JWT claims
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// NewService sets up the token service for the configured credentials.
func NewService(cfg config.AuthConfig) (*Service, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate signing key: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return &Service{
		username:       cfg.Username,
		hashedPassword: hash,
		signingKey:     key,
		ttl:            cfg.TokenTTL,
		validTokens:    make(map[string]bool),
	}, nil
}

// ValidateCredentials checks a username/password pair against the
// configured credentials.
func (s *Service) ValidateCredentials(username, password string) bool {
	if username != s.username {
		return false
	}
	return bcrypt.CompareHashAndPassword(s.hashedPassword, []byte(password)) == nil
}

// GenerateToken creates a new signed token for the given username.
func (s *Service) GenerateToken(username string) (string, error) {
	now := time.Now()
	// The ID claim makes every issued token distinct even within the
	// same second; refresh depends on the fresh token not colliding
	// with the one being invalidated.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	tokenString, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	s.mu.Lock()
	s.validTokens[tokenString] = true
	s.mu.Unlock()

	return tokenString, nil
}

// ValidateToken checks a token and returns the username it was issued
// for.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	s.mu.Lock()
	valid := s.validTokens[tokenString]
	s.mu.Unlock()
	if !valid {
		return "", fmt.Errorf("token has been invalidated")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid || claims.Username == "" {
		return "", fmt.Errorf("invalid token claims")
	}

	return claims.Username, nil
}

// RefreshToken exchanges a still-valid token for a fresh one. The old
// token is invalidated.
func (s *Service) RefreshToken(tokenString string) (string, error) {
	username, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}

	fresh, err := s.GenerateToken(username)
	if err != nil {
		return "", err
	}

	s.InvalidateToken(tokenString)
	return fresh, nil
}

// InvalidateToken removes a token from the valid set (logout).
func (s *Service) InvalidateToken(tokenString string) {
	s.mu.Lock()
	delete(s.validTokens, tokenString)
	s.mu.Unlock()
}

// TTL reports the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}
