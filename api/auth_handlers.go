package api

import (
	"net/http"

	"filebridge/auth"
)

// TokenResponse is returned by the token and refresh endpoints.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// handleToken exchanges credentials for a bearer token
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	var creds auth.Credentials
	if err := decodeJSONBody(r, &creds); err != nil {
		SendErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if !s.auth.ValidateCredentials(creds.Username, creds.Password) {
		SendErrorResponse(w, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	token, err := s.auth.GenerateToken(creds.Username)
	if err != nil {
		s.log.Error("Failed to generate token", map[string]interface{}{
			"error": err.Error(),
		})
		SendErrorResponse(w, http.StatusInternalServerError, "Failed to generate token", nil)
		return
	}

	SendJSONResponse(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.auth.TTL().Seconds()),
	})
}

// handleRefresh exchanges a valid token for a fresh one
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	tokenString, ok := bearerToken(r)
	if !ok {
		SendErrorResponse(w, http.StatusUnauthorized, "Missing or malformed authorization header", nil)
		return
	}

	fresh, err := s.auth.RefreshToken(tokenString)
	if err != nil {
		SendErrorResponse(w, http.StatusUnauthorized, "Token refresh failed", err)
		return
	}

	SendJSONResponse(w, http.StatusOK, TokenResponse{
		AccessToken: fresh,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.auth.TTL().Seconds()),
	})
}
