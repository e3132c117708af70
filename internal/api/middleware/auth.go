package middleware

import (
	"net/http"
	"strings"

	"github.com/dstreit/einbuerger-api/internal/api/shared"
	"github.com/dstreit/einbuerger-api/internal/service/auth"
)

// AuthMiddleware guards routes behind bearer-token authentication.
type AuthMiddleware struct {
	authService *auth.Service
}

// NewAuthMiddleware creates an AuthMiddleware using the given auth service.
func NewAuthMiddleware(authService *auth.Service) *AuthMiddleware {
	if authService == nil {
		panic("authService cannot be nil")
	}
	return &AuthMiddleware{authService: authService}
}

// Authenticate validates the Authorization header and rejects the request
// with 401 when the bearer token is missing, malformed, expired, or forged.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		if _, err := m.authService.ValidateToken(token); err != nil {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			return
		}

		next.ServeHTTP(w, r)
	})
}
