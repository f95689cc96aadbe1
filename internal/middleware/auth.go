package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Anoop2208prakash/LMS/internal/model"
)

type tokenValidator interface {
	ValidateToken(tokenString string) (*model.AuthClaims, error)
}

type contextKey string

const authClaimsContextKey contextKey = "auth_claims"

type AuthMiddleware struct {
	validator tokenValidator
}

func NewAuthMiddleware(validator tokenValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

// RequireAuth extracts the bearer token from the Authorization header and
// verifies it, putting the claims on the request context. A missing header
// and a failed verification produce different messages so the client can
// tell "log in" apart from "session ended".
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "No token provided")
			return
		}

		claims, err := m.validator.ValidateToken(token)
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, verifyMessage(err))
			return
		}

		ctx := context.WithValue(r.Context(), authClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles gates a route to the given roles. It must run after
// RequireAuth so the claims are already on the context.
func (m *AuthMiddleware) RequireRoles(allowedRoles ...string) func(http.Handler) http.Handler {
	roleSet := map[string]struct{}{}
	for _, role := range allowedRoles {
		roleSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "No token provided")
				return
			}

			if _, exists := roleSet[claims.Role]; !exists {
				writeAuthError(w, http.StatusForbidden, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func ClaimsFromContext(ctx context.Context) (*model.AuthClaims, bool) {
	claims, ok := ctx.Value(authClaimsContextKey).(*model.AuthClaims)
	return claims, ok
}

func bearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return "", model.ErrTokenMissing
	}

	token := strings.TrimSpace(header[7:])
	if token == "" {
		return "", model.ErrTokenMissing
	}
	return token, nil
}

func verifyMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrTokenMissing):
		return "No token provided"
	case errors.Is(err, model.ErrTokenExpired):
		return "Token expired"
	default:
		return "Invalid token"
	}
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = jsonEncode(w, model.MessageResponse{Message: message})
}
