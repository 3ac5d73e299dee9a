// Package middleware provides HTTP middleware for authentication and authorization.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

const (
	userIDKey ContextKey = "userID"
	roleKey   ContextKey = "role"
)

// TokenValidator is an interface for validating JWT tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (Identity, error)
}

// Identity is the authenticated principal carried by a token.
type Identity interface {
	GetUserID() uuid.UUID
	GetRole() string
}

// bearerToken returns the token of a "Bearer <token>" Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func withIdentity(r *http.Request, id Identity) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey, id.GetUserID())
	ctx = context.WithValue(ctx, roleKey, id.GetRole())
	return r.WithContext(ctx)
}

// AuthMiddleware creates middleware that validates JWT tokens and adds the
// user ID and role to the request context. Requests without a valid token
// get 401.
func AuthMiddleware(jwtService TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w)
				return
			}
			identity, err := jwtService.ValidateToken(token)
			if err != nil {
				unauthorized(w)
				return
			}
			next.ServeHTTP(w, withIdentity(r, identity))
		})
	}
}

// OptionalAuth adds the identity of a valid bearer token to the context and
// lets every other request through anonymously.
func OptionalAuth(jwtService TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, ok := bearerToken(r); ok {
				if identity, err := jwtService.ValidateToken(token); err == nil {
					r = withIdentity(r, identity)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole rejects authenticated requests whose role is not one of roles
// with 403. It must run after AuthMiddleware.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRole(r)
			if !ok {
				unauthorized(w)
				return
			}
			if !slices.Contains(roles, role) {
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "unauthorized")
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, "{%q:%q}\n", "error", message)
}

// GetUserID extracts the authenticated user ID from the request context.
func GetUserID(r *http.Request) (uuid.UUID, error) {
	userID, ok := r.Context().Value(userIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("user ID not found in request context")
	}
	return userID, nil
}

// GetRole extracts the authenticated user's role from the request context.
func GetRole(r *http.Request) (string, bool) {
	role, ok := r.Context().Value(roleKey).(string)
	return role, ok
}
