// Package middleware provides HTTP middleware for authentication and
// identity resolution.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/devlens/devlens/internal/identity"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// userIDKey is the context key for storing the authenticated user ID.
const userIDKey ContextKey = "userID"

// identityKey is the context key for the resolved request identity.
const identityKey ContextKey = "identity"

// InstanceIDHeader carries the anonymous install UUID.
const InstanceIDHeader = "X-Instance-ID"

// TokenValidator is an interface for validating JWT tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (UserIDGetter, error)
}

// UserIDGetter is an interface for extracting user ID from token claims.
type UserIDGetter interface {
	GetUserID() uuid.UUID
}

// bearerToken extracts the token from an Authorization header, or "".
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// AuthMiddleware creates middleware that validates JWT tokens and adds the
// user ID to the request context. Requests without a valid token are
// rejected.
func AuthMiddleware(jwtService TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r)
			if tokenString == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			userID := claims.GetUserID()

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, identityKey, identity.Authenticated(userID.String()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityMiddleware resolves the request identity: a valid JWT yields an
// authenticated identity, otherwise the X-Instance-ID header yields an
// anonymous one. Requests carrying neither are rejected.
func IdentityMiddleware(jwtService TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokenString := bearerToken(r); tokenString != "" {
				claims, err := jwtService.ValidateToken(tokenString)
				if err != nil {
					http.Error(w, "Unauthorized", http.StatusUnauthorized)
					return
				}
				userID := claims.GetUserID()
				ctx := context.WithValue(r.Context(), userIDKey, userID)
				ctx = context.WithValue(ctx, identityKey, identity.Authenticated(userID.String()))
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			instanceID := strings.TrimSpace(r.Header.Get(InstanceIDHeader))
			if instanceID == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if _, err := uuid.Parse(instanceID); err != nil {
				http.Error(w, "Invalid instance ID", http.StatusBadRequest)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity.Anonymous(instanceID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the authenticated user ID from the request context.
func GetUserID(r *http.Request) (uuid.UUID, error) {
	userID, ok := r.Context().Value(userIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("user ID not found in request context")
	}
	return userID, nil
}

// GetIdentity extracts the resolved identity from the request context.
func GetIdentity(r *http.Request) (identity.Identity, error) {
	id, ok := r.Context().Value(identityKey).(identity.Identity)
	if !ok || id.IsZero() {
		return identity.Identity{}, fmt.Errorf("identity not found in request context")
	}
	return id, nil
}
