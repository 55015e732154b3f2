// Package middleware provides the HTTP middleware pipeline: authentication
// and role gates, request-shape validators, request logging, panic recovery,
// CORS and rate limiting. Each middleware either continues with an enriched
// context or short-circuits with a terminal JSON response.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/freshmart/api/app/models"
	"github.com/freshmart/api/pkg/auth"
	"github.com/freshmart/api/pkg/response"
)

// UserFinder resolves a token subject to a user. Implemented by the user
// repository; abstracted so the gate is testable without a database.
type UserFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type userCtxKey struct{}

// WithUser stores the authenticated user in ctx.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromCtx returns the user attached by the authentication gate.
func UserFromCtx(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(*models.User)
	return u, ok
}

// Authenticate is the authentication gate: it requires a valid Bearer access
// token whose subject still resolves to a user, and attaches that user to
// the request context.
func Authenticate(users UserFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

			if header == "" || token == "" {
				response.Message(w, http.StatusUnauthorized, "Please login!")
				return
			}

			claims, err := auth.ValidateAccessToken(token)
			if err != nil {
				response.Message(w, http.StatusUnauthorized, "Invalid token!")
				return
			}

			id, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				response.Message(w, http.StatusUnauthorized, "Invalid token!")
				return
			}

			user, err := users.FindByID(r.Context(), id)
			if err != nil || user == nil {
				response.Message(w, http.StatusNotFound, "User account not found!")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireRole is the role gate. It assumes Authenticate has already run.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromCtx(r.Context())
			if !ok || user.Role != role {
				response.Message(w, http.StatusForbidden, "You are not authorized to access this resource!")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
