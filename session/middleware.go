// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielhkuo/meetup-poll/middleware"
	"github.com/danielhkuo/meetup-poll/models"
)

type contextKey int

const userKey contextKey = iota

// UserFrom returns the authenticated user stored in the request context.
func UserFrom(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey).(models.User)
	return user, ok
}

// WithUser returns a copy of ctx carrying the user. Exported for tests.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// RequireUser rejects requests without a valid session token. The 401
// body carries error "auth_required" so clients know to bounce the user
// into the sign-in flow instead of showing a failure.
func (m *Manager) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := m.userFromRequest(r)
		if err != nil {
			middleware.JSONResponse(w, http.StatusUnauthorized, models.ErrorResponse{
				Error:   "auth_required",
				Message: "sign in to continue",
			})
			return
		}
		next(w, r.WithContext(WithUser(r.Context(), user)))
	}
}

// OptionalUser attaches the user when a valid token is present and
// passes the request through untouched otherwise.
func (m *Manager) OptionalUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if user, err := m.userFromRequest(r); err == nil {
			r = r.WithContext(WithUser(r.Context(), user))
		}
		next(w, r)
	}
}

func (m *Manager) userFromRequest(r *http.Request) (models.User, error) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return models.User{}, ErrInvalidToken
	}
	return m.Parse(token)
}
