// Package middleware provides HTTP middleware for the careers API.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/careers-portal/internal/identity"
)

// AccessTokenCookie carries the admin access token.
const AccessTokenCookie = "careers-access-token"

// ContextKey is the type for context keys set by this package.
type ContextKey string

const userKey ContextKey = "admin_user"

// SessionVerifier resolves an access token to an admin. identity.Provider satisfies it.
type SessionVerifier interface {
	Verify(ctx context.Context, accessToken string) (*identity.User, error)
}

// RequireSession rejects requests without a verifiable admin session with
// 401 and otherwise stores the admin in the request context.
func RequireSession(verifier SessionVerifier, logger logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				unauthorized(w)
				return
			}

			user, err := verifier.Verify(r.Context(), token)
			if err != nil || user == nil {
				if logger != nil {
					logger.WithError(err).WithField("path", r.URL.Path).Debug("session rejected")
				}
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// TokenFromRequest returns the access token from the session cookie, or from
// an Authorization Bearer header when no cookie is present.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}

	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// WithUser returns a context carrying the admin.
func WithUser(ctx context.Context, user *identity.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUser returns the admin stored by RequireSession.
func GetUser(r *http.Request) (*identity.User, bool) {
	user, ok := r.Context().Value(userKey).(*identity.User)
	return user, ok && user != nil
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
}
