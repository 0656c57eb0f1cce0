// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/un-design/auth"
	"github.com/danielhkuo/un-design/models"
)

type sessionContextKey struct{}

// WithSession returns a new context with the session attached
func WithSession(ctx context.Context, sess auth.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext returns the request's session, if it has one
func SessionFromContext(ctx context.Context) (auth.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(auth.Session)
	return sess, ok
}

// IdentityFromContext returns the logged-in identity, or the zero Identity
func IdentityFromContext(ctx context.Context) models.Identity {
	sess, _ := SessionFromContext(ctx)
	return sess.Identity
}

// LoadSession attaches the session named by the session cookie, if any.
// Requests without a valid session pass through anonymously.
func LoadSession(sessions *auth.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.CookieName)
			if err == nil && cookie.Value != "" {
				if sess, ok := sessions.Get(cookie.Value); ok {
					r = r.WithContext(WithSession(r.Context(), sess))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireLogin redirects requests without a session to loginPath
func RequireLogin(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := SessionFromContext(r.Context()); !ok {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin redirects anyone but an admin to loginPath
func RequireAdmin(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IdentityFromContext(r.Context()).IsAdmin {
				slog.Warn("admin access denied",
					"path", r.URL.Path,
					"method", r.Method,
				)
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
