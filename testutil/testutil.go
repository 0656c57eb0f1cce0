// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/un-design/auth"
	"github.com/danielhkuo/un-design/cliparse"
	"github.com/danielhkuo/un-design/db"
	"github.com/danielhkuo/un-design/middleware"
	"github.com/danielhkuo/un-design/store"
)

// Credentials used by the login helpers
const (
	ParticipantID = "1101"
	OtherGroupID  = "1201"
)

// SetupTestDB opens a private in-memory SQLite database with all migrations
// applied. It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         5001,
		DatabaseURL:  ":memory:",
		DatabaseType: db.TypeSQLite,
		LogLevel:     "error",
		SessionSalt:  "test-session-salt",
		CSRFKey:      strings.Repeat("ab", 32),
		SessionTTL:   time.Hour,
	}
}

// NewTestStore returns a store loaded with the built-in seed
func NewTestStore() *store.Store {
	return store.New(store.DefaultSeed())
}

// Login signs in through auth.Login and returns the new session
func Login(t *testing.T, sessions *auth.SessionStore, password, voterID string) auth.Session {
	t.Helper()

	identity, err := auth.Login(password, voterID)
	if err != nil {
		t.Fatalf("Failed to log in %q: %v", voterID, err)
	}
	return sessions.Create(identity)
}

// LoginParticipant signs in voterID with the participant password
func LoginParticipant(t *testing.T, sessions *auth.SessionStore, voterID string) auth.Session {
	t.Helper()
	return Login(t, sessions, auth.UserPassword, voterID)
}

// LoginAdmin signs in with the admin password
func LoginAdmin(t *testing.T, sessions *auth.SessionStore) auth.Session {
	t.Helper()
	return Login(t, sessions, auth.AdminPassword, "")
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, headers map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

// MakeFormRequest creates a url-encoded form request
func MakeFormRequest(method, path string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// WithSession attaches sess to the request the way the session middleware does
func WithSession(req *http.Request, sess auth.Session) *http.Request {
	return req.WithContext(middleware.WithSession(req.Context(), sess))
}

// WithCookie adds the session cookie for sess
func WithCookie(req *http.Request, sess auth.Session) *http.Request {
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: sess.Token})
	return req
}

// WithURLParam sets a chi URL parameter for handlers called without a router
func WithURLParam(req *http.Request, key, value string) *http.Request {
	rctx, ok := req.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertRedirect checks for a 302 to location
func AssertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusFound {
		t.Errorf("Expected status %d, got %d. Body: %s", http.StatusFound, w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("Expected redirect to %q, got %q", location, got)
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
