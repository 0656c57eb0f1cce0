// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/un-design/auth"
	"github.com/danielhkuo/un-design/models"
	"github.com/danielhkuo/un-design/testutil"
)

func newTestRouter(t *testing.T) (*chi.Mux, *auth.SessionStore) {
	t.Helper()

	cfg := testutil.GetTestConfig()
	sessions := auth.NewSessionStore(cfg.SessionTTL)
	mux, err := NewRouter(testutil.NewTestStore(), sessions, testutil.SetupTestDB(t), cfg)
	if err != nil {
		t.Fatalf("Failed to build router: %v", err)
	}
	return mux, sessions
}

func TestHealthEndpoint(t *testing.T) {
	mux, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootRedirects(t *testing.T) {
	mux, _ := newTestRouter(t)

	tests := []struct {
		method         string
		path           string
		expectedStatus int
	}{
		{"GET", "/", http.StatusFound},
		{"GET", "/gate", http.StatusTemporaryRedirect},
		{"POST", "/gate", http.StatusTemporaryRedirect},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if loc := w.Header().Get("Location"); loc != "/un_design/" {
				t.Errorf("Expected redirect to /un_design/, got %q", loc)
			}
		})
	}
}

func TestAccessControl(t *testing.T) {
	mux, sessions := newTestRouter(t)
	participant := testutil.LoginParticipant(t, sessions, testutil.ParticipantID)
	admin := testutil.LoginAdmin(t, sessions)

	tests := []struct {
		name           string
		path           string
		session        *auth.Session
		expectedStatus int
	}{
		{"gate is public", "/un_design/", nil, http.StatusOK},
		{"menu needs login", "/un_design/menu", nil, http.StatusFound},
		{"index needs login", "/un_design/index", nil, http.StatusFound},
		{"result needs login", "/un_design/result", nil, http.StatusFound},
		{"menu for participant", "/un_design/menu", &participant, http.StatusOK},
		{"index for participant", "/un_design/index", &participant, http.StatusOK},
		{"add form for participant", "/un_design/add", &participant, http.StatusOK},
		{"result for participant", "/un_design/result", &participant, http.StatusOK},
		{"edit own proposal", "/un_design/edit_proposal/1", &participant, http.StatusOK},
		{"dashboard needs admin", "/un_design/admin/feedback", &participant, http.StatusFound},
		{"export needs admin", "/un_design/export_csv/proposals", &participant, http.StatusFound},
		{"stats need admin", "/un_design/admin/stats", nil, http.StatusFound},
		{"dashboard for admin", "/un_design/admin/feedback", &admin, http.StatusOK},
		{"export for admin", "/un_design/export_csv/reports", &admin, http.StatusOK},
		{"stats for admin", "/un_design/admin/stats", &admin, http.StatusOK},
		{"unknown route", "/un_design/nope", &admin, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.session != nil {
				testutil.WithCookie(req, *tt.session)
			}
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus == http.StatusFound {
				if loc := w.Header().Get("Location"); loc != "/un_design/" {
					t.Errorf("Expected redirect to gate, got %q", loc)
				}
			}
		})
	}
}

func TestPostWithoutCSRFTokenRejected(t *testing.T) {
	mux, sessions := newTestRouter(t)
	participant := testutil.LoginParticipant(t, sessions, "1102")

	form := url.Values{"points_1": {"100"}}
	req := testutil.WithCookie(testutil.MakeFormRequest("POST", "/un_design/vote_all", form), participant)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusForbidden)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Error != "Forbidden" {
		t.Errorf("Expected error 'Forbidden', got %q", resp.Error)
	}
}

var csrfFieldPattern = regexp.MustCompile(`name="gorilla.csrf.Token" value="([^"]+)"`)

// browser keeps cookies between requests the way a user agent would
type browser struct {
	t       *testing.T
	mux     http.Handler
	cookies map[string]*http.Cookie
	token   string
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()

	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	b.mux.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	if m := csrfFieldPattern.FindStringSubmatch(w.Body.String()); m != nil {
		b.token = html.UnescapeString(m[1])
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest("GET", path, nil))
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	form.Set("gorilla.csrf.Token", b.token)
	return b.do(testutil.MakeFormRequest("POST", path, form))
}

func TestParticipantFlow(t *testing.T) {
	mux, _ := newTestRouter(t)
	b := &browser{t: t, mux: mux, cookies: make(map[string]*http.Cookie)}

	w := b.get("/un_design/")
	testutil.AssertStatus(t, w, http.StatusOK)
	if b.token == "" {
		t.Fatal("Expected a CSRF token on the gate page")
	}

	w = b.post("/un_design/", url.Values{"password": {"2525land"}, "voter_id": {"9999"}})
	testutil.AssertStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), "ID MUST BE BETWEEN 1101 AND 1440") {
		t.Error("Expected the out-of-range message")
	}

	w = b.post("/un_design/", url.Values{"password": {"2525land"}, "voter_id": {"1102"}})
	testutil.AssertRedirect(t, w, "/un_design/menu")

	w = b.get("/un_design/index")
	testutil.AssertStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `name="points_1"`) {
		t.Fatal("Expected a voting field for proposal 1")
	}

	w = b.post("/un_design/vote_all", url.Values{"points_1": {"1000"}})
	testutil.AssertRedirect(t, w, "/un_design/result")

	w = b.get("/un_design/result")
	testutil.AssertStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), "reached its target") {
		t.Error("Expected the achieved notice after a full vote")
	}

	w = b.get("/un_design/logout")
	testutil.AssertRedirect(t, w, "/un_design/")

	w = b.get("/un_design/menu")
	testutil.AssertRedirect(t, w, "/un_design/")
}

func TestAdminFlow(t *testing.T) {
	mux, _ := newTestRouter(t)
	b := &browser{t: t, mux: mux, cookies: make(map[string]*http.Cookie)}

	b.get("/un_design/")
	w := b.post("/un_design/", url.Values{"password": {"930522"}})
	testutil.AssertRedirect(t, w, "/un_design/admin/feedback")

	w = b.get("/un_design/admin/feedback")
	testutil.AssertStatus(t, w, http.StatusOK)

	w = b.post("/un_design/archive_report/1", url.Values{})
	testutil.AssertRedirect(t, w, "/un_design/admin/feedback")

	w = b.post("/un_design/admin/snapshot", url.Values{})
	testutil.AssertRedirect(t, w, "/un_design/admin/feedback")

	w = b.get("/un_design/admin/feedback")
	testutil.AssertStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), "(2 proposals)") {
		t.Error("Expected the saved snapshot in the dashboard")
	}

	w = b.get("/un_design/export_csv/reports")
	testutil.AssertStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), "1,bug,1200,") || !strings.Contains(w.Body.String(), ",archived") {
		t.Errorf("Expected archived report in export, got %s", w.Body.String())
	}
}
