// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/un-design/auth"
	"github.com/danielhkuo/un-design/testutil"
)

func (a *testApp) proposals() *ProposalHandler {
	return NewProposalHandler(a.store.Proposals, a.engine, a.view)
}

func proposalValues(title string) url.Values {
	return url.Values{
		"title":     {title},
		"author":    {"学生"},
		"target":    {"高校生"},
		"category":  {"教育"},
		"problem":   {"p"},
		"details":   {"d"},
		"effect":    {"e"},
		"cost_pt_1": {"100"},
		"cost_pt_2": {"abc"},
		"cost_pt_3": {"-5"},
	}
}

func TestAddProposal(t *testing.T) {
	app := newTestApp(t)
	handler := app.proposals()
	sess := testutil.LoginParticipant(t, app.sessions, "1102")

	req := testutil.WithSession(testutil.MakeFormRequest("POST", BasePath+"/add", proposalValues("New idea")), sess)
	w := httptest.NewRecorder()
	handler.Add(w, req)

	testutil.AssertRedirect(t, w, IndexPath)
	require.Equal(t, 3, app.store.Proposals.Len())

	p, err := app.store.Proposals.Get(3)
	require.NoError(t, err)
	assert.Equal(t, "New idea", p.Title)
	assert.Equal(t, "1102", p.CreatorID)
	assert.Equal(t, 100, p.Cost1)
	assert.Equal(t, 0, p.Cost2, "non-numeric cost becomes 0")
	assert.Equal(t, 0, p.Cost3, "negative cost becomes 0")
}

func TestAddProposalDuplicateRedirects(t *testing.T) {
	app := newTestApp(t)
	handler := app.proposals()
	sess := testutil.LoginParticipant(t, app.sessions, "1102")

	for i := 0; i < 2; i++ {
		req := testutil.WithSession(testutil.MakeFormRequest("POST", BasePath+"/add", proposalValues("Same")), sess)
		w := httptest.NewRecorder()
		handler.Add(w, req)
		testutil.AssertRedirect(t, w, IndexPath)
	}

	assert.Equal(t, 3, app.store.Proposals.Len(), "second submission is ignored")
}

func TestIndexShowsOwnGroupOnly(t *testing.T) {
	app := newTestApp(t)
	handler := app.proposals()
	sess := testutil.LoginParticipant(t, app.sessions, "1130")

	w := httptest.NewRecorder()
	handler.Index(w, testutil.WithSession(testutil.MakeRequest("GET", IndexPath, nil), sess))

	testutil.AssertStatus(t, w, http.StatusOK)
	body := w.Body.String()
	assert.Contains(t, body, "あえて階段しかない公園")
	assert.NotContains(t, body, "全自動ではない家電")
	assert.Contains(t, body, `name="points_1"`)
}

func TestIndexHidesVotingAfterVote(t *testing.T) {
	app := newTestApp(t)
	handler := app.proposals()
	sess := testutil.LoginParticipant(t, app.sessions, "1130")
	app.engine.CastVotes(sess.Identity.VoterID, sess.Identity.Group, nil)

	w := httptest.NewRecorder()
	handler.Index(w, testutil.WithSession(testutil.MakeRequest("GET", IndexPath, nil), sess))

	testutil.AssertStatus(t, w, http.StatusOK)
	assert.Contains(t, w.Body.String(), "already voted")
	assert.NotContains(t, w.Body.String(), `name="points_1"`)
}

func TestIndexSortsByCost(t *testing.T) {
	app := newTestApp(t)
	handler := app.proposals()
	sess := testutil.LoginParticipant(t, app.sessions, "1110")

	cheap := proposalValues("Cheap")
	cheap.Set("cost_pt_1", "1")
	dear := proposalValues("Dear")
	dear.Set("cost_pt_1", "5000")
	for _, form := range []url.Values{cheap, dear} {
		w := httptest.NewRecorder()
		handler.Add(w, testutil.WithSession(testutil.MakeFormRequest("POST", BasePath+"/add", form), sess))
	}

	w := httptest.NewRecorder()
	handler.Index(w, testutil.WithSession(testutil.MakeRequest("GET", IndexPath, nil), sess))

	body := w.Body.String()
	dearAt := strings.Index(body, "Dear")
	seedAt := strings.Index(body, "あえて階段しかない公園")
	cheapAt := strings.Index(body, "Cheap")
	require.True(t, dearAt >= 0 && seedAt >= 0 && cheapAt >= 0)
	assert.Less(t, dearAt, seedAt)
	assert.Less(t, seedAt, cheapAt)
}

func TestEditProposal(t *testing.T) {
	tests := []struct {
		name         string
		password     string
		voterID      string
		id           string
		wantLocation string
		wantTitle    string
	}{
		{
			name:         "owner",
			password:     auth.UserPassword,
			voterID:      "1101",
			id:           "1",
			wantLocation: IndexPath,
			wantTitle:    "Edited",
		},
		{
			name:         "admin",
			password:     auth.AdminPassword,
			id:           "1",
			wantLocation: FeedbackPath,
			wantTitle:    "Edited",
		},
		{
			name:         "someone else",
			password:     auth.UserPassword,
			voterID:      "1102",
			id:           "1",
			wantLocation: GatePath,
			wantTitle:    "あえて階段しかない公園",
		},
		{
			name:         "unknown id",
			password:     auth.UserPassword,
			voterID:      "1101",
			id:           "99",
			wantLocation: MenuPath,
			wantTitle:    "あえて階段しかない公園",
		},
		{
			name:         "malformed id",
			password:     auth.UserPassword,
			voterID:      "1101",
			id:           "one",
			wantLocation: MenuPath,
			wantTitle:    "あえて階段しかない公園",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			handler := app.proposals()
			sess := testutil.Login(t, app.sessions, tt.password, tt.voterID)

			req := testutil.MakeFormRequest("POST", BasePath+"/edit_proposal/"+tt.id, proposalValues("Edited"))
			req = testutil.WithURLParam(testutil.WithSession(req, sess), "id", tt.id)
			w := httptest.NewRecorder()
			handler.Edit(w, req)

			testutil.AssertRedirect(t, w, tt.wantLocation)

			p, err := app.store.Proposals.Get(1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, p.Title)
			assert.Equal(t, "1101", p.CreatorID, "creator never changes")
		})
	}
}

func TestEditForm(t *testing.T) {
	app := newTestApp(t)
	handler := app.proposals()

	owner := testutil.LoginParticipant(t, app.sessions, "1101")
	req := testutil.WithURLParam(testutil.WithSession(testutil.MakeRequest("GET", BasePath+"/edit_proposal/1", nil), owner), "id", "1")
	w := httptest.NewRecorder()
	handler.EditForm(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	assert.Contains(t, w.Body.String(), `value="あえて階段しかない公園"`)

	other := testutil.LoginParticipant(t, app.sessions, "1201")
	req = testutil.WithURLParam(testutil.WithSession(testutil.MakeRequest("GET", BasePath+"/edit_proposal/1", nil), other), "id", "1")
	w = httptest.NewRecorder()
	handler.EditForm(w, req)

	testutil.AssertRedirect(t, w, GatePath)
}

func TestDeleteProposal(t *testing.T) {
	tests := []struct {
		name         string
		password     string
		voterID      string
		id           int
		wantLocation string
		wantLen      int
	}{
		{"owner", auth.UserPassword, "1201", 2, IndexPath, 1},
		{"admin", auth.AdminPassword, "", 2, FeedbackPath, 1},
		{"someone else", auth.UserPassword, "1101", 2, GatePath, 2},
		{"unknown id", auth.AdminPassword, "", 42, MenuPath, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			handler := app.proposals()
			sess := testutil.Login(t, app.sessions, tt.password, tt.voterID)
			id := strconv.Itoa(tt.id)

			req := testutil.MakeRequest("POST", BasePath+"/delete_proposal/"+id, nil)
			req = testutil.WithURLParam(testutil.WithSession(req, sess), "id", id)
			w := httptest.NewRecorder()
			handler.Delete(w, req)

			testutil.AssertRedirect(t, w, tt.wantLocation)
			assert.Equal(t, tt.wantLen, app.store.Proposals.Len())
		})
	}
}
