// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielhkuo/un-design/auth"
	"github.com/danielhkuo/un-design/middleware"
	"github.com/danielhkuo/un-design/stats"
	"github.com/danielhkuo/un-design/store"
	"github.com/danielhkuo/un-design/voting"
)

const pointsFieldPrefix = "points_"

type VotingHandler struct {
	engine    *voting.Engine
	proposals *store.ProposalStore
	sessions  *auth.SessionStore
	view      *Renderer
}

func NewVotingHandler(engine *voting.Engine, proposals *store.ProposalStore, sessions *auth.SessionStore, view *Renderer) *VotingHandler {
	return &VotingHandler{engine: engine, proposals: proposals, sessions: sessions, view: view}
}

// allocations collects the points_<id> fields of a parsed form
func allocations(r *http.Request) map[int]string {
	out := make(map[int]string)
	for key, values := range r.PostForm {
		if !strings.HasPrefix(key, pointsFieldPrefix) || len(values) == 0 {
			continue
		}
		id, err := strconv.Atoi(strings.TrimPrefix(key, pointsFieldPrefix))
		if err != nil {
			continue
		}
		out[id] = strings.TrimSpace(values[0])
	}
	return out
}

// VoteAll handles POST /un_design/vote_all
func (h *VotingHandler) VoteAll(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirect(w, r, IndexPath)
		return
	}

	sess, _ := middleware.SessionFromContext(r.Context())
	if sess.HasVoted {
		redirect(w, r, ResultPath)
		return
	}

	res := h.engine.CastVotes(sess.Identity.VoterID, sess.Identity.Group, allocations(r))
	h.sessions.MarkVoted(sess.Token)

	slog.Info("ballot processed",
		"voter_id", sess.Identity.VoterID,
		"group", sess.Identity.Group,
		"outcome", res.Outcome,
		"total", res.Total,
	)

	redirect(w, r, ResultPath)
}

// Result handles GET /un_design/result
func (h *VotingHandler) Result(w http.ResponseWriter, r *http.Request) {
	group := middleware.IdentityFromContext(r.Context()).Group
	h.view.Render(w, r, "result", stats.GroupResults(h.proposals.List(), group))
}
