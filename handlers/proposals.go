// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/un-design/middleware"
	"github.com/danielhkuo/un-design/models"
	"github.com/danielhkuo/un-design/store"
	"github.com/danielhkuo/un-design/voting"
)

type ProposalHandler struct {
	proposals *store.ProposalStore
	engine    *voting.Engine
	view      *Renderer
}

func NewProposalHandler(proposals *store.ProposalStore, engine *voting.Engine, view *Renderer) *ProposalHandler {
	return &ProposalHandler{proposals: proposals, engine: engine, view: view}
}

type indexData struct {
	Proposals []models.Proposal
	HasVoted  bool
}

// proposalForm reads the editable fields from a parsed form
func proposalForm(r *http.Request) models.ProposalFields {
	return models.ProposalFields{
		Title:    r.PostFormValue("title"),
		Author:   r.PostFormValue("author"),
		Target:   r.PostFormValue("target"),
		Category: r.PostFormValue("category"),
		Problem:  r.PostFormValue("problem"),
		Details:  r.PostFormValue("details"),
		Effect:   r.PostFormValue("effect"),
		Cost1:    r.PostFormValue("cost_pt_1"),
		Cost2:    r.PostFormValue("cost_pt_2"),
		Cost3:    r.PostFormValue("cost_pt_3"),
	}
}

// proposalID parses the {id} URL parameter
func proposalID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, false
	}
	return id, true
}

// AddForm handles GET /un_design/add
func (h *ProposalHandler) AddForm(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, "add", nil)
}

// Add handles POST /un_design/add
func (h *ProposalHandler) Add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirect(w, r, MenuPath)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	p, err := h.proposals.Create(proposalForm(r), identity.VoterID)
	switch {
	case errors.Is(err, store.ErrDuplicate):
		slog.Info("duplicate proposal ignored", "proposal_id", p.ID, "voter_id", identity.VoterID)
	case err != nil:
		internalError(w, err)
		return
	default:
		slog.Info("proposal created", "proposal_id", p.ID, "voter_id", identity.VoterID, "group", p.AuthorGroup())
	}

	redirect(w, r, IndexPath)
}

// Index handles GET /un_design/index
func (h *ProposalHandler) Index(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())

	h.view.Render(w, r, "index", indexData{
		Proposals: h.proposals.ListByGroup(sess.Identity.Group),
		HasVoted:  sess.HasVoted || h.engine.HasVoted(sess.Identity.VoterID),
	})
}

// EditForm handles GET /un_design/edit_proposal/{id}
func (h *ProposalHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := proposalID(r)
	if !ok {
		redirect(w, r, MenuPath)
		return
	}

	p, err := h.proposals.Get(id)
	if err != nil {
		redirect(w, r, MenuPath)
		return
	}
	if !middleware.IdentityFromContext(r.Context()).CanModify(p.CreatorID) {
		redirect(w, r, GatePath)
		return
	}

	h.view.Render(w, r, "edit", p)
}

// Edit handles POST /un_design/edit_proposal/{id}
func (h *ProposalHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := proposalID(r)
	if !ok {
		redirect(w, r, MenuPath)
		return
	}
	if err := r.ParseForm(); err != nil {
		redirect(w, r, MenuPath)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	if _, err := h.proposals.Update(id, proposalForm(r), identity); err != nil {
		h.redirectModifyError(w, r, err)
		return
	}

	slog.Info("proposal updated", "proposal_id", id, "voter_id", identity.VoterID)
	h.redirectAfterModify(w, r, identity)
}

// Delete handles POST /un_design/delete_proposal/{id}
func (h *ProposalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := proposalID(r)
	if !ok {
		redirect(w, r, MenuPath)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	if err := h.proposals.Delete(id, identity); err != nil {
		h.redirectModifyError(w, r, err)
		return
	}

	slog.Info("proposal deleted", "proposal_id", id, "voter_id", identity.VoterID)
	h.redirectAfterModify(w, r, identity)
}

func (h *ProposalHandler) redirectModifyError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrPermissionDenied):
		slog.Warn("proposal change denied", "error", err)
		redirect(w, r, GatePath)
	default:
		redirect(w, r, MenuPath)
	}
}

func (h *ProposalHandler) redirectAfterModify(w http.ResponseWriter, r *http.Request, identity models.Identity) {
	if identity.IsAdmin {
		redirect(w, r, FeedbackPath)
		return
	}
	redirect(w, r, IndexPath)
}
