// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/un-design/auth"
	"github.com/danielhkuo/un-design/cliparse"
	"github.com/danielhkuo/un-design/middleware"
	"github.com/danielhkuo/un-design/store"
)

type GateHandler struct {
	sessions *auth.SessionStore
	reports  *store.ReportStore
	view     *Renderer
	cfg      cliparse.Config
}

func NewGateHandler(sessions *auth.SessionStore, reports *store.ReportStore, view *Renderer, cfg cliparse.Config) *GateHandler {
	return &GateHandler{sessions: sessions, reports: reports, view: view, cfg: cfg}
}

type gateData struct {
	Error   string
	VoterID string
}

// Gate handles GET /un_design/
func (h *GateHandler) Gate(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, "gate", gateData{})
}

// Login handles POST /un_design/
func (h *GateHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.view.Render(w, r, "gate", gateData{Error: "INVALID REQUEST"})
		return
	}

	password := r.PostFormValue("password")
	voterID := r.PostFormValue("voter_id")
	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.SessionSalt)

	identity, err := auth.Login(password, voterID)
	if err != nil {
		slog.Info("login rejected", "ip_hash", ipHash, "voter_id", voterID, "error", err)
		h.view.Render(w, r, "gate", gateData{Error: auth.Message(err), VoterID: voterID})
		return
	}

	// Replace any session the browser already holds
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		h.sessions.Delete(cookie.Value)
	}
	sess := h.sessions.Create(identity)
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    sess.Token,
		Path:     BasePath,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	slog.Info("login", "ip_hash", ipHash, "voter_id", identity.VoterID, "group", identity.Group, "admin", identity.IsAdmin)

	if identity.IsAdmin {
		redirect(w, r, FeedbackPath)
		return
	}
	redirect(w, r, MenuPath)
}

// Logout handles GET /un_design/logout
func (h *GateHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		h.sessions.Delete(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     BasePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	redirect(w, r, GatePath)
}

// Menu handles GET /un_design/menu
func (h *GateHandler) Menu(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, "menu", nil)
}

// DebugReport handles POST /un_design/debug_report. No login is needed.
func (h *GateHandler) DebugReport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirect(w, r, GatePath)
		return
	}

	report := h.reports.Create(
		r.PostFormValue("type"),
		r.PostFormValue("env"),
		r.PostFormValue("details"),
	)
	slog.Info("report filed", "report_id", report.ID, "type", report.Type)

	redirect(w, r, GatePath)
}
