// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"

	"github.com/danielhkuo/un-design/auth"
	"github.com/danielhkuo/un-design/cliparse"
	"github.com/danielhkuo/un-design/handlers"
	"github.com/danielhkuo/un-design/middleware"
	"github.com/danielhkuo/un-design/store"
	"github.com/danielhkuo/un-design/voting"
)

// NewRouter wires every route over st. database may be nil, which turns
// off result snapshots.
func NewRouter(st *store.Store, sessions *auth.SessionStore, database *sql.DB, cfg cliparse.Config) (*chi.Mux, error) {
	view, err := handlers.NewRenderer()
	if err != nil {
		return nil, err
	}

	// Without a configured key, tokens only survive until restart
	var csrfKey []byte
	if cfg.CSRFKey == "" {
		csrfKey, err = auth.GenerateKey(32)
	} else {
		csrfKey, err = cfg.CSRFKeyBytes()
	}
	if err != nil {
		return nil, fmt.Errorf("csrf key: %w", err)
	}

	// Initialize handlers
	engine := voting.NewEngine(st.Proposals, st.Voted)
	gateHandler := handlers.NewGateHandler(sessions, st.Reports, view, cfg)
	proposalHandler := handlers.NewProposalHandler(st.Proposals, engine, view)
	votingHandler := handlers.NewVotingHandler(engine, st.Proposals, sessions, view)
	adminHandler := handlers.NewAdminHandler(st, database, view)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.WithLogging)
	r.Use(chimw.Recoverer)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, handlers.GatePath, http.StatusFound)
	})
	// 307 keeps the method, so old forms posting here still reach the gate
	gateRedirect := func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, handlers.GatePath, http.StatusTemporaryRedirect)
	}
	r.Get("/gate", gateRedirect)
	r.Post("/gate", gateRedirect)

	r.Route(handlers.BasePath, func(r chi.Router) {
		if !cfg.SecureCookies {
			r.Use(plaintextHTTP)
		}
		r.Use(csrf.Protect(csrfKey,
			csrf.Secure(cfg.SecureCookies),
			csrf.Path(handlers.BasePath),
			csrf.SameSite(csrf.SameSiteLaxMode),
			csrf.HttpOnly(true),
			csrf.ErrorHandler(http.HandlerFunc(csrfFailure)),
		))
		r.Use(middleware.LoadSession(sessions))

		// Public
		r.Get("/", gateHandler.Gate)
		r.Post("/", gateHandler.Login)
		r.Get("/logout", gateHandler.Logout)
		r.Post("/debug_report", gateHandler.DebugReport)

		// Participants and admin
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireLogin(handlers.GatePath))

			r.Get("/menu", gateHandler.Menu)
			r.Get("/add", proposalHandler.AddForm)
			r.Post("/add", proposalHandler.Add)
			r.Get("/index", proposalHandler.Index)
			r.Post("/vote_all", votingHandler.VoteAll)
			r.Get("/result", votingHandler.Result)
			r.Get("/edit_proposal/{id}", proposalHandler.EditForm)
			r.Post("/edit_proposal/{id}", proposalHandler.Edit)
			r.Post("/delete_proposal/{id}", proposalHandler.Delete)
		})

		// Admin only
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(handlers.GatePath))

			r.Get("/admin/feedback", adminHandler.Feedback)
			r.Get("/admin/stats", adminHandler.Stats)
			r.Post("/admin/snapshot", adminHandler.Snapshot)
			r.Post("/archive_report/{id}", adminHandler.ArchiveReport)
			r.Get("/export_csv/{target}", adminHandler.ExportCSV)
		})
	})

	return r, nil
}

func csrfFailure(w http.ResponseWriter, r *http.Request) {
	slog.Warn("csrf check failed",
		"path", r.URL.Path,
		"reason", csrf.FailureReason(r),
	)
	middleware.ErrorResponse(w, http.StatusForbidden, "invalid or missing CSRF token")
}

// plaintextHTTP tells the CSRF check that this deployment is not behind TLS,
// so it skips the strict Referer check.
func plaintextHTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}
