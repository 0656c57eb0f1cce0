// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/un-design/db"
	"github.com/danielhkuo/un-design/export"
	"github.com/danielhkuo/un-design/groups"
	"github.com/danielhkuo/un-design/middleware"
	"github.com/danielhkuo/un-design/models"
	"github.com/danielhkuo/un-design/stats"
	"github.com/danielhkuo/un-design/store"
)

// AdminHandler serves the admin dashboard, report triage, exports and
// result snapshots. db may be nil, in which case snapshots are disabled.
type AdminHandler struct {
	store *store.Store
	db    *sql.DB
	view  *Renderer
}

func NewAdminHandler(st *store.Store, database *sql.DB, view *Renderer) *AdminHandler {
	return &AdminHandler{store: st, db: database, view: view}
}

type feedbackData struct {
	Groups    []string
	Dashboard models.Dashboard
	Reports   []models.Report
	Proposals []models.Proposal
	Snapshots []models.SnapshotSummary
}

// Feedback handles GET /un_design/admin/feedback
func (h *AdminHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	proposals := h.store.Proposals.List()
	reports := h.store.Reports.List()

	data := feedbackData{
		Groups:    groups.Labels(),
		Dashboard: stats.Build(proposals, reports),
		Reports:   reports,
		Proposals: proposals,
	}

	if h.db != nil {
		snaps, err := db.ListSnapshots(r.Context(), h.db)
		if err != nil {
			// The dashboard is still useful without the archive
			slog.Error("failed to list snapshots", "error", err)
		}
		data.Snapshots = snaps
	}

	h.view.Render(w, r, "admin", data)
}

// ArchiveReport handles POST /un_design/archive_report/{id}
func (h *AdminHandler) ArchiveReport(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err == nil {
		err = h.store.Reports.Archive(id)
	}
	if err != nil {
		slog.Warn("archive report failed", "id", chi.URLParam(r, "id"), "error", err)
	} else {
		slog.Info("report archived", "report_id", id)
	}

	redirect(w, r, FeedbackPath)
}

// ExportCSV handles GET /un_design/export_csv/{target}
func (h *AdminHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	target := chi.URLParam(r, "target")

	var buf bytes.Buffer
	if err := export.Write(&buf, target, h.store.Proposals.List(), h.store.Reports.List()); err != nil {
		slog.Warn("csv export rejected", "target", target, "error", err)
		redirect(w, r, FeedbackPath)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(target)))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// Stats handles GET /un_design/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, stats.Build(h.store.Proposals.List(), h.store.Reports.List()))
}

// Snapshot handles POST /un_design/admin/snapshot
func (h *AdminHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		redirect(w, r, FeedbackPath)
		return
	}

	snap := db.NewSnapshot(h.store.Proposals.List(), h.store.Reports.List(), time.Now().UTC())
	if err := db.SaveSnapshot(r.Context(), h.db, snap); err != nil {
		internalError(w, fmt.Errorf("saving snapshot: %w", err))
		return
	}

	slog.Info("result snapshot saved", "snapshot_id", snap.ID, "proposals", len(snap.Proposals))
	redirect(w, r, FeedbackPath)
}
