// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP handlers for the UN-DESIGN pavilion.

# Handler Types

Each handler is a struct holding the stores and engines it needs:

  - GateHandler: login, logout, menu and anonymous bug reports
  - ProposalHandler: proposal creation, the group listing, edit and delete
  - VotingHandler: ballot submission and the group result page
  - AdminHandler: dashboard, report triage, CSV export and result snapshots

Handlers are created via constructor functions:

	gate := handlers.NewGateHandler(sessions, st.Reports, view, cfg)

Pages are server-rendered from the embedded templates by a Renderer.

# Participant Flow

	POST /un_design/               → Login (password + ID)
	GET  /un_design/menu           → Menu
	POST /un_design/add            → Add
	GET  /un_design/index          → Index (own group, most expensive first)
	POST /un_design/vote_all       → VoteAll (points_<id> fields, 1000 pt budget)
	GET  /un_design/result         → Result

# Admin Flow

	GET  /un_design/admin/feedback       → Feedback
	POST /un_design/archive_report/{id}  → ArchiveReport
	GET  /un_design/export_csv/{target}  → ExportCSV (proposals | reports)
	GET  /un_design/admin/stats          → Stats (JSON)
	POST /un_design/admin/snapshot       → Snapshot

Failures never surface as error pages: apart from the inline login message,
every rejected request is redirected to a safe screen.
*/
package handlers
