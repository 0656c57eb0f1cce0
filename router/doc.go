// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes for the UN-DESIGN pavilion.

# Route Registration

NewRouter creates a chi router with all pages wired over one store:

	mux, err := router.NewRouter(st, sessions, db, cfg)

Every request passes through chi's RequestID, RealIP and Recoverer
middleware plus request logging. Pages under /un_design are protected by
gorilla/csrf and resolve the session cookie into an identity.

# Endpoints

Public:

	GET  /health
	GET  /, /gate                 - Redirect to the gate
	GET  /un_design/              - Gate
	POST /un_design/              - Login
	GET  /un_design/logout
	POST /un_design/debug_report  - File a report

Logged in (otherwise redirected to the gate):

	GET      /un_design/menu
	GET/POST /un_design/add
	GET      /un_design/index
	POST     /un_design/vote_all
	GET      /un_design/result
	GET/POST /un_design/edit_proposal/{id}
	POST     /un_design/delete_proposal/{id}

Admin only:

	GET  /un_design/admin/feedback
	GET  /un_design/admin/stats
	POST /un_design/admin/snapshot
	POST /un_design/archive_report/{id}
	GET  /un_design/export_csv/{target}
*/
package router
