// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the UN-DESIGN pavilion server.

UN-DESIGN is a classroom voting app. Participants log in with a shared access
code and a numeric ID, which places them in one of four groups. They write
proposals with a three-part cost, then spend a one-time budget of 1000 points
on the proposals of their own group. A proposal is achieved once the points it
received cover its cost.

# Starting the Server

With no configuration the server listens on port 5000 and keeps its result
snapshots in the SQLite file pavilion.db:

	go run .

Or with flags:

	go run . serve -p 8080 -d "postgres://..."

A .env file in the working directory is loaded first.

# Configuration

  - PORT (-p): Server port (default: 5000)
  - DATABASE_URL (-d): SQLite file or PostgreSQL URL (default: pavilion.db)
  - DATABASE_TYPE (-t): sqlite or postgres, inferred from the URL
  - LOG_LEVEL (--log-level): debug, info, warn or error
  - SEED_PATH (--seed): YAML file replacing the built-in sample data
  - SESSION_SALT (--session-salt): Salt for hashing client IPs in logs
  - CSRF_KEY (--csrf-key): 64 hex characters; random when unset
  - SECURE_COOKIES (--secure-cookies): Set when served over HTTPS
  - SESSION_TTL (--session-ttl): Session lifetime (default: 12h)

# Commands

	undesign                    Run the server
	undesign serve              Run the server
	undesign snapshots list     List saved result snapshots
	undesign snapshots show ID  Print one snapshot as JSON

# Architecture

  - handlers: HTTP handlers and page templates
  - router: chi routes, CSRF and session middleware
  - middleware: Logging, session context, JSON helpers
  - voting: The one-time ballot engine
  - stats: Dashboard and result aggregation
  - store: In-memory proposals, reports and voters
  - export: CSV downloads
  - groups: ID to group mapping
  - auth: Login and sessions
  - db: Result snapshot archive
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
