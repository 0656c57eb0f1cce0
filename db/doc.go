// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db stores result snapshots in SQLite or PostgreSQL.

Proposals, reports and votes live in memory (see package store) and are lost
on restart. The database only keeps snapshots an admin takes of the
results, so a finished event can still be looked at afterwards.

# Connecting

	conn, err := db.Open(db.TypeSQLite, "pavilion.db")
	conn, err := db.Open(db.TypePostgres, "postgres://...")

Open pings the database and applies the embedded goose migrations.

# Schema

	result_snapshot
	├── id (ULID, primary key)
	├── computed_at (RFC 3339 text)
	├── proposal_count
	└── payload (JSON models.ResultSnapshot)

# Snapshots

	snap := db.NewSnapshot(proposals, reports, time.Now())
	err := db.SaveSnapshot(ctx, conn, snap)
	list, err := db.ListSnapshots(ctx, conn)
	snap, err := db.GetSnapshot(ctx, conn, id)
*/
package db
