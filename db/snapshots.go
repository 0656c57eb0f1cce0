// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/danielhkuo/un-design/models"
	"github.com/danielhkuo/un-design/stats"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// NewSnapshot builds a snapshot of the current results. IDs are ULIDs so
// they sort by creation time.
func NewSnapshot(proposals []models.Proposal, reports []models.Report, now time.Time) models.ResultSnapshot {
	if proposals == nil {
		proposals = []models.Proposal{}
	}
	return models.ResultSnapshot{
		ID:         ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		ComputedAt: now.UTC(),
		Dashboard:  stats.Build(proposals, reports),
		Proposals:  proposals,
	}
}

// SaveSnapshot stores a snapshot with its full JSON payload
func SaveSnapshot(ctx context.Context, db *sql.DB, snap models.ResultSnapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO result_snapshot (id, computed_at, proposal_count, payload)
		VALUES ($1, $2, $3, $4)
	`, snap.ID, snap.ComputedAt.UTC().Format(time.RFC3339Nano), len(snap.Proposals), string(payload))
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}
	return nil
}

// ListSnapshots returns every snapshot, newest first
func ListSnapshots(ctx context.Context, db *sql.DB) ([]models.SnapshotSummary, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, computed_at, proposal_count
		FROM result_snapshot
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	summaries := []models.SnapshotSummary{}
	for rows.Next() {
		var s models.SnapshotSummary
		var computedAt string
		if err := rows.Scan(&s.ID, &computedAt, &s.ProposalCount); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		s.ComputedAt, err = time.Parse(time.RFC3339Nano, computedAt)
		if err != nil {
			return nil, fmt.Errorf("snapshot %s has bad timestamp: %w", s.ID, err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// GetSnapshot loads one snapshot's payload
func GetSnapshot(ctx context.Context, db *sql.DB, id string) (models.ResultSnapshot, error) {
	var payload string
	err := db.QueryRowContext(ctx, `
		SELECT payload FROM result_snapshot WHERE id = $1
	`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return models.ResultSnapshot{}, fmt.Errorf("%s: %w", id, ErrSnapshotNotFound)
	}
	if err != nil {
		return models.ResultSnapshot{}, fmt.Errorf("failed to query snapshot: %w", err)
	}

	var snap models.ResultSnapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return models.ResultSnapshot{}, fmt.Errorf("failed to decode snapshot %s: %w", id, err)
	}
	return snap, nil
}
