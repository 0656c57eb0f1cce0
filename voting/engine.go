// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package voting applies a voter's one-time point allocation to the
// proposal ledgers.
package voting

import (
	"log/slog"
	"strconv"
	"sync"

	"github.com/danielhkuo/un-design/store"
)

// Budget is the most points a voter may hand out in one submission
const Budget = 1000

type Outcome string

const (
	OutcomeAlreadyVoted       Outcome = "already_voted"
	OutcomeAccepted           Outcome = "accepted"
	OutcomeRejectedOverBudget Outcome = "rejected_over_budget"
)

// Result describes what CastVotes did
type Result struct {
	Outcome Outcome
	Total   int         // points written, 0 unless accepted
	Points  map[int]int // proposal ID -> points written; nil unless accepted
}

type Engine struct {
	mu        sync.Mutex
	proposals *store.ProposalStore
	voted     *store.VotedSet
}

func NewEngine(proposals *store.ProposalStore, voted *store.VotedSet) *Engine {
	return &Engine{proposals: proposals, voted: voted}
}

// CastVotes records a voter's allocations, keyed by proposal ID.
//
// A voter gets exactly one attempt. Allocations for the voter's own
// proposals, unparsable values and values <= 0 are ignored. If the remaining
// points add up to more than Budget nothing is written. Either way the voter
// is marked as having voted.
func (e *Engine) CastVotes(voterID, group string, allocations map[int]string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.voted.Has(voterID) {
		slog.Info("repeat vote ignored", "voter_id", voterID)
		return Result{Outcome: OutcomeAlreadyVoted}
	}
	defer e.voted.Add(voterID)

	points := make(map[int]int)
	total := 0
	overBudget := false

	for _, p := range e.proposals.List() {
		if p.CreatorID == voterID {
			continue
		}
		raw, ok := allocations[p.ID]
		if !ok {
			continue
		}
		pts, err := strconv.Atoi(raw)
		if err != nil || pts <= 0 {
			continue
		}
		// Compare before adding so huge values cannot overflow the sum
		if pts > Budget-total {
			overBudget = true
			break
		}
		total += pts
		points[p.ID] = pts
	}

	if overBudget {
		slog.Warn("vote discarded over budget", "voter_id", voterID, "group", group, "budget", Budget)
		return Result{Outcome: OutcomeRejectedOverBudget}
	}

	e.proposals.RecordVotes(voterID, points)
	slog.Info("votes cast", "voter_id", voterID, "group", group, "proposals", len(points), "total", total)

	return Result{Outcome: OutcomeAccepted, Total: total, Points: points}
}

// HasVoted reports whether voterID has already used their attempt
func (e *Engine) HasVoted(voterID string) bool {
	return e.voted.Has(voterID)
}
