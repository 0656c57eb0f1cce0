// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/danielhkuo/un-design/models"
)

// Store is the process-wide application state. Build it once with New and
// pass it to whatever needs it.
type Store struct {
	Proposals *ProposalStore
	Reports   *ReportStore
	Voted     *VotedSet
}

// New creates the stores and fills them from seed
func New(seed Seed) *Store {
	s := &Store{
		Proposals: NewProposalStore(),
		Reports:   NewReportStore(),
		Voted:     NewVotedSet(),
	}

	for _, sp := range seed.Proposals {
		p, err := s.Proposals.Create(models.ProposalFields{
			Title:    sp.Title,
			Author:   sp.Author,
			Target:   sp.Target,
			Category: sp.Category,
			Problem:  sp.Problem,
			Details:  sp.Details,
			Effect:   sp.Effect,
			Cost1:    strconv.Itoa(sp.Cost1),
			Cost2:    strconv.Itoa(sp.Cost2),
			Cost3:    strconv.Itoa(sp.Cost3),
		}, sp.CreatorID)
		if errors.Is(err, ErrDuplicate) {
			slog.Warn("skipping duplicate seed proposal", "title", sp.Title, "creator_id", sp.CreatorID)
			continue
		}
		if len(sp.Votes) > 0 {
			points := make(map[int]int)
			for voterID, pts := range sp.Votes {
				points[p.ID] = pts
				s.Proposals.RecordVotes(voterID, points)
			}
		}
	}

	for _, sr := range seed.Reports {
		r := s.Reports.Create(sr.Type, sr.Env, sr.Details)
		if sr.Archived {
			// Just created, cannot be missing
			_ = s.Reports.Archive(r.ID)
		}
	}

	return s
}
