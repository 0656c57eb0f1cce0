// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package stats aggregates proposals and reports for the result and admin
// pages. Every function is read-only over the slices it is given.
package stats

import (
	"github.com/danielhkuo/un-design/groups"
	"github.com/danielhkuo/un-design/models"
)

// CountsByGroup counts proposals per author group. Proposals whose creator
// has no group are left out.
func CountsByGroup(proposals []models.Proposal) map[string]int {
	counts := make(map[string]int)
	for _, p := range proposals {
		if g := p.AuthorGroup(); g != "" {
			counts[g]++
		}
	}
	return counts
}

// CountsByCategory counts proposals per category, ignoring empty categories
func CountsByCategory(proposals []models.Proposal) map[string]int {
	counts := make(map[string]int)
	for _, p := range proposals {
		if p.Category != "" {
			counts[p.Category]++
		}
	}
	return counts
}

// VotesByGroup sums ledger points by the group of the voter who cast them.
// Entries from voters without a group, and creators' own entries, are
// left out.
func VotesByGroup(proposals []models.Proposal) map[string]int {
	totals := make(map[string]int)
	for _, p := range proposals {
		for voterID, points := range p.Votes {
			if voterID == p.CreatorID {
				continue
			}
			if g := groups.Resolve(voterID); g != "" {
				totals[g] += points
			}
		}
	}
	return totals
}

// Achievement splits proposals into achieved and not achieved
func Achievement(proposals []models.Proposal) models.AchievementStatus {
	var status models.AchievementStatus
	for _, p := range proposals {
		if p.Achieved() {
			status.Achieved++
		} else {
			status.NotAchieved++
		}
	}
	return status
}

func CountReports(reports []models.Report) models.ReportCounts {
	var counts models.ReportCounts
	for _, r := range reports {
		if r.Status == models.StatusArchived {
			counts.Archived++
		} else {
			counts.Unread++
		}
	}
	return counts
}

// Build computes the whole admin dashboard
func Build(proposals []models.Proposal, reports []models.Report) models.Dashboard {
	return models.Dashboard{
		CountsByGroup:    CountsByGroup(proposals),
		CountsByCategory: CountsByCategory(proposals),
		VotesByGroup:     VotesByGroup(proposals),
		Achievement:      Achievement(proposals),
		Reports:          CountReports(reports),
	}
}

// ProposalResult is one row of a group's result page
type ProposalResult struct {
	ID          int
	Title       string
	Author      string
	TotalPoints int
	TargetCost  int
	Achieved    bool
}

// Percent is how far the proposal got toward its target, capped at 100
func (r ProposalResult) Percent() int {
	if r.TargetCost <= 0 {
		return 100
	}
	pct := r.TotalPoints * 100 / r.TargetCost
	if pct > 100 {
		return 100
	}
	return pct
}

type GroupResult struct {
	Group       string
	Proposals   []ProposalResult
	HasAchieved bool
}

// GroupResults builds the result page for one group from the proposals its
// members wrote. Order follows the input slice.
func GroupResults(proposals []models.Proposal, group string) GroupResult {
	res := GroupResult{Group: group}
	if group == "" {
		return res
	}

	for _, p := range proposals {
		if p.AuthorGroup() != group {
			continue
		}
		row := ProposalResult{
			ID:          p.ID,
			Title:       p.Title,
			Author:      p.Author,
			TotalPoints: p.TotalPoints(),
			TargetCost:  p.TargetCost(),
			Achieved:    p.Achieved(),
		}
		if row.Achieved {
			res.HasAchieved = true
		}
		res.Proposals = append(res.Proposals, row)
	}
	return res
}
