package models

import (
	"strconv"
	"time"

	"github.com/danielhkuo/un-design/groups"
)

// Report status constants
const (
	StatusUnread   = "unread"
	StatusArchived = "archived"
)

// AdminVoterID is the voter ID carried by an admin session
const AdminVoterID = "ADMIN"

// Identity is who is making a request, established at login
type Identity struct {
	VoterID string `json:"voter_id"`
	IsAdmin bool   `json:"is_admin"`
	Group   string `json:"group,omitempty"` // "" when the ID has no group
}

// CanModify reports whether the identity may edit or delete a proposal
// created by creatorID.
func (id Identity) CanModify(creatorID string) bool {
	return id.IsAdmin || (id.VoterID != "" && id.VoterID == creatorID)
}

// Form types

// ProposalFields are the editable proposal fields as submitted by a form.
// Every field is optional; costs are normalized with NormalizeCost.
type ProposalFields struct {
	Title    string
	Author   string
	Target   string
	Category string
	Problem  string
	Details  string
	Effect   string
	Cost1    string
	Cost2    string
	Cost3    string
}

// NormalizeCost parses a cost field, defaulting to 0 when it is not an
// integer and clamping negatives to 0.
func NormalizeCost(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Domain types

type Proposal struct {
	ID        int            `json:"id"`
	Title     string         `json:"title"`
	Author    string         `json:"author"`
	Target    string         `json:"target"`
	Category  string         `json:"category"`
	Problem   string         `json:"problem"`
	Details   string         `json:"details"`
	Effect    string         `json:"effect"`
	Cost1     int            `json:"cost_1"` // design and development
	Cost2     int            `json:"cost_2"` // operation and upkeep
	Cost3     int            `json:"cost_3"` // mental and physical
	CreatorID string         `json:"creator_id"`
	Votes     map[string]int `json:"votes"` // voter ID -> points
}

// Apply overwrites every editable field from the submitted form
func (p *Proposal) Apply(f ProposalFields) {
	p.Title = f.Title
	p.Author = f.Author
	p.Target = f.Target
	p.Category = f.Category
	p.Problem = f.Problem
	p.Details = f.Details
	p.Effect = f.Effect
	p.Cost1 = NormalizeCost(f.Cost1)
	p.Cost2 = NormalizeCost(f.Cost2)
	p.Cost3 = NormalizeCost(f.Cost3)
}

// TargetCost is the number of points the proposal needs to be achieved
func (p Proposal) TargetCost() int {
	return p.Cost1 + p.Cost2 + p.Cost3
}

// TotalPoints sums the ledger, ignoring any entry keyed by the creator.
func (p Proposal) TotalPoints() int {
	total := 0
	for voterID, points := range p.Votes {
		if voterID == p.CreatorID {
			continue
		}
		total += points
	}
	return total
}

// Achieved reports whether the qualifying votes reach the target cost
func (p Proposal) Achieved() bool {
	return p.TotalPoints() >= p.TargetCost()
}

// AuthorGroup is the group of the proposal's creator, "" if none
func (p Proposal) AuthorGroup() string {
	return groups.Resolve(p.CreatorID)
}

// Clone returns a copy that shares no state with p
func (p Proposal) Clone() Proposal {
	votes := make(map[string]int, len(p.Votes))
	for k, v := range p.Votes {
		votes[k] = v
	}
	p.Votes = votes
	return p
}

type Report struct {
	ID      int    `json:"id"`
	Type    string `json:"type"`
	Env     string `json:"env"`
	Details string `json:"details"`
	Status  string `json:"status"`
}

// Aggregation types

type AchievementStatus struct {
	Achieved    int `json:"achieved"`
	NotAchieved int `json:"not_achieved"`
}

type ReportCounts struct {
	Unread   int `json:"unread"`
	Archived int `json:"archived"`
}

// Dashboard is the admin view of the aggregated results
type Dashboard struct {
	CountsByGroup    map[string]int    `json:"counts_by_group"`
	CountsByCategory map[string]int    `json:"counts_by_category"`
	VotesByGroup     map[string]int    `json:"votes_by_group"`
	Achievement      AchievementStatus `json:"achievement"`
	Reports          ReportCounts      `json:"reports"`
}

// ResultSnapshot is a persisted copy of the results at one point in time
type ResultSnapshot struct {
	ID         string     `json:"id"`
	ComputedAt time.Time  `json:"computed_at"`
	Dashboard  Dashboard  `json:"dashboard"`
	Proposals  []Proposal `json:"proposals"`
}

// SnapshotSummary is a snapshot listing entry without the payload
type SnapshotSummary struct {
	ID            string    `json:"id"`
	ComputedAt    time.Time `json:"computed_at"`
	ProposalCount int       `json:"proposal_count"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
