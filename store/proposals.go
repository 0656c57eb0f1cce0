// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/danielhkuo/un-design/models"
)

// ProposalStore keeps proposals in memory in insertion order.
// Readers always get clones.
type ProposalStore struct {
	mu    sync.RWMutex
	items []*models.Proposal
}

func NewProposalStore() *ProposalStore {
	return &ProposalStore{}
}

// Create inserts a new proposal owned by creatorID.
// If the creator already has a proposal with the same title, that proposal
// is returned together with ErrDuplicate and nothing is inserted.
func (s *ProposalStore) Create(f models.ProposalFields, creatorID string) (models.Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.items {
		if p.Title == f.Title && p.CreatorID == creatorID {
			return p.Clone(), ErrDuplicate
		}
	}

	p := &models.Proposal{
		ID:        s.nextID(),
		CreatorID: creatorID,
		Votes:     make(map[string]int),
	}
	p.Apply(f)
	s.items = append(s.items, p)

	return p.Clone(), nil
}

// nextID is one more than the highest ID in use. Caller holds mu.
func (s *ProposalStore) nextID() int {
	maxID := 0
	for _, p := range s.items {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID + 1
}

// List returns every proposal in insertion order
func (s *ProposalStore) List() []models.Proposal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Proposal, 0, len(s.items))
	for _, p := range s.items {
		out = append(out, p.Clone())
	}
	return out
}

// ListByGroup returns the proposals whose author belongs to group, highest
// total cost first. Equal costs keep insertion order.
func (s *ProposalStore) ListByGroup(group string) []models.Proposal {
	var out []models.Proposal
	for _, p := range s.List() {
		if p.AuthorGroup() == group {
			out = append(out, p)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TargetCost() > out[j].TargetCost()
	})
	return out
}

func (s *ProposalStore) Get(id int) (models.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, p := s.find(id)
	if p == nil {
		return models.Proposal{}, fmt.Errorf("proposal %d: %w", id, ErrNotFound)
	}
	return p.Clone(), nil
}

// find locates a proposal by ID. Caller holds mu.
func (s *ProposalStore) find(id int) (int, *models.Proposal) {
	for i, p := range s.items {
		if p.ID == id {
			return i, p
		}
	}
	return -1, nil
}

// Update overwrites the editable fields of a proposal.
// Only an admin or the proposal's creator may do this.
func (s *ProposalStore) Update(id int, f models.ProposalFields, actor models.Identity) (models.Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, p := s.find(id)
	if p == nil {
		return models.Proposal{}, fmt.Errorf("proposal %d: %w", id, ErrNotFound)
	}
	if !actor.CanModify(p.CreatorID) {
		return models.Proposal{}, fmt.Errorf("update proposal %d: %w", id, ErrPermissionDenied)
	}

	p.Apply(f)
	return p.Clone(), nil
}

// Delete removes a proposal and its ledger, same permission rule as Update
func (s *ProposalStore) Delete(id int, actor models.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, p := s.find(id)
	if p == nil {
		return fmt.Errorf("proposal %d: %w", id, ErrNotFound)
	}
	if !actor.CanModify(p.CreatorID) {
		return fmt.Errorf("delete proposal %d: %w", id, ErrPermissionDenied)
	}

	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

// RecordVotes writes one ledger entry per proposal ID for voterID and
// returns how many were written. Unknown IDs, non-positive points and the
// voter's own proposals are skipped.
func (s *ProposalStore) RecordVotes(voterID string, points map[int]int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	written := 0
	for id, pts := range points {
		if pts <= 0 {
			continue
		}
		_, p := s.find(id)
		if p == nil || p.CreatorID == voterID {
			continue
		}
		p.Votes[voterID] = pts
		written++
	}
	return written
}

// Len returns the number of stored proposals
func (s *ProposalStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
