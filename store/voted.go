// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import "sync"

// VotedSet records every voter ID that has submitted a vote.
// It outlives sessions and is only cleared by a restart.
type VotedSet struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

func NewVotedSet() *VotedSet {
	return &VotedSet{ids: make(map[string]struct{})}
}

func (v *VotedSet) Has(voterID string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	_, ok := v.ids[voterID]
	return ok
}

func (v *VotedSet) Add(voterID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ids[voterID] = struct{}{}
}

func (v *VotedSet) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.ids)
}
