// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"fmt"
	"sync"

	"github.com/danielhkuo/un-design/models"
)

// ReportStore keeps feedback reports in memory. Reports are never deleted.
type ReportStore struct {
	mu    sync.RWMutex
	items []models.Report
}

func NewReportStore() *ReportStore {
	return &ReportStore{}
}

// Create stores a new unread report
func (s *ReportStore) Create(reportType, env, details string) models.Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	maxID := 0
	for _, r := range s.items {
		if r.ID > maxID {
			maxID = r.ID
		}
	}

	r := models.Report{
		ID:      maxID + 1,
		Type:    reportType,
		Env:     env,
		Details: details,
		Status:  models.StatusUnread,
	}
	s.items = append(s.items, r)
	return r
}

func (s *ReportStore) List() []models.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Report, len(s.items))
	copy(out, s.items)
	return out
}

// Archive marks a report as archived. Archived reports stay archived.
func (s *ReportStore) Archive(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Status = models.StatusArchived
			return nil
		}
	}
	return fmt.Errorf("report %d: %w", id, ErrNotFound)
}
