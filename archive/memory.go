// SPDX-License-Identifier: MIT

package archive

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/ZhengKeli/OpticalInterpretation/report"
)

// MemoryStore keeps encoded reports in process memory.
type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	payloads    map[string][]byte
	summaries   map[string]Summary
}

// NewMemoryStore returns an empty store. Call Init before use.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Init resets the store to empty.
func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.payloads = make(map[string][]byte)
	s.summaries = make(map[string]Summary)

	return nil
}

// SaveReport stores an encoded copy, so later changes to r are not visible.
func (s *MemoryStore) SaveReport(_ context.Context, r *report.Report) error {
	if r == nil || r.RunID == "" {
		return archiveErrorf("MemoryStore.SaveReport", ErrNilReport)
	}
	payload, err := EncodeReport(r)
	if err != nil {
		return archiveErrorf("MemoryStore.SaveReport", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return archiveErrorf("MemoryStore.SaveReport", ErrNotInitialized)
	}
	s.payloads[r.RunID] = payload
	s.summaries[r.RunID] = Summarize(r)

	return nil
}

// GetReport decodes the stored copy of runID. ok is false when it is unknown.
func (s *MemoryStore) GetReport(_ context.Context, runID string) (*report.Report, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, false, archiveErrorf("MemoryStore.GetReport", ErrNotInitialized)
	}
	payload, ok := s.payloads[runID]
	if !ok {
		return nil, false, nil
	}
	r, err := DecodeReport(payload)
	if err != nil {
		return nil, false, archiveErrorf("MemoryStore.GetReport", fmt.Errorf("decode %s: %w", runID, err))
	}

	return r, true, nil
}

// ListReports returns summaries ordered by creation time, then run id.
func (s *MemoryStore) ListReports(_ context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, archiveErrorf("MemoryStore.ListReports", ErrNotInitialized)
	}
	out := make([]Summary, 0, len(s.summaries))
	for _, sum := range s.summaries {
		out = append(out, sum)
	}
	slices.SortFunc(out, less)

	return out, nil
}
