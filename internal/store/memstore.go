package store

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"stratagem/pkg/planner"
)

// MemStore implements Store in memory. Used by tests and by the MCP server
// when no database path is configured.
type MemStore struct {
	mu      sync.RWMutex
	byID    map[string]*PlanRecord
	byCase  map[string][]*PlanRecord
	domains map[string]string
	updated map[string]string
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		byID:    make(map[string]*PlanRecord),
		byCase:  make(map[string][]*PlanRecord),
		domains: make(map[string]string),
		updated: make(map[string]string),
	}
}

func (s *MemStore) SavePlan(seq *planner.MoveSequence) (*PlanRecord, error) {
	if seq == nil {
		return nil, errors.New("plan is nil")
	}
	if seq.CaseID == "" {
		return nil, errors.New("plan has no case id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := nowUTC()
	rec := &PlanRecord{
		ID:        uuid.NewString(),
		CaseID:    seq.CaseID,
		Version:   len(s.byCase[seq.CaseID]) + 1,
		CreatedAt: now,
		Plan:      seq,
	}
	s.byID[rec.ID] = rec
	s.byCase[rec.CaseID] = append(s.byCase[rec.CaseID], rec)
	s.domains[rec.CaseID] = string(seq.Domain)
	s.updated[rec.CaseID] = now
	return rec, nil
}

func (s *MemStore) GetPlan(id string) (*PlanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id], nil
}

func (s *MemStore) LatestPlan(caseID string) (*PlanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := s.byCase[caseID]
	if len(recs) == 0 {
		return nil, nil
	}
	return recs[len(recs)-1], nil
}

func (s *MemStore) ListPlans(caseID string) ([]*PlanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := s.byCase[caseID]
	out := make([]*PlanRecord, len(recs))
	copy(out, recs)
	return out, nil
}

func (s *MemStore) ListCases() ([]*CaseSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []*CaseSummary
	for caseID, recs := range s.byCase {
		list = append(list, &CaseSummary{
			CaseID:        caseID,
			Domain:        s.domains[caseID],
			PlanCount:     len(recs),
			LatestVersion: len(recs),
			UpdatedAt:     s.updated[caseID],
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CaseID < list[j].CaseID })
	return list, nil
}

func (s *MemStore) Close() error { return nil }
