package store

import (
	"sync"
	"time"

	"leadpulse/internal/models"
)

// LeadStore keeps the normalized lead set for the current run in memory.
// Records are append-only and deduplicated per lead key, so re-running the
// same ingest is idempotent.
type LeadStore struct {
	mu      sync.RWMutex
	records []models.LeadRecord
	seen    map[string]struct{}
	skipped int
}

func NewLeadStore() *LeadStore {
	return &LeadStore{seen: make(map[string]struct{})}
}

// Add stores a record unless its key was already seen. Returns false on a
// duplicate.
func (s *LeadStore) Add(r models.LeadRecord) bool {
	k := key(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[k]; ok {
		return false
	}
	s.seen[k] = struct{}{}
	s.records = append(s.records, r)
	return true
}

// AddSkipped counts rows that failed normalization.
func (s *LeadStore) AddSkipped(n int) {
	s.mu.Lock()
	s.skipped += n
	s.mu.Unlock()
}

// All returns a copy of the stored records in insertion order.
func (s *LeadStore) All() []models.LeadRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.LeadRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *LeadStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *LeadStore) Skipped() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.skipped
}

// Reset drops all records and counters, for a fresh ingest of a new source.
func (s *LeadStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.seen = make(map[string]struct{})
	s.skipped = 0
}

// key prefers the lead id; rows without one fall back to a composite of the
// fields that identify the lead well enough for idempotent re-ingest.
func key(r models.LeadRecord) string {
	if r.ID != "" {
		return "lead|" + r.ID
	}
	return "lead|" + r.CreatedAt.Format(time.RFC3339) + "|" + r.Channel + "|" + r.Region
}
