package store

import (
	"errors"
	"sync"
	"time"

	"github.com/Austin-SALVATORE/data-visual-water-quality/internal/quality"
)

var (
	// ErrNotFound is returned when no probe result is available.
	ErrNotFound = errors.New("no upstream probe recorded")
)

// MemoryStore is a concurrency-safe, time-ordered history of upstream probes.
type MemoryStore struct {
	mu      sync.RWMutex
	results []quality.ProbeResult

	// retention configuration
	maxHistory int           // max number of results kept
	maxAge     time.Duration // optional max age of results

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory or maxAge is <= 0, that limit is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// SaveProbe appends a result and enforces retention.
func (s *MemoryStore) SaveProbe(result quality.ProbeResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results = append(s.results, result)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(s.results) > s.maxHistory {
		over := len(s.results) - s.maxHistory
		s.results = append([]quality.ProbeResult(nil), s.results[over:]...)
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.results); i++ {
			if !s.results[i].Timestamp.Before(cutoff) {
				break
			}
		}
		if i > 0 {
			s.results = append([]quality.ProbeResult(nil), s.results[i:]...)
		}
	}
}

// LatestProbe returns the most recent result.
func (s *MemoryStore) LatestProbe() (quality.ProbeResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.results) == 0 {
		return quality.ProbeResult{}, ErrNotFound
	}
	return s.results[len(s.results)-1], nil
}

// ProbeRange returns all results between from and to (inclusive).
func (s *MemoryStore) ProbeRange(from, to time.Time) ([]quality.ProbeResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []quality.ProbeResult
	for _, r := range s.results {
		if !r.Timestamp.Before(from) && !r.Timestamp.After(to) {
			result = append(result, r)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}

var _ quality.ProbeStore = (*MemoryStore)(nil)
