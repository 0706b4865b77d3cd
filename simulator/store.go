package simulator

import "sync"

// Store contains the most recent simulation results.
type Store struct {
	// results is ordered from oldest to newest.
	results []*Result
	limit   int

	mu sync.Mutex
}

// NewStore creates a store retaining at most limit results.
func NewStore(limit int) *Store {
	return &Store{
		limit: limit,
	}
}

// Add adds a result, evicting the oldest result if the store is full.
func (s *Store) Add(result *Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results = append(s.results, result)
	if len(s.results) > s.limit {
		s.results = s.results[len(s.results)-s.limit:]
	}
}

// Get returns the result with the given run ID.
func (s *Store) Get(id string) (*Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, result := range s.results {
		if result.ID == id {
			return result, true
		}
	}
	return nil, false
}

// List returns the stored results, from oldest to newest.
func (s *Store) List() []*Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Copy to avoid race conditions when s.results is updated.
	var results []*Result
	results = append(results, s.results...)
	return results
}
