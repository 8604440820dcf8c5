package pagination

import "sync"

// Memo caches the last Compute result. Repeated calls with an equal params
// tuple and an equal summary return the same *State, so callers can detect
// "nothing changed" with a pointer comparison.
type Memo struct {
	mu         sync.Mutex
	key        Key
	summary    Summary
	hasSummary bool
	last       *State
}

// Compute returns the memoized pagination state for p and s.
func (m *Memo) Compute(p Params, s *Summary) *State {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := p.Key()
	hasSummary := s != nil
	if m.last != nil && m.key == key && m.hasSummary == hasSummary &&
		(!hasSummary || m.summary == *s) {
		return m.last
	}

	st := Compute(p, s)
	m.key = key
	m.hasSummary = hasSummary
	if hasSummary {
		m.summary = *s
	}
	m.last = &st
	return m.last
}
