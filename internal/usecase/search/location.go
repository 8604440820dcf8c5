package search

import (
	"net/url"
	"sync"
)

// Location is the URL query string a controller keeps its parameters in.
// The controller is its only writer; readers may observe it at any time.
type Location interface {
	// RawQuery returns the query string without a leading "?".
	RawQuery() string
	// Replace swaps the whole query string for values.
	Replace(values url.Values)
}

// MemoryLocation is a Location held in memory.
type MemoryLocation struct {
	mu  sync.RWMutex
	raw string
}

// NewMemoryLocation creates a location holding raw.
func NewMemoryLocation(raw string) *MemoryLocation {
	return &MemoryLocation{raw: raw}
}

// RawQuery implements Location.
func (l *MemoryLocation) RawQuery() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.raw
}

// Replace implements Location.
func (l *MemoryLocation) Replace(values url.Values) {
	raw := values.Encode()
	l.mu.Lock()
	l.raw = raw
	l.mu.Unlock()
}
