package search

import "encoding/json"

// Status tags what the view should render for the result area.
type Status string

const (
	// StatusNotSearched means no search has produced results yet.
	StatusNotSearched Status = "not_searched"
	// StatusEmpty means the last search matched nothing.
	StatusEmpty Status = "empty"
	// StatusLoaded means the last search returned records.
	StatusLoaded Status = "loaded"
)

// Results is either the "no search yet" sentinel or a (possibly empty)
// ordered list of records. The zero value is the sentinel.
type Results[T any] struct {
	searched bool
	items    []T
}

// NotSearched returns the sentinel.
func NotSearched[T any]() Results[T] {
	return Results[T]{}
}

// Loaded wraps a fetched page. A nil slice is treated as empty, not as the sentinel.
func Loaded[T any](items []T) Results[T] {
	if items == nil {
		items = []T{}
	}
	return Results[T]{searched: true, items: items}
}

// Status returns the result tag.
func (r Results[T]) Status() Status {
	switch {
	case !r.searched:
		return StatusNotSearched
	case len(r.items) == 0:
		return StatusEmpty
	default:
		return StatusLoaded
	}
}

// Items returns the records and whether a search has produced them.
func (r Results[T]) Items() ([]T, bool) {
	return r.items, r.searched
}

// MarshalJSON encodes the sentinel as null and results as an array.
func (r Results[T]) MarshalJSON() ([]byte, error) {
	if !r.searched {
		return []byte("null"), nil
	}
	return json.Marshal(r.items)
}
