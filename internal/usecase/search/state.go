package search

import (
	"provider-directory/internal/common/pagination"
	"provider-directory/internal/common/sorting"
	"provider-directory/internal/domain/entity"
)

// State is an immutable snapshot of a controller.
type State[T any] struct {
	Resource entity.ResourceType

	// Location is the encoded URL query string the state was derived from.
	Location string
	Params   pagination.Params

	// Query is the last submitted query, as carried in the URL.
	Query string
	// LiveQuery is the query the controller falls back to when paging
	// without a query in the URL.
	LiveQuery string
	// Sort is the effective sort key: the URL's when registered, else the default.
	Sort string

	Results    Results[T]
	Collection *entity.Collection[T]

	IsLoading           bool
	IsBackgroundLoading bool
	Error               string

	// Pagination is memoized: unchanged inputs yield the same pointer.
	Pagination  *pagination.State
	SortOptions []sorting.Option

	// Version increases with every published change.
	Version uint64
}

// Status returns the result tag.
func (s *State[T]) Status() Status {
	return s.Results.Status()
}

// Caption returns the "Showing a - b of n" line for the visible page.
func (s *State[T]) Caption() string {
	return s.Pagination.Caption()
}

// Settled reports whether no fetch for the current parameters is in flight.
func (s *State[T]) Settled() bool {
	return !s.IsLoading
}
