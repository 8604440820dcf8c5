// Package search hosts the search state controller: it owns the
// query/sort/page tuple of one search session, keeps it in a URL query
// string, drives backend fetches and exposes loading and result state.
package search

import "errors"

// Sentinel errors for search operations.
var (
	// ErrBlankQuery is returned by SetQuery for an empty or whitespace-only query.
	// State is left untouched.
	ErrBlankQuery = errors.New("search: query is blank")

	// ErrClosed is returned by commands issued after Close.
	ErrClosed = errors.New("search: controller closed")

	// ErrSessionNotFound is returned for unknown or expired session ids.
	ErrSessionNotFound = errors.New("search: session not found")

	// ErrUnsupportedResource is returned when no controller can be built for a resource.
	ErrUnsupportedResource = errors.New("search: unsupported resource")
)
