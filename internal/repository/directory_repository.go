package repository

import (
	"context"

	"provider-directory/internal/common/pagination"
	"provider-directory/internal/domain/entity"
)

// Searcher runs one paginated directory search.
//
// Implementations key their work by params.Key(): identical tuples in flight
// at the same time share one backend call. A transport or HTTP failure is
// returned as an error; an empty query is not special-cased here.
type Searcher[T any] interface {
	Search(ctx context.Context, params pagination.Params) (*entity.Collection[T], error)
}

// CachedSearcher exposes completed results by parameter tuple.
// ok is false when no fresh result is held for params.
type CachedSearcher[T any] interface {
	Searcher[T]
	Cached(params pagination.Params) (c *entity.Collection[T], ok bool)
}

// Getter looks up a single record. A missing record yields entity.ErrNotFound.
type Getter[T any] interface {
	Get(ctx context.Context, id string) (*T, error)
}

// ResourceRepository is the read surface for one resource type.
type ResourceRepository[T any] interface {
	Searcher[T]
	Getter[T]
}

// SettingsRepository reads the backend's frontend settings.
type SettingsRepository interface {
	FrontendSettings(ctx context.Context) (*entity.FrontendSettings, error)
}

// SearcherFunc adapts a function to Searcher.
type SearcherFunc[T any] func(ctx context.Context, params pagination.Params) (*entity.Collection[T], error)

// Search implements Searcher.
func (f SearcherFunc[T]) Search(ctx context.Context, params pagination.Params) (*entity.Collection[T], error) {
	return f(ctx, params)
}
