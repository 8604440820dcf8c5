// Package directory serves one-shot listings and record detail lookups.
// Listings run a throwaway search controller per request, so the
// response is always a settled state with no background flags.
package directory

import (
	"net/http"

	"provider-directory/internal/common/pagination"
	"provider-directory/internal/domain/entity"
	"provider-directory/internal/repository"
	searchUC "provider-directory/internal/usecase/search"
)

// Register registers the listing and detail routes of one resource.
// pageCfg must match the codec behind factory.
// detailsAvailable reports whether detail fields may be shown; nil shows them.
func Register[T any](
	mux *http.ServeMux,
	resource entity.ResourceType,
	factory searchUC.Factory,
	pageCfg pagination.Config,
	records repository.Getter[T],
	detailsAvailable func(entity.ResourceType) bool,
) {
	collection := "/" + resource.Collection()
	mux.Handle("GET    "+collection, ListHandler{
		Resource:   resource,
		Pagination: pageCfg,
		Factory:    factory,
	})
	mux.Handle("GET    "+collection+"/{id}", GetHandler[T]{
		Resource:         resource,
		Records:          records,
		DetailsAvailable: detailsAvailable,
	})
}
