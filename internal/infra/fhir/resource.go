package fhir

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"provider-directory/internal/common/pagination"
	"provider-directory/internal/common/sorting"
	"provider-directory/internal/domain/entity"
	"provider-directory/internal/repository"
)

// Backend query parameter names.
const (
	paramIdentifier = "identifier"
	paramName       = "name"
	paramSort       = "_sort"
)

var digitsOnly = regexp.MustCompile(`^\d+$`)

// ResourceAPI searches and looks up one FHIR resource type.
type ResourceAPI[T any] struct {
	client   *Client
	resource entity.ResourceType
	sorts    *sorting.Registry
	pageCfg  pagination.Config
	cache    *QueryCache[T]
}

var (
	_ repository.CachedSearcher[entity.Organization]     = (*ResourceAPI[entity.Organization])(nil)
	_ repository.ResourceRepository[entity.Organization] = (*ResourceAPI[entity.Organization])(nil)
	_ repository.ResourceRepository[entity.Practitioner] = (*ResourceAPI[entity.Practitioner])(nil)
)

// NewResourceAPI creates an adapter for resource. Results are cached for cacheTTL.
func NewResourceAPI[T any](
	client *Client,
	resource entity.ResourceType,
	sorts *sorting.Registry,
	pageCfg pagination.Config,
	cacheTTL time.Duration,
) *ResourceAPI[T] {
	return &ResourceAPI[T]{
		client:   client,
		resource: resource,
		sorts:    sorts,
		pageCfg:  pageCfg,
		cache:    NewQueryCache[T](cacheTTL, 0),
	}
}

// NewOrganizationAPI creates the Organization adapter.
func NewOrganizationAPI(client *Client, pageCfg pagination.Config, cacheTTL time.Duration) *ResourceAPI[entity.Organization] {
	return NewResourceAPI[entity.Organization](client, entity.ResourceOrganization, sorting.Organization, pageCfg, cacheTTL)
}

// NewPractitionerAPI creates the Practitioner adapter.
func NewPractitionerAPI(client *Client, pageCfg pagination.Config, cacheTTL time.Duration) *ResourceAPI[entity.Practitioner] {
	return NewResourceAPI[entity.Practitioner](client, entity.ResourcePractitioner, sorting.Practitioner, pageCfg, cacheTTL)
}

// Resource returns the resource type served.
func (a *ResourceAPI[T]) Resource() entity.ResourceType {
	return a.resource
}

// Sorts returns the sort registry for the resource.
func (a *ResourceAPI[T]) Sorts() *sorting.Registry {
	return a.sorts
}

// Search returns one page of results for params.
func (a *ResourceAPI[T]) Search(ctx context.Context, params pagination.Params) (*entity.Collection[T], error) {
	return a.cache.Do(ctx, params.Key(), func(ctx context.Context) (*entity.Collection[T], error) {
		var out entity.Collection[T]
		err := a.client.getJSON(ctx, string(a.resource), a.searchPath(), nil, a.SearchValues(params), &out)
		if err != nil {
			return nil, err
		}
		return &out, nil
	})
}

// Cached returns a fresh result for params without contacting the backend.
func (a *ResourceAPI[T]) Cached(params pagination.Params) (*entity.Collection[T], bool) {
	return a.cache.Get(params.Key())
}

// Get looks up a record by id. A 404 yields an error matching ErrNotFound.
func (a *ResourceAPI[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := entity.ValidateResourceID(id); err != nil {
		return nil, err
	}
	var out T
	err := a.client.getJSON(ctx, string(a.resource), a.searchPath()+":id/", map[string]string{"id": id}, nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchValues builds the backend query for params.
//
// A query made only of digits is sent as identifier, anything else as name.
// The sort key is translated to its backend value; unknown keys are dropped.
// page_size is capped at the configured maximum.
func (a *ResourceAPI[T]) SearchValues(params pagination.Params) url.Values {
	p := params.Bounded(a.pageCfg)

	values := url.Values{}
	values.Set(pagination.KeyPage, strconv.Itoa(p.Page))
	values.Set(pagination.KeyPageSize, strconv.Itoa(p.PageSize))

	if q := p.QueryValue(); q != "" {
		values.Set(detectQueryKey(q), q)
	}
	if s := p.SortValue(); s != "" {
		if backend, ok := a.sorts.BackendValue(s); ok {
			values.Set(paramSort, backend)
		}
	}
	return values
}

func (a *ResourceAPI[T]) searchPath() string {
	return "/fhir/" + string(a.resource) + "/"
}

func detectQueryKey(q string) string {
	if digitsOnly.MatchString(q) {
		return paramIdentifier
	}
	return paramName
}
