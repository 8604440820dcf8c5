package entity

// Collection is one page of search results as returned by the backend.
//
// Count is the grand total across all pages. Results.Total is the number of
// records present in this page.
type Collection[T any] struct {
	Count    int       `json:"count"`
	Next     *string   `json:"next"`
	Previous *string   `json:"previous"`
	Results  Bundle[T] `json:"results"`
}

// Bundle is the FHIR searchset wrapping the page's entries.
type Bundle[T any] struct {
	ResourceType string     `json:"resourceType"`
	Type         string     `json:"type"`
	Total        int        `json:"total"`
	Entry        []Entry[T] `json:"entry"`
}

// Entry wraps a single resource in a bundle.
type Entry[T any] struct {
	FullURL  string `json:"fullUrl,omitempty"`
	Resource T      `json:"resource"`
}

// CurrentPageItemCount returns the number of records on this page.
func (c *Collection[T]) CurrentPageItemCount() int {
	return c.Results.Total
}

// Resources returns the records on this page in backend order.
// The result is never nil, so an empty page is distinguishable from
// "nothing fetched".
func (c *Collection[T]) Resources() []T {
	out := make([]T, 0, len(c.Results.Entry))
	for _, e := range c.Results.Entry {
		out = append(out, e.Resource)
	}
	return out
}
