package pagination

// URL query-string keys recognized by the codec.
const (
	KeyPage     = "page"
	KeyPageSize = "page_size"
	KeyQuery    = "query"
	KeySort     = "sort"
)

// Params is the user-controllable search state carried in the URL.
//
// Query and Sort are optional: nil means the key is absent from the URL,
// which is distinct from a present-but-empty value.
type Params struct {
	Page     int     // 1-based page number, never less than 1 once decoded
	PageSize int     // Items per page
	Query    *string // Last submitted query; nil until a search is performed
	Sort     *string // Sort registry key; nil means the resource default
}

// Key is the comparable identity of a Params value. It is used to key
// backend fetches and to detect superseded responses.
type Key struct {
	Page     int
	PageSize int
	Query    string
	HasQuery bool
	Sort     string
	HasSort  bool
}

// Opt returns a pointer to s, for building optional Params fields.
func Opt(s string) *string {
	return &s
}

// Key returns the comparable identity of p.
func (p Params) Key() Key {
	k := Key{Page: p.Page, PageSize: p.PageSize}
	if p.Query != nil {
		k.Query, k.HasQuery = *p.Query, true
	}
	if p.Sort != nil {
		k.Sort, k.HasSort = *p.Sort, true
	}
	return k
}

// Equal reports whether p and o describe the same parameter tuple.
func (p Params) Equal(o Params) bool {
	return p.Key() == o.Key()
}

// HasQuery reports whether a non-empty query is present. Searches are only
// issued when this is true.
func (p Params) HasQuery() bool {
	return p.Query != nil && *p.Query != ""
}

// QueryValue returns the query or "" when absent.
func (p Params) QueryValue() string {
	if p.Query == nil {
		return ""
	}
	return *p.Query
}

// SortValue returns the sort key or "" when absent.
func (p Params) SortValue() string {
	if p.Sort == nil {
		return ""
	}
	return *p.Sort
}

// Clone returns a copy of p that shares no pointers with it.
func (p Params) Clone() Params {
	out := Params{Page: p.Page, PageSize: p.PageSize}
	if p.Query != nil {
		out.Query = Opt(*p.Query)
	}
	if p.Sort != nil {
		out.Sort = Opt(*p.Sort)
	}
	return out
}
