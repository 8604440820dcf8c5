package pagination

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// maxRecordIndex bounds page*page_size so record offsets fit in an int on
// every platform.
const maxRecordIndex = math.MaxInt32

// Codec converts between URL query strings and Params.
//
// Decoding never fails: malformed page values are silently replaced by the
// configured defaults. Encoding is a full replacement, not a merge: keys that
// are absent from both the base params and the overrides are left out of the
// output, so callers must carry forward anything they want to keep.
type Codec struct {
	cfg Config
}

// Overrides replaces individual keys during Encode. A nil field leaves the
// base value in place.
type Overrides struct {
	Page     *int
	PageSize *int
	Query    *string
	Sort     *string
}

// NewCodec creates a codec that applies the defaults in cfg.
func NewCodec(cfg Config) Codec {
	return Codec{cfg: cfg}
}

// Config returns the configuration the codec was built with.
func (c Codec) Config() Config {
	return c.cfg
}

// Decode parses a raw query string such as "page=2&query=acme". A leading
// "?" is accepted. Unrecognized keys are ignored.
func (c Codec) Decode(raw string) Params {
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		// ParseQuery keeps every pair it could read; a bad escape only drops
		// the offending pair, which the defaults below cover.
		recordCoercion("query_string")
	}
	return c.DecodeValues(values)
}

// DecodeValues is Decode for already-parsed values.
func (c Codec) DecodeValues(values url.Values) Params {
	p := Params{
		Page:     c.positiveInt(values, KeyPage, c.cfg.DefaultPage),
		PageSize: c.positiveInt(values, KeyPageSize, c.cfg.DefaultPageSize),
	}
	if p.PageSize > maxRecordIndex {
		recordCoercion(KeyPageSize)
		p.PageSize = c.cfg.DefaultPageSize
	}
	if p.PageSize > 0 && p.Page-1 > maxRecordIndex/p.PageSize {
		recordCoercion(KeyPage)
		p.Page = c.cfg.DefaultPage
	}
	if v, ok := lookup(values, KeyQuery); ok {
		p.Query = Opt(v)
	}
	if v, ok := lookup(values, KeySort); ok {
		p.Sort = Opt(v)
	}
	return p
}

// Encode serializes p with o applied on top. page is always written,
// page_size only when it differs from the configured default, query and
// sort only when present.
func (c Codec) Encode(p Params, o Overrides) url.Values {
	next := p.Clone()
	if o.Page != nil {
		next.Page = *o.Page
	}
	if o.PageSize != nil {
		next.PageSize = *o.PageSize
	}
	if o.Query != nil {
		next.Query = Opt(*o.Query)
	}
	if o.Sort != nil {
		next.Sort = Opt(*o.Sort)
	}

	values := url.Values{}
	if next.Page > 0 {
		values.Set(KeyPage, strconv.Itoa(next.Page))
	}
	if next.PageSize > 0 && next.PageSize != c.cfg.DefaultPageSize {
		values.Set(KeyPageSize, strconv.Itoa(next.PageSize))
	}
	if next.Query != nil {
		values.Set(KeyQuery, *next.Query)
	}
	if next.Sort != nil {
		values.Set(KeySort, *next.Sort)
	}
	return values
}

// EncodeString is Encode rendered as a query string without the leading "?".
func (c Codec) EncodeString(p Params, o Overrides) string {
	return c.Encode(p, o).Encode()
}

// ParseQueryParams decodes the pagination and search parameters of r.
func ParseQueryParams(r *http.Request, cfg Config) Params {
	return NewCodec(cfg).DecodeValues(r.URL.Query())
}

func (c Codec) positiveInt(values url.Values, key string, fallback int) int {
	raw, ok := lookup(values, key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		recordCoercion(key)
		return fallback
	}
	return n
}

func lookup(values url.Values, key string) (string, bool) {
	vs, ok := values[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}
