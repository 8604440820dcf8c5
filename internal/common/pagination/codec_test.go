package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"provider-directory/internal/common/pagination"
)

func TestCodec_Decode(t *testing.T) {
	t.Parallel()

	codec := pagination.NewCodec(pagination.DefaultConfig())

	tests := []struct {
		name  string
		query string
		want  pagination.Params
	}{
		{
			name:  "empty query string uses defaults",
			query: "",
			want:  pagination.Params{Page: 1, PageSize: 10},
		},
		{
			name:  "all keys present",
			query: "page=2&page_size=25&query=acme&sort=name-desc",
			want: pagination.Params{
				Page: 2, PageSize: 25,
				Query: pagination.Opt("acme"), Sort: pagination.Opt("name-desc"),
			},
		},
		{
			name:  "leading question mark",
			query: "?page=3",
			want:  pagination.Params{Page: 3, PageSize: 10},
		},
		{
			name:  "non-numeric page",
			query: "page=abc",
			want:  pagination.Params{Page: 1, PageSize: 10},
		},
		{
			name:  "zero page",
			query: "page=0",
			want:  pagination.Params{Page: 1, PageSize: 10},
		},
		{
			name:  "negative page",
			query: "page=-5",
			want:  pagination.Params{Page: 1, PageSize: 10},
		},
		{
			name:  "invalid page size",
			query: "page_size=xyz",
			want:  pagination.Params{Page: 1, PageSize: 10},
		},
		{
			name:  "empty query is present, not absent",
			query: "query=",
			want:  pagination.Params{Page: 1, PageSize: 10, Query: pagination.Opt("")},
		},
		{
			name:  "query passed through verbatim",
			query: "query=St.%20Mary%27s%20%26%20Co",
			want:  pagination.Params{Page: 1, PageSize: 10, Query: pagination.Opt("St. Mary's & Co")},
		},
		{
			name:  "unknown keys ignored",
			query: "page=4&utm_source=mail&foo=bar",
			want:  pagination.Params{Page: 4, PageSize: 10},
		},
		{
			name:  "page whose offset overflows",
			query: "page=1000000000000000000&query=a",
			want:  pagination.Params{Page: 1, PageSize: 10, Query: pagination.Opt("a")},
		},
		{
			name:  "page beyond record index for page size",
			query: "page=300000000&page_size=100",
			want:  pagination.Params{Page: 1, PageSize: 100},
		},
		{
			name:  "huge page size",
			query: "page=2&page_size=9223372036854775807",
			want:  pagination.Params{Page: 2, PageSize: 10},
		},
		{
			name:  "first value wins on repeated keys",
			query: "page=2&page=7",
			want:  pagination.Params{Page: 2, PageSize: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := codec.Decode(tt.query)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Decode(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestCodec_Encode(t *testing.T) {
	t.Parallel()

	codec := pagination.NewCodec(pagination.DefaultConfig())
	page := func(n int) *int { return &n }

	tests := []struct {
		name      string
		params    pagination.Params
		overrides pagination.Overrides
		want      string
	}{
		{
			name:   "defaults only write page",
			params: pagination.Params{Page: 1, PageSize: 10},
			want:   "page=1",
		},
		{
			name:   "non-default page size is kept",
			params: pagination.Params{Page: 1, PageSize: 50},
			want:   "page=1&page_size=50",
		},
		{
			name:      "page override preserves query and sort",
			params:    pagination.Params{Page: 1, PageSize: 10, Query: pagination.Opt("acme"), Sort: pagination.Opt("name-asc")},
			overrides: pagination.Overrides{Page: page(3)},
			want:      "page=3&query=acme&sort=name-asc",
		},
		{
			name:      "sort override",
			params:    pagination.Params{Page: 5, PageSize: 10, Query: pagination.Opt("acme")},
			overrides: pagination.Overrides{Page: page(1), Sort: pagination.Opt("name-desc")},
			want:      "page=1&query=acme&sort=name-desc",
		},
		{
			name:      "keys absent everywhere are omitted",
			params:    pagination.Params{Page: 2, PageSize: 10},
			overrides: pagination.Overrides{Query: pagination.Opt("1234567890")},
			want:      "page=2&query=1234567890",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := codec.EncodeString(tt.params, tt.overrides)
			if got != tt.want {
				t.Errorf("EncodeString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCodec_Encode_DoesNotMutateBase(t *testing.T) {
	t.Parallel()

	codec := pagination.NewCodec(pagination.DefaultConfig())
	base := pagination.Params{Page: 1, PageSize: 10, Query: pagination.Opt("acme")}

	_ = codec.Encode(base, pagination.Overrides{Query: pagination.Opt("other")})

	if base.QueryValue() != "acme" {
		t.Errorf("base query = %q, want %q", base.QueryValue(), "acme")
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	codec := pagination.NewCodec(pagination.DefaultConfig())

	for _, p := range []pagination.Params{
		{Page: 1, PageSize: 10, Query: pagination.Opt("acme"), Sort: pagination.Opt("name-asc")},
		{Page: 7, PageSize: 25, Query: pagination.Opt("1234567890"), Sort: pagination.Opt("name-desc")},
		{Page: 3, PageSize: 10, Query: pagination.Opt("a&b=c"), Sort: pagination.Opt("")},
		{Page: 100, PageSize: 1, Query: pagination.Opt("space separated words"), Sort: pagination.Opt("x")},
	} {
		got := codec.Decode(codec.EncodeString(p, pagination.Overrides{}))
		if diff := cmp.Diff(p, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestCodec_Decode_HugePageKeepsCaptionPositive(t *testing.T) {
	t.Parallel()

	p := pagination.NewCodec(pagination.DefaultConfig()).Decode("page=1000000000000000000&query=a")
	got := pagination.Compute(p, &pagination.Summary{Count: 5, PageItemCount: 5}).Caption()

	if want := "Showing 1 - 5 of 5"; got != want {
		t.Errorf("Caption() = %q, want %q", got, want)
	}
}

func TestParseQueryParams(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/organizations?page=2&query=acme", nil)
	got := pagination.ParseQueryParams(req, pagination.DefaultConfig())

	want := pagination.Params{Page: 2, PageSize: 10, Query: pagination.Opt("acme")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseQueryParams() mismatch (-want +got):\n%s", diff)
	}
}

func TestParams_Key(t *testing.T) {
	t.Parallel()

	absent := pagination.Params{Page: 1, PageSize: 10}
	empty := pagination.Params{Page: 1, PageSize: 10, Query: pagination.Opt("")}

	if absent.Equal(empty) {
		t.Error("absent query and empty query must have different keys")
	}
	if empty.HasQuery() {
		t.Error("empty query must not count as a search")
	}
	if !absent.Clone().Equal(absent) {
		t.Error("clone must keep the same key")
	}
}
