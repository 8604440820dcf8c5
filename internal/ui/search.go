package ui

import (
	"net/url"
	"strconv"
	"strings"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"

	"provider-directory/internal/common/sorting"
	"provider-directory/internal/usecase/search"
)

// Caption renders the "Showing a - b of n" span. It renders nothing until
// a page with records has been loaded.
func Caption(v search.View) gomponents.Node {
	if v.Status != search.StatusLoaded {
		return gomponents.Group(nil)
	}
	return html.Span(gomponents.Attr("role", "caption"), gomponents.Text(v.Caption))
}

// Results renders the result area: the error line, then exactly one of
// the loading notice, the record list, the no-match message or the
// no-search-yet message.
func Results(v search.View) gomponents.Node {
	return html.Div(
		html.Class("search-results"),
		gomponents.If(v.Error != nil, errorMessage(v)),
		resultBody(v),
	)
}

func errorMessage(v search.View) gomponents.Node {
	if v.Error == nil {
		return nil
	}
	return html.Div(html.Class("error-message"),
		html.Strong(gomponents.Text("Error:")),
		gomponents.Text(" "+*v.Error),
	)
}

func resultBody(v search.View) gomponents.Node {
	if v.IsLoading && !v.IsBackgroundLoading {
		return html.P(html.Class("loading"), gomponents.Text("Searching..."))
	}
	switch v.Status {
	case search.StatusLoaded:
		return html.Div(
			gomponents.Attr("role", "list"),
			html.Data("testid", "searchresults"),
			gomponents.If(v.IsBackgroundLoading, html.Class("stale")),
			gomponents.Map(v.Records, func(r search.Record) gomponents.Node {
				return listedRecord(v.Resource, r)
			}),
		)
	case search.StatusEmpty:
		return html.Div(gomponents.Text("No " + Title(v.Resource) + " found for query: " + queryText(v)))
	default:
		return html.Div(html.P(gomponents.Text("No results available")))
	}
}

func listedRecord(collection string, r search.Record) gomponents.Node {
	return html.Div(
		gomponents.Attr("role", "listitem"),
		html.Div(html.Class("head"),
			html.A(html.Class("name"), html.Href("/"+collection+"/"+url.PathEscape(r.ID)), gomponents.Text(r.Name)),
			html.Span(html.Strong(gomponents.Text("NPI:")), gomponents.Text(" "+r.NPI)),
		),
		gomponents.If(r.Location != "", html.Div(html.Class("location"), gomponents.Text(r.Location))),
	)
}

// Pager renders previous/next links that keep the query and sort.
func Pager(v search.View) gomponents.Node {
	if v.Status != search.StatusLoaded || v.Pagination.TotalPages <= 1 {
		return gomponents.Group(nil)
	}
	link := func(page int, label string) gomponents.Node {
		return html.A(html.Href("/"+v.Resource+"?"+pageQuery(v, page)), gomponents.Text(label))
	}
	p := v.Pagination
	return html.Nav(html.Class("pager"),
		gomponents.If(p.Page > 1, link(p.Page-1, "Previous")),
		html.Span(gomponents.Text("Page "+strconv.Itoa(p.Page)+" of "+strconv.Itoa(p.TotalPages))),
		gomponents.If(p.Page < p.TotalPages, link(p.Page+1, "Next")),
	)
}

// Page renders a complete search page for a stateless listing.
func Page(v search.View) gomponents.Node {
	title := Title(v.Resource)
	return html.Doctype(
		html.HTML(
			html.Lang("en"),
			html.Head(
				html.Meta(html.Charset("utf-8")),
				html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
				html.TitleEl(gomponents.Text(title+" | National Provider Directory")),
			),
			html.Body(
				html.Main(
					html.H1(gomponents.Text(title)),
					searchForm(v),
					Caption(v),
					Results(v),
					Pager(v),
				),
			),
		),
	)
}

func searchForm(v search.View) gomponents.Node {
	query := ""
	if v.Query != nil {
		query = *v.Query
	}
	return html.Form(html.Method("get"), html.Action("/"+v.Resource),
		html.Label(html.For("query-input"), gomponents.Text("Name or NPI")),
		html.Input(html.Type("text"), html.Name("query"), html.ID("query-input"), html.Value(query), html.Required()),
		html.Select(html.Name("sort"),
			gomponents.Map(v.SortOptions, func(o sorting.Option) gomponents.Node {
				return html.Option(html.Value(o.Key), gomponents.If(o.Key == v.Sort, html.Selected()), gomponents.Text(o.Label))
			}),
		),
		html.Button(html.Type("submit"), gomponents.Text("Search")),
		html.A(html.Href("/"+v.Resource), gomponents.Text("Clear")),
	)
}

// Title turns a collection name into its heading, "organizations" -> "Organizations".
func Title(collection string) string {
	if collection == "" {
		return ""
	}
	return strings.ToUpper(collection[:1]) + collection[1:]
}

func queryText(v search.View) string {
	if v.Query == nil {
		return ""
	}
	return *v.Query
}

func pageQuery(v search.View, page int) string {
	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	if v.Pagination.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(v.Pagination.PageSize))
	}
	if v.Query != nil {
		values.Set("query", *v.Query)
	}
	if v.Sort != "" {
		values.Set("sort", v.Sort)
	}
	return values.Encode()
}
