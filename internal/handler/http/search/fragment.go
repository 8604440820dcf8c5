package search

import (
	"net/http"

	gomponents "maragu.dev/gomponents"

	"provider-directory/internal/ui"
	searchUC "provider-directory/internal/usecase/search"
)

type FragmentHandler struct {
	Sessions *searchUC.Registry
	Render   func(searchUC.View) gomponents.Node
}

// ServeHTTP renders part of the session view as HTML.
func (h FragmentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s, err := session(h.Sessions, r)
	if err != nil {
		writeError(w, err)
		return
	}
	view, err := render(r, s)
	if err != nil {
		writeError(w, err)
		return
	}
	ui.Render(w, http.StatusOK, h.Render(view))
}

func captionFragment(v searchUC.View) gomponents.Node { return ui.Caption(v) }

func resultsFragment(v searchUC.View) gomponents.Node {
	return gomponents.Group([]gomponents.Node{ui.Results(v), ui.Pager(v)})
}
