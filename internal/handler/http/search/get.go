package search

import (
	"net/http"

	"provider-directory/internal/handler/http/respond"
	searchUC "provider-directory/internal/usecase/search"
)

type GetHandler struct{ Sessions *searchUC.Registry }

// ServeHTTP returns the session state. With wait=1 it blocks until no
// fetch is outstanding or the request is cancelled.
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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
	respond.JSON(w, http.StatusOK, view)
}

type DeleteHandler struct{ Sessions *searchUC.Registry }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Sessions.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
