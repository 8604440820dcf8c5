package search

import (
	"net/http"

	"provider-directory/internal/handler/http/respond"
	searchUC "provider-directory/internal/usecase/search"
)

// Command applies one decoded request to a session.
type Command func(r *http.Request, s searchUC.Session) error

type CommandHandler struct {
	Sessions *searchUC.Registry
	Run      Command
}

// ServeHTTP runs the command and answers with the resulting state.
// Rejected commands leave the state as it was.
func (h CommandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s, err := session(h.Sessions, r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Run(r, s); err != nil {
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

func setQuery(r *http.Request, s searchUC.Session) error {
	var body struct {
		Query string `json:"query"`
	}
	if err := decodeBody(r, &body); err != nil {
		return err
	}
	return s.SetQuery(r.Context(), body.Query)
}

func navigateToPage(r *http.Request, s searchUC.Session) error {
	var body struct {
		Page int `json:"page"`
	}
	if err := decodeBody(r, &body); err != nil {
		return err
	}
	return s.NavigateToPage(r.Context(), body.Page)
}

func setSort(r *http.Request, s searchUC.Session) error {
	var body struct {
		Sort string `json:"sort"`
	}
	if err := decodeBody(r, &body); err != nil {
		return err
	}
	return s.SetSort(r.Context(), body.Sort)
}

func clearSearch(r *http.Request, s searchUC.Session) error {
	return s.ClearSearch(r.Context())
}

func restore(r *http.Request, s searchUC.Session) error {
	var body struct {
		Location string `json:"location"`
	}
	if err := decodeBody(r, &body); err != nil {
		return err
	}
	return s.Restore(r.Context(), body.Location)
}
