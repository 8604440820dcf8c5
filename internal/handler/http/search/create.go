package search

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"provider-directory/internal/domain/entity"
	"provider-directory/internal/handler/http/respond"
	"provider-directory/internal/observability/logging"
	searchUC "provider-directory/internal/usecase/search"
)

// CreateResponse is the body of a created session.
type CreateResponse struct {
	ID    string        `json:"id"`
	State searchUC.View `json:"state"`
}

type createRequest struct {
	Location string `json:"location"`
}

type CreateHandler struct {
	Sessions *searchUC.Registry
	Allowed  func(entity.ResourceType) bool
}

// ServeHTTP opens a session. The location is seeded from the request's own
// query string, or from {"location": "..."} in the body when one is sent.
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resource, err := entity.ParseResourceType(r.PathValue("resource"))
	if err != nil {
		writeError(w, err)
		return
	}
	if h.Allowed != nil && !h.Allowed(resource) {
		respond.Error(w, http.StatusNotFound, searchUC.ErrUnsupportedResource)
		return
	}

	var req createRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	location := req.Location
	if location == "" {
		location = withoutWait(r)
	}

	id, s, err := h.Sessions.Create(resource, location)
	if err != nil {
		writeError(w, err)
		return
	}
	logging.FromContext(r.Context()).Info("search session opened",
		slog.String("session_id", id),
		slog.String("resource", resource.String()))

	view, err := render(r, s)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", "/search/sessions/"+id)
	respond.JSON(w, http.StatusCreated, CreateResponse{ID: id, State: view})
}

// withoutWait returns the raw query with the wait flag removed.
func withoutWait(r *http.Request) string {
	q := r.URL.Query()
	if !q.Has("wait") {
		return r.URL.RawQuery
	}
	q.Del("wait")
	return q.Encode()
}

func jsonDecoder(r io.Reader) *json.Decoder {
	d := json.NewDecoder(r)
	d.DisallowUnknownFields()
	return d
}
