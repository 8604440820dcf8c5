package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"provider-directory/internal/common/sorting"
	"provider-directory/internal/domain/entity"
	"provider-directory/internal/handler/http/pathutil"
	"provider-directory/internal/handler/http/respond"
	searchUC "provider-directory/internal/usecase/search"
)

// statusOf maps a session error to its HTTP status. Zero means the error
// is not a client error.
func statusOf(err error) int {
	switch {
	case errors.Is(err, searchUC.ErrBlankQuery),
		errors.Is(err, sorting.ErrUnknownSortKey),
		errors.Is(err, entity.ErrInvalidInput),
		errors.Is(err, errBadBody):
		return http.StatusBadRequest
	case errors.Is(err, searchUC.ErrSessionNotFound),
		errors.Is(err, searchUC.ErrClosed),
		errors.Is(err, searchUC.ErrUnsupportedResource),
		errors.Is(err, entity.ErrUnknownResource),
		errors.Is(err, pathutil.ErrInvalidID):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return 0
	}
}

func writeError(w http.ResponseWriter, err error) {
	if code := statusOf(err); code != 0 {
		respond.Error(w, code, err)
		return
	}
	respond.SafeError(w, http.StatusInternalServerError, err)
}

var errBadBody = errors.New("invalid request body")

// decodeBody decodes a JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := jsonDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("%w: %v", errBadBody, err)
}

// session resolves the {id} wildcard to a live session.
func session(sessions *searchUC.Registry, r *http.Request) (searchUC.Session, error) {
	id, err := pathutil.SessionID(r)
	if err != nil {
		return nil, searchUC.ErrSessionNotFound
	}
	return sessions.Get(id)
}

// render returns the session view, waiting for it to settle when the
// request carries wait=1.
func render(r *http.Request, s searchUC.Session) (searchUC.View, error) {
	if !waitRequested(r) {
		return s.View(), nil
	}
	return s.Await(r.Context())
}

func waitRequested(r *http.Request) bool {
	switch r.URL.Query().Get("wait") {
	case "1", "true":
		return true
	default:
		return false
	}
}
