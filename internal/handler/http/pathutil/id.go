package pathutil

import (
	"errors"
	"net/http"
	"regexp"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

var (
	resourceIDPattern = regexp.MustCompile(`^[A-Za-z0-9\-.]{1,64}$`)
	sessionIDPattern  = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
)

// ResourceID returns the FHIR logical id bound to the {id} wildcard of r.
//
// Example:
//
//	// pattern "GET /organizations/{id}", path "/organizations/org-1"
//	id, err := ResourceID(r)
//	// Returns: "org-1", nil
func ResourceID(r *http.Request) (string, error) {
	id := r.PathValue("id")
	if !resourceIDPattern.MatchString(id) {
		return "", ErrInvalidID
	}
	return id, nil
}

// SessionID returns the search session id bound to the {id} wildcard of r.
// Session ids are lowercase UUIDs.
func SessionID(r *http.Request) (string, error) {
	id := r.PathValue("id")
	if !sessionIDPattern.MatchString(id) {
		return "", ErrInvalidID
	}
	return id, nil
}
