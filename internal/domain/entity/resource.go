package entity

import (
	"fmt"
	"strings"
)

// ResourceType names a FHIR resource served by the directory.
type ResourceType string

const (
	ResourceOrganization ResourceType = "Organization"
	ResourcePractitioner ResourceType = "Practitioner"
)

// ResourceTypes lists the searchable resources in display order.
var ResourceTypes = []ResourceType{ResourceOrganization, ResourcePractitioner}

// String implements fmt.Stringer.
func (r ResourceType) String() string {
	return string(r)
}

// Collection returns the plural path segment used by the HTTP surface,
// e.g. "organizations".
func (r ResourceType) Collection() string {
	return strings.ToLower(string(r)) + "s"
}

// Valid reports whether r is one of the served resources.
func (r ResourceType) Valid() bool {
	for _, t := range ResourceTypes {
		if r == t {
			return true
		}
	}
	return false
}

// ParseResourceType accepts either the FHIR name ("Organization") or the
// plural path segment ("organizations"), case-insensitively.
func ParseResourceType(s string) (ResourceType, error) {
	for _, t := range ResourceTypes {
		if strings.EqualFold(s, string(t)) || strings.EqualFold(s, t.Collection()) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownResource, s)
}
