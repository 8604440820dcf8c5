package entity

import (
	"fmt"
	"net/url"
	"regexp"
)

// maxURLLength defines the maximum allowed length for URLs.
const maxURLLength = 2048

// resourceIDPattern matches FHIR logical ids.
var resourceIDPattern = regexp.MustCompile(`^[A-Za-z0-9\-.]{1,64}$`)

// ValidateBaseURL validates the backend base URL.
// It checks that the URL is well-formed, uses HTTP/HTTPS scheme, has a host,
// and carries no query or fragment.
func ValidateBaseURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "base_url", Message: "URL is required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "base_url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse URL: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "base_url", Message: "URL must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: "base_url", Message: "URL must have a valid host"}
	}

	if parsedURL.RawQuery != "" || parsedURL.Fragment != "" {
		return &ValidationError{Field: "base_url", Message: "URL must not carry a query or fragment"}
	}

	return nil
}

// ValidateResourceID checks a FHIR logical id before it is placed in a path.
func ValidateResourceID(id string) error {
	if id == "" {
		return &ValidationError{Field: "id", Message: "id is required"}
	}
	if !resourceIDPattern.MatchString(id) {
		return &ValidationError{Field: "id", Message: "id must be 1-64 characters of [A-Za-z0-9-.]"}
	}
	return nil
}
