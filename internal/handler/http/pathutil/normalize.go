package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
var pathPatterns = []*PathPattern{
	// Search sessions
	{Pattern: regexp.MustCompile(`^/search/sessions/[^/]+$`), Template: "/search/sessions/:id"},
	{Pattern: regexp.MustCompile(`^/search/sessions/[^/]+/(query|page|sort|clear|caption|view)$`), Template: "/search/sessions/:id/$1"},
	{Pattern: regexp.MustCompile(`^/search/(organizations|practitioners)/sessions$`), Template: "/search/$1/sessions"},

	// Record detail
	{Pattern: regexp.MustCompile(`^/(organizations|practitioners)/[^/]+$`), Template: "/$1/:id"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// It converts paths with IDs (e.g., /organizations/org-1) to template format
// (e.g., /organizations/:id). Static paths remain unchanged.
//
// Examples:
//
//	NormalizePath("/organizations/org-1")                  // "/organizations/:id"
//	NormalizePath("/search/sessions/6f1c.../page")         // "/search/sessions/:id/page"
//	NormalizePath("/organizations")                        // "/organizations" (unchanged)
//	NormalizePath("/health")                               // "/health" (unchanged)
//	NormalizePath("/unknown/path/123")                     // "/unknown/path/123" (no match, return original)
//
// Query parameters and trailing slashes are handled:
//
//	NormalizePath("/organizations/org-1?page=1")           // "/organizations/:id"
//	NormalizePath("/organizations/org-1/")                 // "/organizations/:id"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if m := p.Pattern.FindStringSubmatchIndex(path); m != nil {
			return string(p.Pattern.ExpandString(nil, p.Template, path, m))
		}
	}

	return path
}

// GetExpectedCardinality returns the expected number of unique path labels
// after normalization.
//
// Expected cardinality calculation:
//   - Static endpoints: ~8 (health, ready, live, metrics, listings, settings)
//   - Session endpoints: 8 (sessions/:id plus its actions)
//   - Create and detail endpoints: 4
func GetExpectedCardinality() int {
	templateCount := 1 + 6 + 2 + 2
	staticCount := 8
	return templateCount + staticCount
}
