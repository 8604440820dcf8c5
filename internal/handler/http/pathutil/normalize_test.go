package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	const sid = "0b6a2c1e-3f4d-4e5f-8a9b-0c1d2e3f4a5b"

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "organization detail", path: "/organizations/org-1", expected: "/organizations/:id"},
		{name: "practitioner detail", path: "/practitioners/p.42", expected: "/practitioners/:id"},
		{name: "detail with trailing slash", path: "/organizations/org-1/", expected: "/organizations/:id"},
		{name: "detail with query", path: "/organizations/org-1?page=1", expected: "/organizations/:id"},
		{name: "listing unchanged", path: "/organizations", expected: "/organizations"},
		{name: "listing with query", path: "/practitioners?query=smith", expected: "/practitioners"},
		{name: "session", path: "/search/sessions/" + sid, expected: "/search/sessions/:id"},
		{name: "session query", path: "/search/sessions/" + sid + "/query", expected: "/search/sessions/:id/query"},
		{name: "session page", path: "/search/sessions/" + sid + "/page", expected: "/search/sessions/:id/page"},
		{name: "session sort", path: "/search/sessions/" + sid + "/sort", expected: "/search/sessions/:id/sort"},
		{name: "session clear", path: "/search/sessions/" + sid + "/clear", expected: "/search/sessions/:id/clear"},
		{name: "session caption", path: "/search/sessions/" + sid + "/caption", expected: "/search/sessions/:id/caption"},
		{name: "session view", path: "/search/sessions/" + sid + "/view", expected: "/search/sessions/:id/view"},
		{name: "session unknown action", path: "/search/sessions/" + sid + "/other", expected: "/search/sessions/" + sid + "/other"},
		{name: "create session", path: "/search/practitioners/sessions", expected: "/search/practitioners/sessions"},
		{name: "health", path: "/health", expected: "/health"},
		{name: "root", path: "/", expected: "/"},
		{name: "unknown", path: "/unknown/path/123", expected: "/unknown/path/123"},
		{name: "empty", path: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePath(tt.path))
		})
	}
}

func TestGetExpectedCardinality(t *testing.T) {
	assert.Greater(t, GetExpectedCardinality(), len(pathPatterns))
}

func BenchmarkNormalizePath(b *testing.B) {
	paths := []string{
		"/organizations/org-1",
		"/search/sessions/0b6a2c1e-3f4d-4e5f-8a9b-0c1d2e3f4a5b/page",
		"/organizations",
		"/health",
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = NormalizePath(paths[i%len(paths)])
	}
}
