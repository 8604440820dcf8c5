package fhir

import (
	"log/slog"
	"net/url"
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`:(\w+)`)

// expandPath replaces ":name" placeholders in template with path-escaped
// values from vars. Placeholders without a non-empty value are left in place
// and logged.
func expandPath(template string, vars map[string]string, logger *slog.Logger) string {
	if len(vars) == 0 {
		return template
	}
	out := placeholderPattern.ReplaceAllStringFunc(template, func(m string) string {
		if v := vars[m[1:]]; v != "" {
			return url.PathEscape(v)
		}
		return m
	})
	if rest := placeholderPattern.FindAllString(out, -1); len(rest) > 0 {
		logger.Warn("unreplaced path placeholders",
			slog.String("template", template),
			slog.String("placeholders", strings.Join(rest, ", ")))
	}
	return out
}

// resolve joins an escaped API path onto base, keeping any path prefix the
// base carries (e.g. "https://host/api" + "/fhir/..." -> "https://host/api/fhir/...").
func resolve(base *url.URL, escapedPath string, query url.Values) *url.URL {
	u := *base
	raw := strings.TrimSuffix(base.EscapedPath(), "/") + "/" + strings.TrimPrefix(escapedPath, "/")
	if p, err := url.PathUnescape(raw); err == nil {
		u.Path, u.RawPath = p, raw
	} else {
		u.Path, u.RawPath = raw, ""
	}
	u.RawQuery = ""
	u.Fragment = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return &u
}

// withoutUserinfo renders u with any credentials removed.
func withoutUserinfo(u *url.URL) string {
	if u.User == nil {
		return u.String()
	}
	clean := *u
	clean.User = nil
	return clean.String()
}
