package respond

import (
	"regexp"
)

var (
	// Userinfo in URLs, e.g. a FHIR base URL with basic auth.
	urlPasswordPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)

	// Bearer tokens echoed back in upstream error bodies.
	bearerPattern = regexp.MustCompile(`(?i)(bearer\s+)[a-z0-9\-._~+/]+=*`)

	// Credential-like query parameters.
	secretParamPattern = regexp.MustCompile(`(?i)\b(api[_-]?key|access_token|token|secret|password)=([^&\s]+)`)
)

// SanitizeError returns the error message with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = urlPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = bearerPattern.ReplaceAllString(msg, "${1}****")
	msg = secretParamPattern.ReplaceAllString(msg, "$1=****")
	return msg
}
