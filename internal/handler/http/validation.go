package http

import (
	"net/http"

	"provider-directory/internal/handler/http/respond"
)

const (
	maxPathLength  = 2048
	maxQueryLength = 4096
	maxBodyBytes   = 1 << 20
)

// InputValidation rejects oversized paths and query strings and caps the
// request body. Search parameters travel in the query string, so it gets
// its own bound.
func InputValidation() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Path) > maxPathLength || len(r.URL.RawQuery) > maxQueryLength {
				respond.JSON(w, http.StatusRequestURITooLong, map[string]string{"error": "URI too long"})
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			next.ServeHTTP(w, r)
		})
	}
}
