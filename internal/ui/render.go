// Package ui renders the server-side HTML fragments of directory searches:
// the pagination caption, the result list and its three status messages.
package ui

import (
	"log/slog"
	"net/http"
	"strings"

	gomponents "maragu.dev/gomponents"
)

// Render writes node as an HTML response.
func Render(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := node.Render(w); err != nil {
		slog.Default().Error("failed to render html", slog.Any("error", err))
	}
}

// String renders node to a string.
func String(node gomponents.Node) string {
	var b strings.Builder
	_ = node.Render(&b)
	return b.String()
}
