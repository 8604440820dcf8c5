// Package search exposes server-hosted search sessions over HTTP. Each
// session owns one search controller; commands mutate it and reads return
// its rendered state.
package search

import (
	"net/http"

	"provider-directory/internal/domain/entity"
	searchUC "provider-directory/internal/usecase/search"
)

// Register registers the search session routes with mux.
// allowed gates session creation per resource; nil allows every resource.
func Register(mux *http.ServeMux, sessions *searchUC.Registry, allowed func(entity.ResourceType) bool) {
	mux.Handle("POST   /search/{resource}/sessions", CreateHandler{Sessions: sessions, Allowed: allowed})
	mux.Handle("GET    /search/sessions/{id}", GetHandler{sessions})
	mux.Handle("DELETE /search/sessions/{id}", DeleteHandler{sessions})

	mux.Handle("POST   /search/sessions/{id}/query", CommandHandler{sessions, setQuery})
	mux.Handle("POST   /search/sessions/{id}/page", CommandHandler{sessions, navigateToPage})
	mux.Handle("POST   /search/sessions/{id}/sort", CommandHandler{sessions, setSort})
	mux.Handle("POST   /search/sessions/{id}/clear", CommandHandler{sessions, clearSearch})
	mux.Handle("POST   /search/sessions/{id}/restore", CommandHandler{sessions, restore})

	mux.Handle("GET    /search/sessions/{id}/caption", FragmentHandler{sessions, captionFragment})
	mux.Handle("GET    /search/sessions/{id}/view", FragmentHandler{sessions, resultsFragment})
}
