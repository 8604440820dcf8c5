// Package settings serves the frontend settings snapshot and gates routes
// on feature flags.
package settings

import (
	"net/http"

	"provider-directory/internal/domain/entity"
	"provider-directory/internal/handler/http/respond"
)

// Source is the settings snapshot the handlers read.
type Source interface {
	Current() entity.FrontendSettings
	Enabled(flag string) bool
}

// Register registers GET /frontend_settings with mux.
func Register(mux *http.ServeMux, src Source) {
	mux.Handle("GET    /frontend_settings", Handler{src})
}

type Handler struct{ Src Source }

// ServeHTTP echoes the current settings snapshot.
func (h Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	respond.JSON(w, http.StatusOK, h.Src.Current())
}

// RequireFlag answers 404 unless flag is on. The flag is read on every
// request, so a settings refresh takes effect without a restart.
func RequireFlag(src Source, flag string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !src.Enabled(flag) {
				http.NotFound(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
