package directory

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"provider-directory/internal/common/pagination"
	"provider-directory/internal/domain/entity"
	"provider-directory/internal/handler/http/requestid"
	"provider-directory/internal/handler/http/respond"
	"provider-directory/internal/observability/logging"
	"provider-directory/internal/ui"
	searchUC "provider-directory/internal/usecase/search"
)

type ListHandler struct {
	Resource   entity.ResourceType
	Pagination pagination.Config
	Factory    searchUC.Factory
}

// ServeHTTP decodes the query string, runs the search it describes and
// returns the settled state. Browsers asking for HTML get a rendered page.
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	logger := logging.FromContext(ctx)
	reqID := requestid.FromContext(ctx)
	resource := h.Resource.String()

	params := pagination.ParseQueryParams(r, h.Pagination)
	pagination.LogRequest(logger, reqID, resource, params)

	view, err := searchUC.List(ctx, h.Factory, r.URL.RawQuery)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, context.DeadlineExceeded) {
			code = http.StatusGatewayTimeout
		}
		pagination.LogError(logger, reqID, resource, params, err)
		respond.SafeError(w, code, err)
		return
	}
	if view.Error != nil {
		pagination.LogError(logger, reqID, resource, params, errors.New(*view.Error))
	} else {
		pagination.LogResponse(logger, reqID, resource, view.Pagination, time.Since(start))
	}

	if wantsHTML(r) {
		ui.Render(w, http.StatusOK, ui.Page(view))
		return
	}
	respond.JSON(w, http.StatusOK, view)
}

func wantsHTML(r *http.Request) bool {
	if r.URL.Query().Get("format") == "html" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
