package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddleware_NormalizesRoute(t *testing.T) {
	counter := requestsTotal.WithLabelValues(http.MethodGet, "/organizations/:id", "404")
	before := testutil.ToFloat64(counter)

	h := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	for _, id := range []string{"org-1", "org-2", "org-3"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/organizations/"+id, nil))
	}

	assert.Equal(t, before+3, testutil.ToFloat64(counter))
	assert.Zero(t, testutil.ToFloat64(requestsInFlight))
}

func TestMetricsMiddleware_SkipsScrapes(t *testing.T) {
	counter := requestsTotal.WithLabelValues(http.MethodGet, MetricsPath, "200")
	before := testutil.ToFloat64(counter)

	MetricsMiddleware(MetricsHandler()).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, MetricsPath, nil))

	assert.Equal(t, before, testutil.ToFloat64(counter))
}

func TestMetricsHandler(t *testing.T) {
	h := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/practitioners", nil))

	rr := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, MetricsPath, nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `npd_http_requests_total{method="GET",route="/practitioners",status="200"}`)
	assert.Contains(t, rr.Body.String(), `npd_http_response_size_bytes_count{route="/practitioners"}`)
}
