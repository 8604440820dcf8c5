package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts decoded search requests by page bucket.
	// Labels: resource, page_range (1-10, 11-50, 51-100, 100+)
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "npd_pagination_requests_total",
			Help: "Total number of paginated directory requests",
		},
		[]string{"resource", "page_range"},
	)

	// CoercionsTotal counts malformed URL values replaced by defaults.
	// Labels: key (page, page_size, query_string)
	CoercionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "npd_pagination_coercions_total",
			Help: "Total number of malformed pagination parameters replaced by defaults",
		},
		[]string{"key"},
	)
)

// RecordRequest records a paginated request for resource at page.
func RecordRequest(resource string, page int) {
	RequestsTotal.WithLabelValues(resource, getPageRangeBucket(page)).Inc()
}

func recordCoercion(key string) {
	CoercionsTotal.WithLabelValues(key).Inc()
}

// getPageRangeBucket returns the page range bucket for a given page number.
func getPageRangeBucket(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
