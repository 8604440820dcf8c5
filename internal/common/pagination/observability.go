package pagination

import (
	"log/slog"
	"time"
)

// LogRequest logs a decoded search request with structured fields.
func LogRequest(logger *slog.Logger, requestID, resource string, params Params) {
	logger.Debug("paginated request",
		slog.String("request_id", requestID),
		slog.String("resource", resource),
		slog.Int("page", params.Page),
		slog.Int("page_size", params.PageSize),
		slog.Bool("has_query", params.HasQuery()),
		slog.String("sort", params.SortValue()))
}

// LogResponse logs the outcome of a search request.
func LogResponse(logger *slog.Logger, requestID, resource string, st State, duration time.Duration) {
	logger.Info("paginated response",
		slog.String("request_id", requestID),
		slog.String("resource", resource),
		slog.Int("page", st.Page),
		slog.Int("page_size", st.PageSize),
		slog.Int("returned_count", st.Total),
		slog.Int("count", st.Count),
		slog.Int64("duration_ms", duration.Milliseconds()))
}

// LogError logs a failed search request.
func LogError(logger *slog.Logger, requestID, resource string, params Params, err error) {
	logger.Error("pagination error",
		slog.String("request_id", requestID),
		slog.String("resource", resource),
		slog.Int("page", params.Page),
		slog.Int("page_size", params.PageSize),
		slog.Any("error", err))
}
