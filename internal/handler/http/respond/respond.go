// Package respond writes JSON responses and user-safe error bodies.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"provider-directory/internal/common/sorting"
	"provider-directory/internal/domain/entity"
)

// ErrorBody is the shape of every JSON error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON writes v as the response body with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are gone; all that is left is to log it.
		slog.Default().Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// Error writes err's message as-is. Use it only for errors the caller has
// already classified as user-facing.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, ErrorBody{Error: err.Error()})
}

// SafeError writes err's message when it is user-facing, otherwise the
// lowercase status text. A 5xx never exposes the message; it is logged
// after SanitizeError instead. A nil err writes nothing.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}
	if code < 500 && userFacing(err) {
		JSON(w, code, ErrorBody{Error: err.Error()})
		return
	}

	slog.Default().Error("request failed",
		slog.Int("code", code),
		slog.String("status", http.StatusText(code)),
		slog.Any("error", SanitizeError(err)))
	JSON(w, code, ErrorBody{Error: strings.ToLower(http.StatusText(code))})
}

// userFacingErrors are domain errors whose messages carry only what the
// caller sent.
var userFacingErrors = []error{
	entity.ErrInvalidInput,
	entity.ErrNotFound,
	entity.ErrUnknownResource,
	sorting.ErrUnknownSortKey,
}

// userFacingPhrases catch validation messages built without a sentinel.
var userFacingPhrases = []string{
	"required",
	"invalid",
	"not found",
	"unknown",
	"unsupported",
	"blank",
	"must be",
	"must not",
	"cannot be",
	"too long",
}

func userFacing(err error) bool {
	for _, target := range userFacingErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	for _, phrase := range userFacingPhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}
