// Package logging builds the slog loggers used by the directory server and
// the npdsearch command, and carries a request-scoped logger through
// context.
//
// The server logs JSON to stdout; npdsearch logs text to stderr so that
// search output stays clean. LOG_LEVEL selects debug, info, warn or error.
//
//	logger := logging.NewLogger()
//	slog.SetDefault(logger)
//
//	// inside a handler, after the request id middleware
//	log := logging.FromContext(r.Context())
//	log.Info("session created", slog.String("resource", "Organization"))
package logging
