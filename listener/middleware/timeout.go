package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// DefaultTimeout bounds a request when Timeout gets a non-positive duration.
const DefaultTimeout = 10 * time.Second

const timeoutBody = `{"error":"request timed out"}` + "\n"

// Timeout returns a middleware that answers 503 with a JSON error body when the
// handler does not finish within duration. The request context is cancelled at
// the deadline. A non-positive duration falls back to DefaultTimeout with a
// warning on logger (the default slog logger when nil).
func Timeout(duration time.Duration, logger *slog.Logger) Middleware {
	if duration <= 0 {
		if logger == nil {
			logger = slog.Default()
		}

		logger.Warn("middleware: timeout must be positive, using default",
			"provided", duration, "default", DefaultTimeout)

		duration = DefaultTimeout
	}

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, duration, timeoutBody)
	}
}
