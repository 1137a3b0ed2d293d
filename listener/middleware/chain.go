// Package middleware provides HTTP middleware for listeners.
package middleware

import "net/http"

// Middleware wraps an http.Handler.
type Middleware = func(http.Handler) http.Handler

// Chain wraps handler with middlewares. The first middleware is the outermost,
// so Chain(h, RequestID(), Logging(nil)) logs with the request ID already set.
func Chain(handler http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}

	return handler
}
