// Package httpmiddleware provides net/http middlewares shared by the intake
// service: panic recovery, request IDs, request-scoped zap loggers, request
// logging, gzip body decoding and per-client rate limiting.
package httpmiddleware

import "net/http"

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Wrap applies middlewares to h. The first middleware is the outermost one.
func Wrap(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
