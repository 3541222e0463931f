package server

import "net/http"

// Middleware decorates a handler, e.g. with request IDs or logging.
type Middleware func(http.Handler) http.Handler

// Chain wraps h so that mws run in the order given: mws[0] sees the request
// first and the response last.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	wrapped := h
	for i := range mws {
		wrapped = mws[len(mws)-1-i](wrapped)
	}
	return wrapped
}
