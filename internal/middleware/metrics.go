package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/oggyb/buka-sms/internal/metrics"
)

// Instrument records request counts and latencies per route pattern.
func Instrument() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sr := record(w)

			start := time.Now()
			next.ServeHTTP(sr, r)
			elapsed := time.Since(start).Seconds()

			// ServeMux fills Pattern on the request it is given.
			handler := r.Pattern
			if handler == "" {
				handler = r.URL.Path
			}

			metrics.HTTPRequests.WithLabelValues(handler, r.Method, strconv.Itoa(sr.status)).Inc()
			metrics.HTTPDuration.WithLabelValues(handler, r.Method).Observe(elapsed)
		})
	}
}
