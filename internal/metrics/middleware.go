package metrics

import (
	"net/http"
	"strconv"
	"time"
)

// Middleware records request count and duration for the given handler.
// Requests are labelled by the ServeMux pattern that served them, so path
// values never reach label cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		duration := time.Since(start).Seconds()
		route := routeLabel(r)
		RequestTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		RequestDuration.WithLabelValues(r.Method, route).Observe(duration)
	})
}

// routeLabel returns the matched ServeMux pattern without its method prefix.
func routeLabel(r *http.Request) string {
	p := r.Pattern
	if p == "" {
		return "unmatched"
	}
	for i := 0; i < len(p); i++ {
		if p[i] == ' ' {
			return p[i+1:]
		}
	}
	return p
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
