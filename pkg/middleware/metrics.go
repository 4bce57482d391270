package middleware

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"staybook/pkg/metrics"
)

var idSegment = regexp.MustCompile(`^(?:[0-9a-fA-F]{24}|\d+)$`)

// RouteLabel maps a request to a low-cardinality route name.
type RouteLabel func(r *http.Request) string

// DefaultRouteLabel replaces ObjectID and numeric path segments with ":id".
func DefaultRouteLabel(r *http.Request) string {
	segments := strings.Split(r.URL.Path, "/")
	for i, s := range segments {
		if idSegment.MatchString(s) {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}

func Metrics(m *metrics.Metrics, label RouteLabel) func(http.Handler) http.Handler {
	if label == nil {
		label = DefaultRouteLabel
	}
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrapResponseWriter(w)
			next.ServeHTTP(wrapped, r)
			m.ObserveHTTP(label(r), r.Method, wrapped.statusCode, time.Since(start))
		})
	}
}
