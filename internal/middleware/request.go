package middleware

import (
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

// maxDrainBytes bounds how much of an unread request body is discarded before
// the connection is given up instead of reused.
const maxDrainBytes = 256 << 10

// LogRequest logs every request once it completes. Server errors are logged at
// WARN, everything else at TRACE.
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			begin := time.Now()
			resp := &responseWriter{w, http.StatusOK}

			next.ServeHTTP(resp, r)

			fields := log.Fields{
				"method":  r.Method,
				"route":   routeTemplate(r),
				"path":    r.URL.Path,
				"status":  resp.statusCode,
				"elapsed": time.Since(begin).String(),
				"ua":      r.Header.Get("User-Agent"),
			}
			if sc := trace.SpanContextFromContext(r.Context()); sc.HasTraceID() {
				fields["trace_id"] = sc.TraceID().String()
			}

			entry := log.WithFields(fields)
			if resp.statusCode >= http.StatusInternalServerError {
				entry.Warn(" <==== request failed")
				return
			}
			entry.Trace(" <==== request")
		})
	}
}

// DrainAndCloseRequest discards what the handler left unread in the request
// body (up to maxDrainBytes) and closes it.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil {
				return
			}
			_, _ = io.CopyN(io.Discard, r.Body, maxDrainBytes)
			_ = r.Body.Close()
		})
	}
}
