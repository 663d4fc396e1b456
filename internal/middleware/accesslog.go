// internal/middleware/accesslog.go
//
// Structured access log.
//
// One Info line per request with method, path, status, and elapsed time.
// When the request-info middleware has already run, the line also carries
// the client IP, browser family, and bot flag, so crawler traffic can be
// separated from customers in log queries.

package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/oakmoor/storefront/internal/metrics"
	"github.com/oakmoor/storefront/internal/requestinfo"
)

// statusWriter records the response code as it passes through.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// AccessLog emits one structured log line per request and counts it.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		metrics.HTTPRequestsTotal.Inc()

		fields := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"elapsed_ms", time.Since(start).Milliseconds(),
		}
		if info := requestinfo.FromContext(r.Context()); info != nil {
			fields = append(fields,
				"ip", info.Geo.IP.String(),
				"browser", info.UA.Browser,
				"bot", info.UA.IsBot,
			)
		}
		zap.S().Infow("request", fields...)
	})
}
