package requestlogger

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/mileusna/useragent"
	"github.com/rs/zerolog"
)

const unknown = "n/a"

// Middleware logs one line per request, except for requests to any of the
// filtered paths, such as health checks and metrics.
func Middleware(logger zerolog.Logger, pathFilters ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			for _, filter := range pathFilters {
				if filter == r.URL.Path {
					next.ServeHTTP(w, r)
					return
				}
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			t1 := time.Now()
			defer func() {
				bytesIn, err := strconv.Atoi(r.Header.Get("Content-Length"))
				if err != nil {
					bytesIn = 0
				}

				requestID := middleware.GetReqID(r.Context())
				if requestID == "" {
					requestID = unknown
				}

				logger.Info().Timestamp().Fields(map[string]interface{}{
					"request_id": requestID,
					"request":    fmt.Sprintf("%s %s (response_code: %d)", r.Method, r.URL.Path, ww.Status()),
					"browser":    browser(r.Header.Get("User-Agent")),
					"remote_ip":  r.RemoteAddr,
					"proto":      r.Proto,
					"latency_ms": float64(time.Since(t1).Nanoseconds()) / 1000000.0,
					"bytes_in":   bytesIn,
					"bytes_out":  ww.BytesWritten(),
				}).Msg("incoming_request")
			}()

			next.ServeHTTP(ww, r)
		}

		return http.HandlerFunc(fn)
	}
}

func browser(userAgent string) string {
	if userAgent == "" {
		return unknown
	}

	ua := useragent.Parse(userAgent)
	if ua.Name == "" {
		return unknown
	}

	if ua.OS == "" {
		return ua.Name
	}

	return fmt.Sprintf("%s (%s)", ua.Name, ua.OS)
}
