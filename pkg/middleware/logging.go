package middleware

import (
	"net/http"
	"time"

	"ducktodo/pkg/logger"

	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

// RequestID stamps each request with an X-Request-ID unless one is set.
func RequestID() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if r.Header.Get(HeaderRequestID) != "" {
				return next.RoundTrip(r)
			}
			r = r.Clone(r.Context())
			r.Header.Set(HeaderRequestID, uuid.NewString())
			return next.RoundTrip(r)
		})
	}
}

// RequestLogging logs each exchange at debug level. Headers are never logged
// since they carry the session token.
func RequestLogging(log *logger.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			requestID := r.Header.Get(HeaderRequestID)

			log.Debug("HTTP request started",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
			)

			resp, err := next.RoundTrip(r)
			duration := time.Since(start)

			if err != nil {
				log.Debug("HTTP request failed",
					"request_id", requestID,
					"method", r.Method,
					"path", r.URL.Path,
					"duration_ms", duration.Milliseconds(),
					"error", err,
				)
				return nil, err
			}

			log.Debug("HTTP request completed",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", resp.StatusCode,
				"duration_ms", duration.Milliseconds(),
			)
			return resp, nil
		})
	}
}
