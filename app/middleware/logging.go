package middleware

import (
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/tomasen/realip"

	"catalogo-productos/logger"
)

// RequestLogger logs one line per request with status, size and duration
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)

		log := logger.Log.With(
			"method", r.Method,
			"path", r.URL.Path,
			"status", m.Code,
			"bytes", m.Written,
			"duration_ms", m.Duration.Milliseconds(),
			"ip", realip.FromRequest(r),
		)
		switch {
		case m.Code >= http.StatusInternalServerError:
			log.Errorf("❌ %s %s", r.Method, r.URL.Path)
		case m.Code >= http.StatusBadRequest:
			log.Warnf("⚠️  %s %s", r.Method, r.URL.Path)
		default:
			log.Debugf("%s %s", r.Method, r.URL.Path)
		}
	})
}

// Recoverer turns a handler panic into a 500 response
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				logger.Log.Errorf("❌ panic serving %s %s: %v", r.Method, r.URL.Path, err)
				w.Header().Set("Connection", "close")
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
