// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinegraph Contributors

package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cinegraph/cinegraph/internal/observability"
)

// statusRecorder captures the response status code for logging and
// metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestLogging logs a line at request start and completion and counts
// the request by response status.
func requestLogging(logger *slog.Logger, metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			logger.Info("request start", "method", r.Method, "path", r.URL.Path)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			logger.Info("request end",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
			)
			if metrics != nil {
				metrics.GraphQLRequestsTotal.WithLabelValues(strconv.Itoa(rec.status)).Inc()
			}
		})
	}
}
