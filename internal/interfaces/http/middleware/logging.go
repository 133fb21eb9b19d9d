// Package middleware holds the gin middleware the API server mounts.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/prometheus"
)

// Logging logs one line per request and feeds the HTTP metric families.
// The route template, not the raw path, labels the metrics so cardinality
// stays bounded.
func Logging(log logging.Logger, metrics *prometheus.Metrics) gin.HandlerFunc {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		if metrics != nil {
			metrics.HTTPActiveRequests.WithLabelValues(method).Inc()
		}

		c.Next()

		elapsed := time.Since(start)
		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		if metrics != nil {
			metrics.HTTPActiveRequests.WithLabelValues(method).Dec()
			metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
		}

		fields := []logging.Field{
			logging.String("method", method),
			logging.String("path", c.Request.URL.Path),
			logging.Int("status", status),
			logging.Duration("took", elapsed),
			logging.String("client", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, logging.String("errors", c.Errors.String()))
		}
		switch {
		case status >= 500:
			log.Error("request failed", fields...)
		case status >= 400:
			log.Warn("request rejected", fields...)
		default:
			log.Info("request served", fields...)
		}
	}
}
