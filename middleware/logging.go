package middleware

import (
	"log/slog"
	"time"

	"ridedemand/logging"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one structured line per request and hands services a
// logger tagged with the request method and path through the request context.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		if logger != nil {
			reqLogger := logger.With(
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path))
			c.Request = c.Request.WithContext(logging.WithLogger(c.Request.Context(), reqLogger))
		}

		c.Next()

		logging.LogHTTPRequest(logger,
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			float64(time.Since(start).Nanoseconds())/1e6,
			slog.String("client_ip", c.ClientIP()),
			slog.String("component", "http_server"))
	}
}
