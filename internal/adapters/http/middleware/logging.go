package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/wine-dashboard/internal/platform/logging"
)

// probePrefix marks liveness, readiness and metrics routes, which are not logged.
const probePrefix = "/-/"

// Logging writes one line per finished request: info for success, warn for
// client errors, error for server errors. The context logger set up by
// RequestID and CorrelationID is preferred over logger.
func Logging(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, probePrefix) {
			c.Next()
			return
		}

		start := time.Now()
		target := c.Request.URL.RequestURI()
		log := logging.FromContextOr(c.Request.Context(), logger)

		log.Log(c.Request.Context(), logging.LevelTrace, "request started",
			slog.String("method", c.Request.Method),
			slog.String("path", target),
			slog.String("client_ip", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
		)

		c.Next()

		status := c.Writer.Status()
		elapsed := time.Since(start)

		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", target),
			slog.String("route", c.FullPath()),
			slog.Int("status", status),
			slog.Duration("latency", elapsed),
			slog.Int64("latency_ms", elapsed.Milliseconds()),
			slog.Int("bytes", c.Writer.Size()),
		}

		if report := selectedReport(c); report != "" {
			attrs = append(attrs, slog.String("report", report))
		}

		log.LogAttrs(c.Request.Context(), levelFor(status), "request completed", attrs...)
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// selectedReport is the report named by the API route or the sidebar form.
func selectedReport(c *gin.Context) string {
	if r := c.Param("report"); r != "" {
		return r
	}

	return c.Query("report")
}
