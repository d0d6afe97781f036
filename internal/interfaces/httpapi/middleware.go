package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fnoldesk/internal/bootstrap/logging"
)

const (
	headerRequestID = "X-Request-ID"
	headerTraceID   = "X-Trace-ID"

	unmatchedRoute = "unmatched"
)

// requestContext puts request_id and trace_id on the request context so every
// log line of the request carries them.
func requestContext(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		traceID := c.GetHeader(headerTraceID)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logging.WithLogger(c.Request.Context(), logger)
		ctx = logging.WithAttrs(ctx,
			slog.String("component", "httpapi"),
			slog.String("request_id", requestID),
		)
		ctx = logging.WithTelemetry(ctx, traceID, "")
		c.Request = c.Request.WithContext(ctx)

		c.Header(headerRequestID, requestID)
		c.Header(headerTraceID, traceID)
		c.Next()
	}
}

func accessLog(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		status := c.Writer.Status()
		latency := time.Since(start)
		if metrics != nil {
			metrics.observeRequest(c.Request.Method, route, status, latency.Seconds())
		}

		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("route", route),
			slog.Int("status", status),
			slog.Duration("latency", latency),
		}
		if status >= http.StatusInternalServerError {
			logging.Warn(c.Request.Context(), "http request completed", attrs...)
			return
		}
		logging.Info(c.Request.Context(), "http request completed", attrs...)
	}
}

func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logging.Error(c.Request.Context(), "http handler panicked", slog.Any("panic", recovered))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": internalErrorDetail})
	})
}
