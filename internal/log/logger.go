package log

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"mcp-tracing-demo/internal/trace"
)

// untracedSentinel fills the session slot on lines that carry a
// request id but no resolved session.
const untracedSentinel = "none"

// Logger returns the current default logger instance.
func Logger() *slog.Logger {
	return slog.Default()
}

// WithContext returns a logger that includes the current request and
// session ids plus any additional log fields from context. Lines
// emitted outside a traced scope stay unannotated; logging never fails
// on an untraced context.
func WithContext(ctx interface{}) *slog.Logger {
	logger := Logger()
	var requestID, sessionID string
	var logFields LogFields

	// Extract the trace ids and log fields from either context flavor.
	switch v := ctx.(type) {
	case *gin.Context:
		requestID = v.GetString("request_id")
		sessionID = v.GetString("session_id")
		if v.Request != nil && v.Request.Context() != nil {
			reqCtx := v.Request.Context()
			if requestID == "" {
				requestID = trace.RequestIDFromContext(reqCtx)
			}
			if sessionID == "" {
				sessionID = trace.SessionIDFromContext(reqCtx)
			}
			logFields = GetLogFields(reqCtx)
		}
	case context.Context:
		requestID = trace.RequestIDFromContext(v)
		sessionID = trace.SessionIDFromContext(v)
		logFields = GetLogFields(v)
	}

	if requestID != "" {
		if sessionID == "" {
			sessionID = untracedSentinel
		}
		logger = logger.With("request_id", requestID, "session_id", trace.ShortID(sessionID))
	}

	// Add all log fields from context
	for k, v := range logFields {
		logger = logger.With(k, v)
	}

	return logger
}

// Context-aware logging methods that automatically extract trace ids and log fields from context

// Info logs at Info level with automatic trace id and field extraction from context.
func Info(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).Info(msg, args...) //nolint:contextcheck // WithContext extracts metadata from context
}

// Error logs at Error level with automatic trace id and field extraction from context.
func Error(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).Error(msg, args...) //nolint:contextcheck // WithContext extracts metadata from context
}

// Warn logs at Warn level with automatic trace id and field extraction from context.
func Warn(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).Warn(msg, args...) //nolint:contextcheck // WithContext extracts metadata from context
}

// Debug logs at Debug level with automatic trace id and field extraction from context.
func Debug(ctx context.Context, msg string, args ...any) {
	WithContext(ctx).Debug(msg, args...) //nolint:contextcheck // WithContext extracts metadata from context
}
