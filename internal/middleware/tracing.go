package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"mcp-tracing-demo/internal/log"
	"mcp-tracing-demo/internal/trace"
)

// bearerSessionMinLength is the minimum bearer token length accepted as
// a session id. Development shortcut, not authentication.
const bearerSessionMinLength = 8

// TracingOptions configures which request headers the middleware
// inspects when resolving a session id.
type TracingOptions struct {
	SessionHeader     string
	CorrelationHeader string
}

// TracingMiddleware assigns trace ids to every inbound request.
//
// The session id is resolved in strict priority order: session header,
// correlation header, session_id query parameter, bearer token, then a
// freshly generated id. The request id is always freshly generated. The
// resulting metadata is installed on the request context so handlers
// and any work they spawn see the same ids, and both ids are attached
// as response headers. Downstream failures are logged with trace
// context and propagate unchanged.
func TracingMiddleware(opts TracingOptions) gin.HandlerFunc {
	if opts.SessionHeader == "" {
		opts.SessionHeader = "X-Session-ID"
	}
	if opts.CorrelationHeader == "" {
		opts.CorrelationHeader = "X-Correlation-ID"
	}

	return func(c *gin.Context) {
		sessionID := extractSessionID(c, opts)
		requestID := trace.NewRequestID()

		md := trace.Metadata{
			SessionID: sessionID,
			RequestID: requestID,
			StartTime: time.Now(),
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			UserAgent: c.Request.UserAgent(),
			ClientIP:  clientIP(c.Request),
			Transport: classifyTransport(c.Request.URL.Path),
		}

		// Mirror the ids into the gin context and install the metadata
		// on the request context for downstream handlers and anything
		// they spawn.
		c.Set("session_id", sessionID)
		c.Set("request_id", requestID)
		c.Request = c.Request.WithContext(trace.WithMetadata(c.Request.Context(), md))

		// Attach tracing headers before any handler starts streaming a
		// response body.
		c.Header("X-Request-ID", requestID)
		if sessionID != "" {
			c.Header("X-Session-ID", sessionID)
		}

		logger := log.WithContext(c)
		logger.Debug("Request started",
			"method", md.Method,
			"path", md.Path,
			"transport_type", string(md.Transport),
			"client_ip", md.ClientIP,
		)

		// Log downstream panics with trace context, then let them
		// propagate to the recovery layer unchanged.
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Request failed",
					"method", md.Method,
					"path", md.Path,
					"duration_ms", md.Elapsed().Seconds()*1000,
					"error", err,
				)
				panic(err)
			}
		}()

		c.Next()

		logger.Info("Request completed",
			"method", md.Method,
			"path", md.Path,
			"status", c.Writer.Status(),
			"duration_ms", md.Elapsed().Seconds()*1000,
		)

		// Failures handlers recorded on the gin context surface at
		// error level with trace ids attached; the responses they
		// already wrote are left untouched.
		if len(c.Errors) > 0 {
			logger.Error("Request failed",
				"method", md.Method,
				"path", md.Path,
				"status", c.Writer.Status(),
				"duration_ms", md.Elapsed().Seconds()*1000,
				"errors", c.Errors.String(),
			)
		}
	}
}

// extractSessionID resolves the session id for a request, first match
// wins. A new id is generated when no input identifies the session.
func extractSessionID(c *gin.Context, opts TracingOptions) string {
	logger := log.Logger()

	if id := c.GetHeader(opts.SessionHeader); id != "" {
		logger.Debug("Session ID from session header", "header", opts.SessionHeader, "session_id", trace.ShortID(id))
		return id
	}

	if id := c.GetHeader(opts.CorrelationHeader); id != "" {
		logger.Debug("Session ID from correlation header", "header", opts.CorrelationHeader, "session_id", trace.ShortID(id))
		return id
	}

	if id := c.Query("session_id"); id != "" {
		logger.Debug("Session ID from query param", "session_id", trace.ShortID(id))
		return id
	}

	// Long-lived SSE clients may only carry an Authorization header.
	// The bearer token is used verbatim as the session id when it is
	// long enough to be plausible.
	const bearerPrefix = "Bearer "
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, bearerPrefix) {
		token := strings.TrimPrefix(auth, bearerPrefix)
		if len(token) > bearerSessionMinLength {
			logger.Debug("Session ID from Bearer token", "session_id", trace.ShortID(token))
			return token
		}
	}

	id := trace.NewSessionID()
	logger.Debug("Generated new session ID", "session_id", trace.ShortID(id))
	return id
}

// clientIP resolves the client address, preferring proxy headers over
// the transport-level peer address.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// Take the first IP in the chain.
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	if r.RemoteAddr == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// classifyTransport tags a request by how it arrived, based on its
// path. Non-HTTP invocations are tagged by the ensure helpers instead.
func classifyTransport(path string) trace.Transport {
	// SSE endpoints
	if strings.Contains(path, "/sse") || strings.Contains(path, "/messages/") {
		return trace.TransportSSE
	}

	// Health and utility endpoints
	if path == "/health" || path == "/" || path == "/ping" {
		return trace.TransportHTTP
	}

	// MCP-related endpoints
	if strings.Contains(path, "/mcp/") {
		return trace.TransportMCPSSE
	}

	return trace.TransportHTTP
}
