// Package handlers implements the plain HTTP surface of the demo
// server. Every handler reads its trace ids through the ambient
// context installed by the tracing middleware; none of them receive
// identifiers as parameters.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"mcp-tracing-demo/internal/log"
	"mcp-tracing-demo/internal/trace"
)

type SiteHandler struct{}

func NewSiteHandler() *SiteHandler {
	return &SiteHandler{}
}

// Homepage returns server info plus the trace ids assigned to this
// request, demonstrating that handlers see the ambient context.
func (h *SiteHandler) Homepage(c *gin.Context) {
	ctx := c.Request.Context()
	log.Info(ctx, "Homepage accessed")

	c.JSON(http.StatusOK, gin.H{
		"message": "Hello World MCP Server with Request Tracing! 🚀",
		"trace_info": gin.H{
			"request_id": trace.RequestIDFromContext(ctx),
			"session_id": shortSessionID(ctx),
		},
		"endpoints": gin.H{
			"sse":      "/sse - MCP Server-Sent Events endpoint",
			"messages": "/messages/ - MCP message handling",
			"health":   "/health - Health check",
			"ping":     "/ping - Simple ping endpoint",
		},
		// The homepage keeps its own one-line blurbs; the catalog
		// schemas carry the full descriptions.
		"tools": []string{
			"hello - Say hello with personalized greeting",
			"add_numbers - Add two numbers together",
			"slow_operation - Simulate slow async operation",
			"parallel_tasks - Demonstrate parallel async tasks",
		},
	})
}

// Health is the health check endpoint.
func (h *SiteHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()
	log.Info(ctx, "Health check requested")

	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"server":     "hello-world-mcp-server",
		"tracing":    "enabled",
		"request_id": trace.RequestIDFromContext(ctx),
		"session_id": shortSessionID(ctx),
	})
}

// Ping answers with a plain-text line embedding both trace ids.
func (h *SiteHandler) Ping(c *gin.Context) {
	ctx := c.Request.Context()
	log.Info(ctx, "Ping endpoint called")

	session := "none"
	if id := trace.SessionIDFromContext(ctx); id != "" {
		session = trace.ShortID(id)
	}
	c.String(http.StatusOK, "Pong! 🏓 [req=%s|session=%s]",
		trace.RequestIDFromContext(ctx), session)
}

// shortSessionID truncates the current session id for response bodies,
// or returns nil when the request is untraced so the field renders as
// JSON null. Response headers always carry the full value.
func shortSessionID(ctx context.Context) any {
	id := trace.SessionIDFromContext(ctx)
	if id == "" {
		return nil
	}
	return trace.ShortID(id)
}
