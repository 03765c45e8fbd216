// Package testutil builds an in-process instance of the demo server
// for integration tests: the same middleware chain and routes main
// assembles, served straight from a gin engine with no listener.
package testutil

import (
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"mcp-tracing-demo/internal/config"
	"mcp-tracing-demo/internal/handlers"
	"mcp-tracing-demo/internal/middleware"
	"mcp-tracing-demo/internal/tools"
)

// TestApp represents a test application instance.
type TestApp struct {
	Config      *config.Config
	Router      *gin.Engine
	ToolService *tools.Service
}

// SetupTestApp creates a fully wired application instance for tests.
func SetupTestApp(t *testing.T) *TestApp {
	t.Helper()

	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Port:               "8081",
		GinMode:            "test",
		LogLevel:           "error",
		SessionHeader:      "X-Session-ID",
		CorrelationHeader:  "X-Correlation-ID",
		CORSAllowedOrigins: "*",
	}

	toolService := tools.NewService()
	mcpServer := tools.NewMCPServer(toolService)
	sseServer := mcpserver.NewSSEServer(mcpServer,
		mcpserver.WithSSEEndpoint("/sse"),
		mcpserver.WithMessageEndpoint("/messages/"),
	)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(strings.Split(cfg.CORSAllowedOrigins, ",")))
	router.Use(middleware.TracingMiddleware(middleware.TracingOptions{
		SessionHeader:     cfg.SessionHeader,
		CorrelationHeader: cfg.CorrelationHeader,
	}))

	site := handlers.NewSiteHandler()
	demo := handlers.NewDemoHandler()
	router.GET("/", site.Homepage)
	router.GET("/health", site.Health)
	router.GET("/ping", site.Ping)
	router.GET("/demo-async", demo.AsyncDemo)
	router.GET("/sse", gin.WrapH(sseServer.SSEHandler()))
	router.POST("/messages/", gin.WrapH(sseServer.MessageHandler()))

	return &TestApp{
		Config:      cfg,
		Router:      router,
		ToolService: toolService,
	}
}
